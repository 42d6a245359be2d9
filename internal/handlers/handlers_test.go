package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"edumart/internal/common"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// fakeRefRepo resolves from an in-memory set of (entity, org, id) triples.
type fakeRefRepo struct {
	known map[string]bool
	err   error
}

func (f *fakeRefRepo) Exists(ctx context.Context, entity string, orgID, id uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.known[entity+"/"+orgID.String()+"/"+id.String()], nil
}

func (f *fakeRefRepo) add(entity string, orgID, id uuid.UUID) {
	if f.known == nil {
		f.known = map[string]bool{}
	}
	f.known[entity+"/"+orgID.String()+"/"+id.String()] = true
}

// newJSONContext builds an echo context carrying the given JSON body and,
// when orgID is non-nil, the tenant scope the auth middleware would seed.
func newJSONContext(t *testing.T, e *echo.Echo, body map[string]any, orgID *uuid.UUID) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(buf))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if orgID != nil {
		req = req.WithContext(context.WithValue(req.Context(), common.OrgIDKey, *orgID))
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
