package common

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"edumart/internal/validation"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestSendValidationError_Envelope(t *testing.T) {
	c, rec := newTestContext(t)

	sources := []validation.ErrorSource{
		{Path: "name", Message: "is required"},
		{Path: "results[1].marks", Message: "must not exceed 100"},
	}
	require.NoError(t, SendValidationError(c, sources))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Validation failed", resp.Message)
	assert.Equal(t, sources, resp.ErrorSources)
}

func TestSendPersistenceError_DuplicateKeyMapsToColumn(t *testing.T) {
	c, rec := newTestContext(t)

	err := &pgconn.PgError{Code: "23505", ConstraintName: "organizations_subdomain_key"}
	require.NoError(t, SendPersistenceError(c, "organizations", err))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.Len(t, resp.ErrorSources, 1)
	assert.Equal(t, "subdomain", resp.ErrorSources[0].Path)
	assert.Contains(t, resp.Message, "subdomain")
}

func TestSendPersistenceError_OtherErrorsAreOpaque(t *testing.T) {
	c, rec := newTestContext(t)

	require.NoError(t, SendPersistenceError(c, "organizations", errors.New("connection reset")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.NotContains(t, resp.Message, "connection reset")
}

func TestColumnFromConstraint(t *testing.T) {
	assert.Equal(t, "subdomain", columnFromConstraint("organizations", "organizations_subdomain_key"))
	assert.Equal(t, "email", columnFromConstraint("users", "users_email_key"))
	// Constraint names outside the convention yield no path.
	assert.Equal(t, "", columnFromConstraint("users", "users_pkey"))
	assert.Equal(t, "", columnFromConstraint("users", ""))
}
