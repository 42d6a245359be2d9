package normalize

import (
	"context"
	"testing"

	"edumart/internal/validation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRefRepo resolves from an in-memory set of (entity, org, id) triples.
type fakeRefRepo struct {
	known map[string]bool
}

func (f *fakeRefRepo) Exists(ctx context.Context, entity string, orgID, id uuid.UUID) (bool, error) {
	return f.known[entity+"/"+orgID.String()+"/"+id.String()], nil
}

func (f *fakeRefRepo) add(entity string, orgID, id uuid.UUID) {
	if f.known == nil {
		f.known = map[string]bool{}
	}
	f.known[entity+"/"+orgID.String()+"/"+id.String()] = true
}

func resultDescriptor(t *testing.T) validation.Descriptor {
	t.Helper()
	d, ok := validation.NewEntityRegistry().Get(validation.EntityResult)
	require.True(t, ok)
	return d
}

func TestResolveRefs_AllResolve(t *testing.T) {
	orgID := uuid.New()
	studentID := uuid.New()
	examID := uuid.New()

	refs := &fakeRefRepo{}
	refs.add("student", orgID, studentID)
	refs.add("exam", orgID, examID)
	resolver := NewResolver(refs)

	payload := map[string]any{
		"student": studentID.String(),
		"exam":    examID.String(),
		"session": "2025-2026",
	}
	assert.NoError(t, resolver.ResolveRefs(context.Background(), resultDescriptor(t), payload, orgID))
}

func TestResolveRefs_MissingRefFails(t *testing.T) {
	orgID := uuid.New()
	studentID := uuid.New()

	refs := &fakeRefRepo{}
	refs.add("student", orgID, studentID)
	resolver := NewResolver(refs)

	payload := map[string]any{
		"student": studentID.String(),
		"exam":    uuid.New().String(), // never registered
	}
	err := resolver.ResolveRefs(context.Background(), resultDescriptor(t), payload, orgID)
	assert.ErrorIs(t, err, ErrRefNotFound)
}

func TestResolveRefs_CrossTenantLooksAbsent(t *testing.T) {
	orgA := uuid.New()
	orgB := uuid.New()
	studentID := uuid.New()

	refs := &fakeRefRepo{}
	refs.add("student", orgA, studentID)
	resolver := NewResolver(refs)

	payload := map[string]any{"student": studentID.String()}
	err := resolver.ResolveRefs(context.Background(), resultDescriptor(t), payload, orgB)
	assert.ErrorIs(t, err, ErrRefNotFound)
}

func TestResolveRefs_AbsentFieldSkipped(t *testing.T) {
	resolver := NewResolver(&fakeRefRepo{})

	// Partial updates may omit reference fields entirely.
	assert.NoError(t, resolver.ResolveRefs(context.Background(), resultDescriptor(t), map[string]any{"session": "2025-2026"}, uuid.New()))
}
