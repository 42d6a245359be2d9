// Package normalize bridges validated input and persistence-ready records.
// Validation guarantees a reference identifier is well-formed; this package
// confirms it resolves to a live record inside the caller's tenant. A
// well-formed identifier pointing at nothing, or at another tenant's data,
// fails here with ErrRefNotFound and surfaces as a not-found condition, never
// as a validation error.
package normalize

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"edumart/internal/repositories"
	"edumart/internal/validation"
)

// ErrRefNotFound marks a reference that does not resolve within tenant scope.
var ErrRefNotFound = errors.New("referenced record not found")

type Resolver struct {
	refs repositories.RefRepository
}

func NewResolver(refs repositories.RefRepository) *Resolver {
	return &Resolver{refs: refs}
}

// ResolveRefs walks every reference field of the descriptor present in the
// payload and checks existence. Payload values are assumed to have passed
// validation already, so a malformed identifier here is a programming error.
func (r *Resolver) ResolveRefs(ctx context.Context, d validation.Descriptor, payload map[string]any, orgID uuid.UUID) error {
	for _, f := range d.Fields {
		if f.Ref == "" {
			continue
		}
		raw, present := payload[f.Name]
		if !present {
			continue
		}
		s, ok := raw.(string)
		if !ok {
			return fmt.Errorf("field %s: expected string identifier, got %T", f.Name, raw)
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
		exists, err := r.refs.Exists(ctx, f.Ref, orgID, id)
		if err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
		if !exists {
			return fmt.Errorf("%s %s: %w", f.Ref, id, ErrRefNotFound)
		}
	}
	return nil
}
