package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// refTarget maps an entity name onto its table and scoping rules. Tables
// are whitelisted here; entity names never reach the SQL text from input.
type refTarget struct {
	table       string
	tenantScope bool // filter by org_id
	softDelete  bool // exclude soft-deleted rows
}

var refTargets = map[string]refTarget{
	"organization": {table: "organizations"},
	"user":         {table: "users", tenantScope: true, softDelete: true},
	"student":      {table: "students", tenantScope: true, softDelete: true},
	"exam":         {table: "exams", tenantScope: true, softDelete: true},
	"department":   {table: "departments", tenantScope: true},
}

// RefRepository answers whether a referenced record exists inside the
// caller's tenant. The normalization layer is its only consumer.
type RefRepository interface {
	Exists(ctx context.Context, entity string, orgID, id uuid.UUID) (bool, error)
}

type refRepo struct {
	db DBTX
}

func NewRefRepo(db DBTX) RefRepository {
	return &refRepo{db: db}
}

func (r *refRepo) Exists(ctx context.Context, entity string, orgID, id uuid.UUID) (bool, error) {
	target, ok := refTargets[entity]
	if !ok {
		return false, fmt.Errorf("no reference target registered for entity %q", entity)
	}

	query := `SELECT EXISTS (SELECT 1 FROM ` + target.table + ` WHERE id = $1`
	args := []any{id}
	if target.tenantScope {
		query += ` AND org_id = $2`
		args = append(args, orgID)
	}
	if target.softDelete {
		query += ` AND is_deleted = FALSE`
	}
	query += `)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
