package repositories

import (
	"context"

	"edumart/internal/models"

	"github.com/google/uuid"
)

type AboutRepository interface {
	Create(ctx context.Context, about *models.About) error
	GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.About, error)
	GetByOrganization(ctx context.Context, orgID uuid.UUID) (*models.About, error)
	Update(ctx context.Context, about *models.About) error
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}

type aboutRepo struct {
	db DBTX
}

func NewAboutRepo(db DBTX) AboutRepository {
	return &aboutRepo{db: db}
}

func (r *aboutRepo) Create(ctx context.Context, about *models.About) error {
	query := `
		INSERT INTO abouts (id, org_id, title, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, about.ID, about.OrgID, about.Title, about.Body)
	return err
}

func (r *aboutRepo) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.About, error) {
	a := &models.About{}
	query := `SELECT id, org_id, title, body, created_at, updated_at FROM abouts WHERE org_id = $1 AND id = $2`
	err := r.db.QueryRow(ctx, query, orgID, id).Scan(
		&a.ID, &a.OrgID, &a.Title, &a.Body, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetByOrganization returns the newest about entry; the public page shows one.
func (r *aboutRepo) GetByOrganization(ctx context.Context, orgID uuid.UUID) (*models.About, error) {
	a := &models.About{}
	query := `
		SELECT id, org_id, title, body, created_at, updated_at
		FROM abouts
		WHERE org_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	err := r.db.QueryRow(ctx, query, orgID).Scan(
		&a.ID, &a.OrgID, &a.Title, &a.Body, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *aboutRepo) Update(ctx context.Context, about *models.About) error {
	query := `UPDATE abouts SET title = $1, body = $2, updated_at = NOW() WHERE org_id = $3 AND id = $4`
	_, err := r.db.Exec(ctx, query, about.Title, about.Body, about.OrgID, about.ID)
	return err
}

func (r *aboutRepo) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	query := `DELETE FROM abouts WHERE org_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, orgID, id)
	return err
}
