package repositories

import (
	"context"

	"edumart/internal/models"

	"github.com/google/uuid"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByUserID(ctx context.Context, orgID, userID uuid.UUID) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	SoftDeleteByUserID(ctx context.Context, orgID, userID uuid.UUID) error
}

type profileRepo struct {
	db DBTX
}

func NewProfileRepo(db DBTX) ProfileRepository {
	return &profileRepo{db: db}
}

const profileColumns = `id, org_id, user_id, role, name, phone, designation, is_deleted, created_at, updated_at`

func (r *profileRepo) scanRow(row interface{ Scan(...any) error }) (*models.Profile, error) {
	p := &models.Profile{}
	err := row.Scan(
		&p.ID, &p.OrgID, &p.UserID, &p.Role, &p.Name, &p.Phone, &p.Designation,
		&p.IsDeleted, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *profileRepo) Create(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (id, org_id, user_id, role, name, phone, designation, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		profile.ID, profile.OrgID, profile.UserID, profile.Role, profile.Name, profile.Phone, profile.Designation)
	return err
}

func (r *profileRepo) GetByUserID(ctx context.Context, orgID, userID uuid.UUID) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE org_id = $1 AND user_id = $2 AND is_deleted = FALSE`
	return r.scanRow(r.db.QueryRow(ctx, query, orgID, userID))
}

func (r *profileRepo) Update(ctx context.Context, profile *models.Profile) error {
	query := `
		UPDATE profiles
		SET name = $1, phone = $2, designation = $3, updated_at = NOW()
		WHERE org_id = $4 AND id = $5 AND is_deleted = FALSE
	`
	_, err := r.db.Exec(ctx, query, profile.Name, profile.Phone, profile.Designation, profile.OrgID, profile.ID)
	return err
}

func (r *profileRepo) SoftDeleteByUserID(ctx context.Context, orgID, userID uuid.UUID) error {
	query := `UPDATE profiles SET is_deleted = TRUE, updated_at = NOW() WHERE org_id = $1 AND user_id = $2`
	_, err := r.db.Exec(ctx, query, orgID, userID)
	return err
}
