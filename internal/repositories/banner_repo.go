package repositories

import (
	"context"

	"edumart/internal/models"

	"github.com/google/uuid"
)

type BannerRepository interface {
	Create(ctx context.Context, banner *models.Banner) error
	GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Banner, error)
	Update(ctx context.Context, banner *models.Banner) error
	Delete(ctx context.Context, orgID, id uuid.UUID) error
	List(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*models.Banner, error)
}

type bannerRepo struct {
	db DBTX
}

func NewBannerRepo(db DBTX) BannerRepository {
	return &bannerRepo{db: db}
}

func (r *bannerRepo) Create(ctx context.Context, banner *models.Banner) error {
	query := `
		INSERT INTO banners (id, org_id, title, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, banner.ID, banner.OrgID, banner.Title, banner.ImageURL)
	return err
}

func (r *bannerRepo) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Banner, error) {
	b := &models.Banner{}
	query := `SELECT id, org_id, title, image_url, created_at, updated_at FROM banners WHERE org_id = $1 AND id = $2`
	err := r.db.QueryRow(ctx, query, orgID, id).Scan(
		&b.ID, &b.OrgID, &b.Title, &b.ImageURL, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bannerRepo) Update(ctx context.Context, banner *models.Banner) error {
	query := `UPDATE banners SET title = $1, image_url = $2, updated_at = NOW() WHERE org_id = $3 AND id = $4`
	_, err := r.db.Exec(ctx, query, banner.Title, banner.ImageURL, banner.OrgID, banner.ID)
	return err
}

func (r *bannerRepo) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	query := `DELETE FROM banners WHERE org_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, orgID, id)
	return err
}

func (r *bannerRepo) List(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*models.Banner, error) {
	query := `
		SELECT id, org_id, title, image_url, created_at, updated_at
		FROM banners
		WHERE org_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, orgID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var banners []*models.Banner
	for rows.Next() {
		b := &models.Banner{}
		if err := rows.Scan(&b.ID, &b.OrgID, &b.Title, &b.ImageURL, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		banners = append(banners, b)
	}
	return banners, rows.Err()
}
