package repositories

import (
	"context"

	"edumart/internal/models"

	"github.com/google/uuid"
)

type NoticeRepository interface {
	Create(ctx context.Context, notice *models.Notice) error
	GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Notice, error)
	Update(ctx context.Context, notice *models.Notice) error
	Delete(ctx context.Context, orgID, id uuid.UUID) error
	List(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*models.Notice, error)
}

type noticeRepo struct {
	db DBTX
}

func NewNoticeRepo(db DBTX) NoticeRepository {
	return &noticeRepo{db: db}
}

func (r *noticeRepo) Create(ctx context.Context, notice *models.Notice) error {
	query := `
		INSERT INTO notices (id, org_id, title, body, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, notice.ID, notice.OrgID, notice.Title, notice.Body, notice.PublishedAt)
	return err
}

func (r *noticeRepo) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Notice, error) {
	n := &models.Notice{}
	query := `SELECT id, org_id, title, body, published_at, created_at, updated_at FROM notices WHERE org_id = $1 AND id = $2`
	err := r.db.QueryRow(ctx, query, orgID, id).Scan(
		&n.ID, &n.OrgID, &n.Title, &n.Body, &n.PublishedAt, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (r *noticeRepo) Update(ctx context.Context, notice *models.Notice) error {
	query := `UPDATE notices SET title = $1, body = $2, published_at = $3, updated_at = NOW() WHERE org_id = $4 AND id = $5`
	_, err := r.db.Exec(ctx, query, notice.Title, notice.Body, notice.PublishedAt, notice.OrgID, notice.ID)
	return err
}

func (r *noticeRepo) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	query := `DELETE FROM notices WHERE org_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, orgID, id)
	return err
}

func (r *noticeRepo) List(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*models.Notice, error) {
	query := `
		SELECT id, org_id, title, body, published_at, created_at, updated_at
		FROM notices
		WHERE org_id = $1
		ORDER BY published_at DESC NULLS LAST, created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, orgID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notices []*models.Notice
	for rows.Next() {
		n := &models.Notice{}
		if err := rows.Scan(&n.ID, &n.OrgID, &n.Title, &n.Body, &n.PublishedAt, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notices = append(notices, n)
	}
	return notices, rows.Err()
}
