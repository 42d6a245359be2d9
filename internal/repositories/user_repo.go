package repositories

import (
	"context"

	"edumart/internal/models"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, orgID uuid.UUID, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	SetBlocked(ctx context.Context, orgID, id uuid.UUID, blocked bool) error
	SoftDelete(ctx context.Context, orgID, id uuid.UUID) error
	List(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*models.User, error)
}

type userRepo struct {
	db DBTX
}

func NewUserRepo(db DBTX) UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, org_id, email, password_hash, role, is_deleted, is_blocked, created_at, updated_at`

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, org_id, email, password_hash, role, is_deleted, is_blocked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, FALSE, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, user.ID, user.OrgID, user.Email, user.PasswordHash, user.Role)
	return err
}

func (r *userRepo) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE org_id = $1 AND id = $2 AND is_deleted = FALSE`
	err := r.db.QueryRow(ctx, query, orgID, id).Scan(
		&user.ID, &user.OrgID, &user.Email, &user.PasswordHash, &user.Role,
		&user.IsDeleted, &user.IsBlocked, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, orgID uuid.UUID, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE org_id = $1 AND email = $2 AND is_deleted = FALSE`
	err := r.db.QueryRow(ctx, query, orgID, email).Scan(
		&user.ID, &user.OrgID, &user.Email, &user.PasswordHash, &user.Role,
		&user.IsDeleted, &user.IsBlocked, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET email = $1, password_hash = $2, role = $3, updated_at = NOW()
		WHERE org_id = $4 AND id = $5 AND is_deleted = FALSE
	`
	_, err := r.db.Exec(ctx, query, user.Email, user.PasswordHash, user.Role, user.OrgID, user.ID)
	return err
}

func (r *userRepo) SetBlocked(ctx context.Context, orgID, id uuid.UUID, blocked bool) error {
	query := `UPDATE users SET is_blocked = $1, updated_at = NOW() WHERE org_id = $2 AND id = $3 AND is_deleted = FALSE`
	_, err := r.db.Exec(ctx, query, blocked, orgID, id)
	return err
}

func (r *userRepo) SoftDelete(ctx context.Context, orgID, id uuid.UUID) error {
	query := `UPDATE users SET is_deleted = TRUE, updated_at = NOW() WHERE org_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, orgID, id)
	return err
}

func (r *userRepo) List(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE org_id = $1 AND is_deleted = FALSE
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, orgID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(
			&user.ID, &user.OrgID, &user.Email, &user.PasswordHash, &user.Role,
			&user.IsDeleted, &user.IsBlocked, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
