package repositories

import (
	"context"

	"edumart/internal/models"

	"github.com/google/uuid"
)

type OrganizationRepository interface {
	Create(ctx context.Context, org *models.Organization) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
	GetBySubdomain(ctx context.Context, subdomain string) (*models.Organization, error)
	Update(ctx context.Context, org *models.Organization) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Organization, error)
	ExpireOverdue(ctx context.Context) (int64, error)
}

type organizationRepo struct {
	db DBTX
}

func NewOrganizationRepo(db DBTX) OrganizationRepository {
	return &organizationRepo{db: db}
}

const organizationColumns = `id, name, subdomain, custom_domain, logo_url, plan, subscription_status, expires_at, created_at, updated_at`

func (r *organizationRepo) Create(ctx context.Context, org *models.Organization) error {
	query := `
		INSERT INTO organizations (id, name, subdomain, custom_domain, logo_url, plan, subscription_status, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		org.ID, org.Name, org.Subdomain, org.CustomDomain, org.LogoURL, org.Plan, org.SubscriptionStatus, org.ExpiresAt)
	return err
}

func (r *organizationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	org := &models.Organization{}
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&org.ID, &org.Name, &org.Subdomain, &org.CustomDomain, &org.LogoURL, &org.Plan,
		&org.SubscriptionStatus, &org.ExpiresAt, &org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return org, nil
}

func (r *organizationRepo) GetBySubdomain(ctx context.Context, subdomain string) (*models.Organization, error) {
	org := &models.Organization{}
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE subdomain = $1`
	err := r.db.QueryRow(ctx, query, subdomain).Scan(
		&org.ID, &org.Name, &org.Subdomain, &org.CustomDomain, &org.LogoURL, &org.Plan,
		&org.SubscriptionStatus, &org.ExpiresAt, &org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return org, nil
}

func (r *organizationRepo) Update(ctx context.Context, org *models.Organization) error {
	query := `
		UPDATE organizations
		SET name = $1, subdomain = $2, custom_domain = $3, logo_url = $4, plan = $5,
		    subscription_status = $6, expires_at = $7, updated_at = NOW()
		WHERE id = $8
	`
	_, err := r.db.Exec(ctx, query,
		org.Name, org.Subdomain, org.CustomDomain, org.LogoURL, org.Plan,
		org.SubscriptionStatus, org.ExpiresAt, org.ID)
	return err
}

func (r *organizationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM organizations WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *organizationRepo) List(ctx context.Context, limit, offset int) ([]*models.Organization, error) {
	query := `
		SELECT ` + organizationColumns + `
		FROM organizations
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []*models.Organization
	for rows.Next() {
		org := &models.Organization{}
		if err := rows.Scan(
			&org.ID, &org.Name, &org.Subdomain, &org.CustomDomain, &org.LogoURL, &org.Plan,
			&org.SubscriptionStatus, &org.ExpiresAt, &org.CreatedAt, &org.UpdatedAt); err != nil {
			return nil, err
		}
		orgs = append(orgs, org)
	}
	return orgs, rows.Err()
}

// ExpireOverdue flips every active organization whose expiry date has passed.
// Run by the background sweep.
func (r *organizationRepo) ExpireOverdue(ctx context.Context) (int64, error) {
	query := `
		UPDATE organizations
		SET subscription_status = 'expired', updated_at = NOW()
		WHERE subscription_status = 'active' AND expires_at IS NOT NULL AND expires_at < NOW()
	`
	tag, err := r.db.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
