package repositories

import (
	"context"

	"edumart/internal/models"

	"github.com/google/uuid"
)

type OrganizationPaymentRepository interface {
	Create(ctx context.Context, payment *models.OrganizationPayment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.OrganizationPayment, error)
	Update(ctx context.Context, payment *models.OrganizationPayment) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	ListByOrganization(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.OrganizationPayment, error)
}

type orgPaymentRepo struct {
	db DBTX
}

func NewOrganizationPaymentRepo(db DBTX) OrganizationPaymentRepository {
	return &orgPaymentRepo{db: db}
}

const orgPaymentColumns = `id, organization_id, subscription_status, amount, pay_status, pay_date, expire_at, is_deleted, created_at, updated_at`

func (r *orgPaymentRepo) scanRow(row interface{ Scan(...any) error }) (*models.OrganizationPayment, error) {
	p := &models.OrganizationPayment{}
	err := row.Scan(
		&p.ID, &p.OrganizationID, &p.SubscriptionStatus, &p.Amount, &p.PayStatus,
		&p.PayDate, &p.ExpireAt, &p.IsDeleted, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *orgPaymentRepo) Create(ctx context.Context, payment *models.OrganizationPayment) error {
	query := `
		INSERT INTO organization_payments (id, organization_id, subscription_status, amount, pay_status, pay_date, expire_at, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		payment.ID, payment.OrganizationID, payment.SubscriptionStatus, payment.Amount,
		payment.PayStatus, payment.PayDate, payment.ExpireAt)
	return err
}

func (r *orgPaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.OrganizationPayment, error) {
	query := `SELECT ` + orgPaymentColumns + ` FROM organization_payments WHERE id = $1`
	return r.scanRow(r.db.QueryRow(ctx, query, id))
}

func (r *orgPaymentRepo) Update(ctx context.Context, payment *models.OrganizationPayment) error {
	query := `
		UPDATE organization_payments
		SET subscription_status = $1, amount = $2, pay_status = $3, pay_date = $4, expire_at = $5, updated_at = NOW()
		WHERE id = $6 AND is_deleted = FALSE
	`
	_, err := r.db.Exec(ctx, query,
		payment.SubscriptionStatus, payment.Amount, payment.PayStatus, payment.PayDate, payment.ExpireAt, payment.ID)
	return err
}

func (r *orgPaymentRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE organization_payments SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *orgPaymentRepo) Restore(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE organization_payments SET is_deleted = FALSE, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *orgPaymentRepo) ListByOrganization(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.OrganizationPayment, error) {
	query := `
		SELECT ` + orgPaymentColumns + `
		FROM organization_payments
		WHERE organization_id = $1 AND is_deleted = FALSE
		ORDER BY pay_date DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.OrganizationPayment
	for rows.Next() {
		p, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
