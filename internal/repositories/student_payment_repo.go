package repositories

import (
	"context"

	"edumart/internal/models"

	"github.com/google/uuid"
)

type StudentPaymentRepository interface {
	Create(ctx context.Context, payment *models.StudentPayment) error
	GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.StudentPayment, error)
	Update(ctx context.Context, payment *models.StudentPayment) error
	SoftDelete(ctx context.Context, orgID, id uuid.UUID) error
	Restore(ctx context.Context, orgID, id uuid.UUID) error
	List(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*models.StudentPayment, error)
	ListByStudent(ctx context.Context, orgID, studentID uuid.UUID, limit, offset int) ([]*models.StudentPayment, error)
}

type studentPaymentRepo struct {
	db DBTX
}

func NewStudentPaymentRepo(db DBTX) StudentPaymentRepository {
	return &studentPaymentRepo{db: db}
}

const studentPaymentColumns = `id, org_id, student_id, payment_type, amount, pay_status, pay_date, month, year, is_deleted, created_at, updated_at`

func (r *studentPaymentRepo) scanRow(row interface{ Scan(...any) error }) (*models.StudentPayment, error) {
	p := &models.StudentPayment{}
	err := row.Scan(
		&p.ID, &p.OrgID, &p.StudentID, &p.PaymentType, &p.Amount, &p.PayStatus,
		&p.PayDate, &p.Month, &p.Year, &p.IsDeleted, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *studentPaymentRepo) Create(ctx context.Context, payment *models.StudentPayment) error {
	query := `
		INSERT INTO student_payments (id, org_id, student_id, payment_type, amount, pay_status, pay_date, month, year, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, FALSE, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		payment.ID, payment.OrgID, payment.StudentID, payment.PaymentType, payment.Amount,
		payment.PayStatus, payment.PayDate, payment.Month, payment.Year)
	return err
}

func (r *studentPaymentRepo) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.StudentPayment, error) {
	query := `SELECT ` + studentPaymentColumns + ` FROM student_payments WHERE org_id = $1 AND id = $2`
	return r.scanRow(r.db.QueryRow(ctx, query, orgID, id))
}

func (r *studentPaymentRepo) Update(ctx context.Context, payment *models.StudentPayment) error {
	query := `
		UPDATE student_payments
		SET payment_type = $1, amount = $2, pay_status = $3, pay_date = $4, month = $5, year = $6, updated_at = NOW()
		WHERE org_id = $7 AND id = $8 AND is_deleted = FALSE
	`
	_, err := r.db.Exec(ctx, query,
		payment.PaymentType, payment.Amount, payment.PayStatus, payment.PayDate,
		payment.Month, payment.Year, payment.OrgID, payment.ID)
	return err
}

func (r *studentPaymentRepo) SoftDelete(ctx context.Context, orgID, id uuid.UUID) error {
	query := `UPDATE student_payments SET is_deleted = TRUE, updated_at = NOW() WHERE org_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, orgID, id)
	return err
}

func (r *studentPaymentRepo) Restore(ctx context.Context, orgID, id uuid.UUID) error {
	query := `UPDATE student_payments SET is_deleted = FALSE, updated_at = NOW() WHERE org_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, orgID, id)
	return err
}

func (r *studentPaymentRepo) List(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*models.StudentPayment, error) {
	query := `
		SELECT ` + studentPaymentColumns + `
		FROM student_payments
		WHERE org_id = $1 AND is_deleted = FALSE
		ORDER BY pay_date DESC
		LIMIT $2 OFFSET $3
	`
	return r.queryList(ctx, query, orgID, limit, offset)
}

func (r *studentPaymentRepo) ListByStudent(ctx context.Context, orgID, studentID uuid.UUID, limit, offset int) ([]*models.StudentPayment, error) {
	query := `
		SELECT ` + studentPaymentColumns + `
		FROM student_payments
		WHERE org_id = $1 AND student_id = $2 AND is_deleted = FALSE
		ORDER BY pay_date DESC
		LIMIT $3 OFFSET $4
	`
	return r.queryList(ctx, query, orgID, studentID, limit, offset)
}

func (r *studentPaymentRepo) queryList(ctx context.Context, query string, args ...any) ([]*models.StudentPayment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.StudentPayment
	for rows.Next() {
		p, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
