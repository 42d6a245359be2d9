package services

import (
	"context"
	"time"

	"edumart/internal/models"
	"edumart/internal/repositories"

	"github.com/google/uuid"
)

type StudentPaymentService interface {
	Create(ctx context.Context, orgID uuid.UUID, req *CreateStudentPaymentRequest) (*models.StudentPayment, error)
	GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.StudentPayment, error)
	Update(ctx context.Context, orgID, id uuid.UUID, req *UpdateStudentPaymentRequest) (*models.StudentPayment, error)
	SoftDelete(ctx context.Context, orgID, id uuid.UUID) error
	Restore(ctx context.Context, orgID, id uuid.UUID) error
	List(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*models.StudentPayment, error)
	ListByStudent(ctx context.Context, orgID, studentID uuid.UUID, limit, offset int) ([]*models.StudentPayment, error)
}

type CreateStudentPaymentRequest struct {
	Student     string  `json:"student"`
	PaymentType string  `json:"payment_type"`
	Amount      float64 `json:"amount"`
	PayStatus   string  `json:"pay_status"`
	PayDate     string  `json:"pay_date"`
	Month       *string `json:"month"`
	Year        int     `json:"year"`
}

type UpdateStudentPaymentRequest struct {
	PaymentType *string  `json:"payment_type"`
	Amount      *float64 `json:"amount"`
	PayStatus   *string  `json:"pay_status"`
	PayDate     *string  `json:"pay_date"`
	Month       *string  `json:"month"`
	Year        *int     `json:"year"`
}

type studentPaymentService struct {
	paymentRepo repositories.StudentPaymentRepository
}

func NewStudentPaymentService(paymentRepo repositories.StudentPaymentRepository) StudentPaymentService {
	return &studentPaymentService{paymentRepo: paymentRepo}
}

// Create assumes the student reference was already resolved inside the
// caller's tenant by the normalization layer in front of it.
func (s *studentPaymentService) Create(ctx context.Context, orgID uuid.UUID, req *CreateStudentPaymentRequest) (*models.StudentPayment, error) {
	studentID, err := uuid.Parse(req.Student)
	if err != nil {
		return nil, err
	}

	payDate, err := time.Parse("2006-01-02", req.PayDate)
	if err != nil {
		return nil, err
	}

	payment := &models.StudentPayment{
		ID:          uuid.New(),
		OrgID:       orgID,
		StudentID:   studentID,
		PaymentType: req.PaymentType,
		Amount:      req.Amount,
		PayStatus:   req.PayStatus,
		PayDate:     payDate,
		Month:       req.Month,
		Year:        req.Year,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *studentPaymentService) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.StudentPayment, error) {
	return s.paymentRepo.GetByID(ctx, orgID, id)
}

func (s *studentPaymentService) Update(ctx context.Context, orgID, id uuid.UUID, req *UpdateStudentPaymentRequest) (*models.StudentPayment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if req.PayStatus != nil && *req.PayStatus != payment.PayStatus {
		if payment.PayStatus != models.PayStatusPending || *req.PayStatus != models.PayStatusPaid {
			return nil, ErrInvalidTransition
		}
		payment.PayStatus = models.PayStatusPaid
	}
	if req.PaymentType != nil {
		payment.PaymentType = *req.PaymentType
	}
	if req.Amount != nil {
		payment.Amount = *req.Amount
	}
	if req.PayDate != nil {
		payDate, err := time.Parse("2006-01-02", *req.PayDate)
		if err != nil {
			return nil, err
		}
		payment.PayDate = payDate
	}
	if req.Month != nil {
		payment.Month = req.Month
	}
	if req.Year != nil {
		payment.Year = *req.Year
	}

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *studentPaymentService) SoftDelete(ctx context.Context, orgID, id uuid.UUID) error {
	return s.paymentRepo.SoftDelete(ctx, orgID, id)
}

func (s *studentPaymentService) Restore(ctx context.Context, orgID, id uuid.UUID) error {
	return s.paymentRepo.Restore(ctx, orgID, id)
}

func (s *studentPaymentService) List(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*models.StudentPayment, error) {
	return s.paymentRepo.List(ctx, orgID, limit, offset)
}

func (s *studentPaymentService) ListByStudent(ctx context.Context, orgID, studentID uuid.UUID, limit, offset int) ([]*models.StudentPayment, error) {
	return s.paymentRepo.ListByStudent(ctx, orgID, studentID, limit, offset)
}
