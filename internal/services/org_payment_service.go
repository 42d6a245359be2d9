package services

import (
	"context"
	"errors"
	"time"

	"edumart/internal/models"
	"edumart/internal/repositories"

	"github.com/google/uuid"
)

// ErrInvalidTransition rejects any pay_status change other than pending -> paid.
var ErrInvalidTransition = errors.New("pay_status can only move from pending to paid")

type OrganizationPaymentService interface {
	Create(ctx context.Context, req *CreateOrganizationPaymentRequest) (*models.OrganizationPayment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.OrganizationPayment, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateOrganizationPaymentRequest) (*models.OrganizationPayment, error)
	MarkPaid(ctx context.Context, id uuid.UUID) (*models.OrganizationPayment, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	ListByOrganization(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.OrganizationPayment, error)
}

type CreateOrganizationPaymentRequest struct {
	Organization       string  `json:"organization"`
	SubscriptionStatus string  `json:"subscription_status"`
	Amount             float64 `json:"amount"`
	PayStatus          string  `json:"pay_status"`
	PayDate            string  `json:"pay_date"`
	ExpireAt           string  `json:"expire_at"`
}

type UpdateOrganizationPaymentRequest struct {
	SubscriptionStatus *string  `json:"subscription_status"`
	Amount             *float64 `json:"amount"`
	PayStatus          *string  `json:"pay_status"`
	PayDate            *string  `json:"pay_date"`
	ExpireAt           *string  `json:"expire_at"`
}

type orgPaymentService struct {
	paymentRepo repositories.OrganizationPaymentRepository
	orgService  OrganizationService
}

func NewOrganizationPaymentService(paymentRepo repositories.OrganizationPaymentRepository, orgService OrganizationService) OrganizationPaymentService {
	return &orgPaymentService{
		paymentRepo: paymentRepo,
		orgService:  orgService,
	}
}

// Create assumes the organization reference was already resolved by the
// normalization layer in front of it.
func (s *orgPaymentService) Create(ctx context.Context, req *CreateOrganizationPaymentRequest) (*models.OrganizationPayment, error) {
	organizationID, err := uuid.Parse(req.Organization)
	if err != nil {
		return nil, err
	}

	payDate, err := time.Parse("2006-01-02", req.PayDate)
	if err != nil {
		return nil, err
	}
	expireAt, err := time.Parse("2006-01-02", req.ExpireAt)
	if err != nil {
		return nil, err
	}

	payment := &models.OrganizationPayment{
		ID:                 uuid.New(),
		OrganizationID:     organizationID,
		SubscriptionStatus: req.SubscriptionStatus,
		Amount:             req.Amount,
		PayStatus:          req.PayStatus,
		PayDate:            payDate,
		ExpireAt:           expireAt,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	if payment.PayStatus == models.PayStatusPaid {
		if err := s.orgService.ActivateSubscription(ctx, organizationID, &expireAt); err != nil {
			return nil, err
		}
	}
	return payment, nil
}

func (s *orgPaymentService) GetByID(ctx context.Context, id uuid.UUID) (*models.OrganizationPayment, error) {
	return s.paymentRepo.GetByID(ctx, id)
}

func (s *orgPaymentService) Update(ctx context.Context, id uuid.UUID, req *UpdateOrganizationPaymentRequest) (*models.OrganizationPayment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.PayStatus != nil && *req.PayStatus != payment.PayStatus {
		if payment.PayStatus != models.PayStatusPending || *req.PayStatus != models.PayStatusPaid {
			return nil, ErrInvalidTransition
		}
		payment.PayStatus = models.PayStatusPaid
	}
	if req.SubscriptionStatus != nil {
		payment.SubscriptionStatus = *req.SubscriptionStatus
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
	if req.ExpireAt != nil {
		expireAt, err := time.Parse("2006-01-02", *req.ExpireAt)
		if err != nil {
			return nil, err
		}
		payment.ExpireAt = expireAt
	}

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	if payment.PayStatus == models.PayStatusPaid {
		expireAt := payment.ExpireAt
		if err := s.orgService.ActivateSubscription(ctx, payment.OrganizationID, &expireAt); err != nil {
			return nil, err
		}
	}
	return payment, nil
}

// MarkPaid performs the pending -> paid transition and activates the
// organization's subscription through the payment's expiry date.
func (s *orgPaymentService) MarkPaid(ctx context.Context, id uuid.UUID) (*models.OrganizationPayment, error) {
	paid := models.PayStatusPaid
	return s.Update(ctx, id, &UpdateOrganizationPaymentRequest{PayStatus: &paid})
}

func (s *orgPaymentService) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return s.paymentRepo.SoftDelete(ctx, id)
}

func (s *orgPaymentService) Restore(ctx context.Context, id uuid.UUID) error {
	return s.paymentRepo.Restore(ctx, id)
}

func (s *orgPaymentService) ListByOrganization(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.OrganizationPayment, error) {
	return s.paymentRepo.ListByOrganization(ctx, organizationID, limit, offset)
}
