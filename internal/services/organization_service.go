package services

import (
	"context"
	"errors"
	"log"
	"time"

	"edumart/internal/models"
	"edumart/internal/repositories"

	"github.com/google/uuid"
)

var ErrSubdomainTaken = errors.New("subdomain is already taken")

type OrganizationService interface {
	Create(ctx context.Context, req *CreateOrganizationRequest) (*models.Organization, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
	GetBySubdomain(ctx context.Context, subdomain string) (*models.Organization, error)
	Update(ctx context.Context, org *models.Organization) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Organization, error)
	ExpireOverdue(ctx context.Context) (int64, error)
	ActivateSubscription(ctx context.Context, id uuid.UUID, expiresAt *time.Time) error
}

type CreateOrganizationRequest struct {
	Name         string     `json:"name"`
	Subdomain    string     `json:"subdomain"`
	CustomDomain *string    `json:"custom_domain"`
	LogoURL      *string    `json:"logo_url"`
	Plan         string     `json:"plan"`
	ExpiresAt    *time.Time `json:"expires_at"`
}

type organizationService struct {
	orgRepo repositories.OrganizationRepository
}

func NewOrganizationService(orgRepo repositories.OrganizationRepository) OrganizationService {
	return &organizationService{orgRepo: orgRepo}
}

func (s *organizationService) Create(ctx context.Context, req *CreateOrganizationRequest) (*models.Organization, error) {
	// Subdomain uniqueness is also enforced by the unique index; checking
	// first gives a cleaner error for the common case.
	existing, err := s.orgRepo.GetBySubdomain(ctx, req.Subdomain)
	if err == nil && existing != nil {
		return nil, ErrSubdomainTaken
	}

	org := &models.Organization{
		ID:                 uuid.New(),
		Name:               req.Name,
		Subdomain:          req.Subdomain,
		CustomDomain:       req.CustomDomain,
		LogoURL:            req.LogoURL,
		Plan:               req.Plan,
		SubscriptionStatus: models.SubscriptionActive,
		ExpiresAt:          req.ExpiresAt,
	}
	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

func (s *organizationService) GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	return s.orgRepo.GetByID(ctx, id)
}

func (s *organizationService) GetBySubdomain(ctx context.Context, subdomain string) (*models.Organization, error) {
	return s.orgRepo.GetBySubdomain(ctx, subdomain)
}

func (s *organizationService) Update(ctx context.Context, org *models.Organization) error {
	return s.orgRepo.Update(ctx, org)
}

func (s *organizationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.orgRepo.Delete(ctx, id)
}

func (s *organizationService) List(ctx context.Context, limit, offset int) ([]*models.Organization, error) {
	return s.orgRepo.List(ctx, limit, offset)
}

// ExpireOverdue is run by the background sweep.
func (s *organizationService) ExpireOverdue(ctx context.Context) (int64, error) {
	n, err := s.orgRepo.ExpireOverdue(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Printf("Marked %d organizations expired", n)
	}
	return n, nil
}

// ActivateSubscription flips an organization back to active, typically when
// an organization payment is marked paid.
func (s *organizationService) ActivateSubscription(ctx context.Context, id uuid.UUID, expiresAt *time.Time) error {
	org, err := s.orgRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	org.SubscriptionStatus = models.SubscriptionActive
	if expiresAt != nil {
		org.ExpiresAt = expiresAt
	}
	return s.orgRepo.Update(ctx, org)
}
