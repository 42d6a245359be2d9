package services

import (
	"context"
	"testing"
	"time"

	"edumart/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockOrganizationPaymentRepository struct {
	mock.Mock
}

func (m *MockOrganizationPaymentRepository) Create(ctx context.Context, payment *models.OrganizationPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockOrganizationPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.OrganizationPayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrganizationPayment), args.Error(1)
}

func (m *MockOrganizationPaymentRepository) Update(ctx context.Context, payment *models.OrganizationPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockOrganizationPaymentRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrganizationPaymentRepository) Restore(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrganizationPaymentRepository) ListByOrganization(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.OrganizationPayment, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	return args.Get(0).([]*models.OrganizationPayment), args.Error(1)
}

type MockOrganizationService struct {
	mock.Mock
}

func (m *MockOrganizationService) Create(ctx context.Context, req *CreateOrganizationRequest) (*models.Organization, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Organization), args.Error(1)
}

func (m *MockOrganizationService) GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Organization), args.Error(1)
}

func (m *MockOrganizationService) GetBySubdomain(ctx context.Context, subdomain string) (*models.Organization, error) {
	args := m.Called(ctx, subdomain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Organization), args.Error(1)
}

func (m *MockOrganizationService) Update(ctx context.Context, org *models.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrganizationService) List(ctx context.Context, limit, offset int) ([]*models.Organization, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Organization), args.Error(1)
}

func (m *MockOrganizationService) ExpireOverdue(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrganizationService) ActivateSubscription(ctx context.Context, id uuid.UUID, expiresAt *time.Time) error {
	args := m.Called(ctx, id, expiresAt)
	return args.Error(0)
}

type OrgPaymentServiceTestSuite struct {
	suite.Suite
	mockRepo   *MockOrganizationPaymentRepository
	mockOrgSvc *MockOrganizationService
	service    OrganizationPaymentService
	orgID      uuid.UUID
	ctx        context.Context
}

func (suite *OrgPaymentServiceTestSuite) SetupTest() {
	suite.mockRepo = &MockOrganizationPaymentRepository{}
	suite.mockOrgSvc = &MockOrganizationService{}
	suite.service = NewOrganizationPaymentService(suite.mockRepo, suite.mockOrgSvc)
	suite.orgID = uuid.New()
	suite.ctx = context.Background()

	suite.mockRepo.Test(suite.T())
	suite.mockOrgSvc.Test(suite.T())
}

func (suite *OrgPaymentServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockOrgSvc.AssertExpectations(suite.T())
}

func TestOrgPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrgPaymentServiceTestSuite))
}

func (suite *OrgPaymentServiceTestSuite) TestCreate_Success() {
	suite.mockRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.OrganizationPayment")).Return(nil)

	payment, err := suite.service.Create(suite.ctx, &CreateOrganizationPaymentRequest{
		Organization:       suite.orgID.String(),
		SubscriptionStatus: models.BillingMonthly,
		Amount:             500,
		PayStatus:          models.PayStatusPending,
		PayDate:            "2026-01-15",
		ExpireAt:           "2026-02-15",
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.orgID, payment.OrganizationID)
	assert.Equal(suite.T(), models.PayStatusPending, payment.PayStatus)
	assert.Equal(suite.T(), time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC), payment.ExpireAt)
}

func (suite *OrgPaymentServiceTestSuite) TestCreate_PaidActivatesSubscription() {
	suite.mockRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.OrganizationPayment")).Return(nil)
	suite.mockOrgSvc.On("ActivateSubscription", suite.ctx, suite.orgID, mock.AnythingOfType("*time.Time")).Return(nil)

	payment, err := suite.service.Create(suite.ctx, &CreateOrganizationPaymentRequest{
		Organization:       suite.orgID.String(),
		SubscriptionStatus: models.BillingLifetime,
		Amount:             5000,
		PayStatus:          models.PayStatusPaid,
		PayDate:            "2026-01-15",
		ExpireAt:           "2027-01-15",
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.PayStatusPaid, payment.PayStatus)
}

func (suite *OrgPaymentServiceTestSuite) TestUpdate_PendingToPaid() {
	paymentID := uuid.New()
	existing := &models.OrganizationPayment{
		ID:             paymentID,
		OrganizationID: suite.orgID,
		PayStatus:      models.PayStatusPending,
		ExpireAt:       time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
	}
	suite.mockRepo.On("GetByID", suite.ctx, paymentID).Return(existing, nil)
	suite.mockRepo.On("Update", suite.ctx, existing).Return(nil)
	suite.mockOrgSvc.On("ActivateSubscription", suite.ctx, suite.orgID, mock.AnythingOfType("*time.Time")).Return(nil)

	paid := models.PayStatusPaid
	payment, err := suite.service.Update(suite.ctx, paymentID, &UpdateOrganizationPaymentRequest{PayStatus: &paid})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.PayStatusPaid, payment.PayStatus)
}

func (suite *OrgPaymentServiceTestSuite) TestUpdate_PaidToPendingRejected() {
	paymentID := uuid.New()
	existing := &models.OrganizationPayment{
		ID:             paymentID,
		OrganizationID: suite.orgID,
		PayStatus:      models.PayStatusPaid,
	}
	suite.mockRepo.On("GetByID", suite.ctx, paymentID).Return(existing, nil)

	pending := models.PayStatusPending
	payment, err := suite.service.Update(suite.ctx, paymentID, &UpdateOrganizationPaymentRequest{PayStatus: &pending})

	assert.Nil(suite.T(), payment)
	assert.ErrorIs(suite.T(), err, ErrInvalidTransition)
	suite.mockRepo.AssertNotCalled(suite.T(), "Update", mock.Anything, mock.Anything)
}

func (suite *OrgPaymentServiceTestSuite) TestUpdate_SamePayStatusIsNoTransition() {
	paymentID := uuid.New()
	existing := &models.OrganizationPayment{
		ID:             paymentID,
		OrganizationID: suite.orgID,
		PayStatus:      models.PayStatusPending,
		Amount:         100,
	}
	suite.mockRepo.On("GetByID", suite.ctx, paymentID).Return(existing, nil)
	suite.mockRepo.On("Update", suite.ctx, existing).Return(nil)

	pending := models.PayStatusPending
	amount := 250.0
	payment, err := suite.service.Update(suite.ctx, paymentID, &UpdateOrganizationPaymentRequest{
		PayStatus: &pending,
		Amount:    &amount,
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 250.0, payment.Amount)
	assert.Equal(suite.T(), models.PayStatusPending, payment.PayStatus)
}

func (suite *OrgPaymentServiceTestSuite) TestMarkPaid() {
	paymentID := uuid.New()
	existing := &models.OrganizationPayment{
		ID:             paymentID,
		OrganizationID: suite.orgID,
		PayStatus:      models.PayStatusPending,
		ExpireAt:       time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	suite.mockRepo.On("GetByID", suite.ctx, paymentID).Return(existing, nil)
	suite.mockRepo.On("Update", suite.ctx, existing).Return(nil)
	suite.mockOrgSvc.On("ActivateSubscription", suite.ctx, suite.orgID, mock.AnythingOfType("*time.Time")).Return(nil)

	payment, err := suite.service.MarkPaid(suite.ctx, paymentID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.PayStatusPaid, payment.PayStatus)
}

func (suite *OrgPaymentServiceTestSuite) TestSoftDeleteAndRestore() {
	paymentID := uuid.New()
	suite.mockRepo.On("SoftDelete", suite.ctx, paymentID).Return(nil)
	suite.mockRepo.On("Restore", suite.ctx, paymentID).Return(nil)

	assert.NoError(suite.T(), suite.service.SoftDelete(suite.ctx, paymentID))
	assert.NoError(suite.T(), suite.service.Restore(suite.ctx, paymentID))
}

