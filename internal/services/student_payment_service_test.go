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

type MockStudentPaymentRepository struct {
	mock.Mock
}

func (m *MockStudentPaymentRepository) Create(ctx context.Context, payment *models.StudentPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockStudentPaymentRepository) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.StudentPayment, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudentPayment), args.Error(1)
}

func (m *MockStudentPaymentRepository) Update(ctx context.Context, payment *models.StudentPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockStudentPaymentRepository) SoftDelete(ctx context.Context, orgID, id uuid.UUID) error {
	args := m.Called(ctx, orgID, id)
	return args.Error(0)
}

func (m *MockStudentPaymentRepository) Restore(ctx context.Context, orgID, id uuid.UUID) error {
	args := m.Called(ctx, orgID, id)
	return args.Error(0)
}

func (m *MockStudentPaymentRepository) List(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*models.StudentPayment, error) {
	args := m.Called(ctx, orgID, limit, offset)
	return args.Get(0).([]*models.StudentPayment), args.Error(1)
}

func (m *MockStudentPaymentRepository) ListByStudent(ctx context.Context, orgID, studentID uuid.UUID, limit, offset int) ([]*models.StudentPayment, error) {
	args := m.Called(ctx, orgID, studentID, limit, offset)
	return args.Get(0).([]*models.StudentPayment), args.Error(1)
}

type StudentPaymentServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockStudentPaymentRepository
	service   StudentPaymentService
	orgID     uuid.UUID
	studentID uuid.UUID
	ctx       context.Context
}

func (suite *StudentPaymentServiceTestSuite) SetupTest() {
	suite.mockRepo = &MockStudentPaymentRepository{}
	suite.service = NewStudentPaymentService(suite.mockRepo)
	suite.orgID = uuid.New()
	suite.studentID = uuid.New()
	suite.ctx = context.Background()

	suite.mockRepo.Test(suite.T())
}

func (suite *StudentPaymentServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestStudentPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StudentPaymentServiceTestSuite))
}

func (suite *StudentPaymentServiceTestSuite) TestCreate_Success() {
	suite.mockRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.StudentPayment")).Return(nil)

	month := "January"
	payment, err := suite.service.Create(suite.ctx, suite.orgID, &CreateStudentPaymentRequest{
		Student:     suite.studentID.String(),
		PaymentType: models.StudentPayMonthly,
		Amount:      150,
		PayStatus:   models.PayStatusPending,
		PayDate:     "2026-01-05",
		Month:       &month,
		Year:        2026,
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.orgID, payment.OrgID)
	assert.Equal(suite.T(), suite.studentID, payment.StudentID)
	assert.Equal(suite.T(), time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), payment.PayDate)
}

func (suite *StudentPaymentServiceTestSuite) TestUpdate_PendingToPaid() {
	paymentID := uuid.New()
	existing := &models.StudentPayment{
		ID:        paymentID,
		OrgID:     suite.orgID,
		StudentID: suite.studentID,
		PayStatus: models.PayStatusPending,
	}
	suite.mockRepo.On("GetByID", suite.ctx, suite.orgID, paymentID).Return(existing, nil)
	suite.mockRepo.On("Update", suite.ctx, existing).Return(nil)

	paid := models.PayStatusPaid
	payment, err := suite.service.Update(suite.ctx, suite.orgID, paymentID, &UpdateStudentPaymentRequest{PayStatus: &paid})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.PayStatusPaid, payment.PayStatus)
}

func (suite *StudentPaymentServiceTestSuite) TestUpdate_PaidToPendingRejected() {
	paymentID := uuid.New()
	existing := &models.StudentPayment{
		ID:        paymentID,
		OrgID:     suite.orgID,
		StudentID: suite.studentID,
		PayStatus: models.PayStatusPaid,
	}
	suite.mockRepo.On("GetByID", suite.ctx, suite.orgID, paymentID).Return(existing, nil)

	pending := models.PayStatusPending
	payment, err := suite.service.Update(suite.ctx, suite.orgID, paymentID, &UpdateStudentPaymentRequest{PayStatus: &pending})

	assert.Nil(suite.T(), payment)
	assert.ErrorIs(suite.T(), err, ErrInvalidTransition)
	suite.mockRepo.AssertNotCalled(suite.T(), "Update", mock.Anything, mock.Anything)
}

func (suite *StudentPaymentServiceTestSuite) TestListByStudent() {
	expected := []*models.StudentPayment{
		{ID: uuid.New(), OrgID: suite.orgID, StudentID: suite.studentID},
	}
	suite.mockRepo.On("ListByStudent", suite.ctx, suite.orgID, suite.studentID, 20, 0).Return(expected, nil)

	payments, err := suite.service.ListByStudent(suite.ctx, suite.orgID, suite.studentID, 20, 0)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), expected, payments)
}
