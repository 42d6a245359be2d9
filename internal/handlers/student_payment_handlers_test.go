package handlers

import (
	"context"
	"net/http"
	"testing"

	"edumart/internal/models"
	"edumart/internal/normalize"
	"edumart/internal/services"
	"edumart/internal/validation"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockStudentPaymentService struct {
	mock.Mock
}

func (m *MockStudentPaymentService) Create(ctx context.Context, orgID uuid.UUID, req *services.CreateStudentPaymentRequest) (*models.StudentPayment, error) {
	args := m.Called(ctx, orgID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudentPayment), args.Error(1)
}

func (m *MockStudentPaymentService) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.StudentPayment, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudentPayment), args.Error(1)
}

func (m *MockStudentPaymentService) Update(ctx context.Context, orgID, id uuid.UUID, req *services.UpdateStudentPaymentRequest) (*models.StudentPayment, error) {
	args := m.Called(ctx, orgID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudentPayment), args.Error(1)
}

func (m *MockStudentPaymentService) SoftDelete(ctx context.Context, orgID, id uuid.UUID) error {
	args := m.Called(ctx, orgID, id)
	return args.Error(0)
}

func (m *MockStudentPaymentService) Restore(ctx context.Context, orgID, id uuid.UUID) error {
	args := m.Called(ctx, orgID, id)
	return args.Error(0)
}

func (m *MockStudentPaymentService) List(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*models.StudentPayment, error) {
	args := m.Called(ctx, orgID, limit, offset)
	return args.Get(0).([]*models.StudentPayment), args.Error(1)
}

func (m *MockStudentPaymentService) ListByStudent(ctx context.Context, orgID, studentID uuid.UUID, limit, offset int) ([]*models.StudentPayment, error) {
	args := m.Called(ctx, orgID, studentID, limit, offset)
	return args.Get(0).([]*models.StudentPayment), args.Error(1)
}

type StudentPaymentHandlersTestSuite struct {
	suite.Suite
	e           *echo.Echo
	mockService *MockStudentPaymentService
	refs        *fakeRefRepo
	handlers    *StudentPaymentHandlers
	orgID       uuid.UUID
	studentID   uuid.UUID
}

func (suite *StudentPaymentHandlersTestSuite) SetupTest() {
	suite.e = echo.New()
	suite.mockService = &MockStudentPaymentService{}
	suite.refs = &fakeRefRepo{}
	suite.handlers = NewStudentPaymentHandlers(
		suite.mockService,
		normalize.NewResolver(suite.refs),
		validation.NewEntityRegistry(),
	)
	suite.orgID = uuid.New()
	suite.studentID = uuid.New()

	suite.mockService.Test(suite.T())
}

func (suite *StudentPaymentHandlersTestSuite) TearDownTest() {
	suite.mockService.AssertExpectations(suite.T())
}

func TestStudentPaymentHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(StudentPaymentHandlersTestSuite))
}

func (suite *StudentPaymentHandlersTestSuite) payload() map[string]any {
	return map[string]any{
		"student":      suite.studentID.String(),
		"payment_type": models.StudentPayMonthly,
		"amount":       150,
		"pay_status":   models.PayStatusPending,
		"pay_date":     "2026-01-05",
		"month":        "January",
		"year":         2026,
	}
}

func (suite *StudentPaymentHandlersTestSuite) TestCreate_ResolvesStudentInTenantScope() {
	suite.refs.add("student", suite.orgID, suite.studentID)
	suite.mockService.On("Create", mock.Anything, suite.orgID, mock.AnythingOfType("*services.CreateStudentPaymentRequest")).
		Return(&models.StudentPayment{ID: uuid.New(), OrgID: suite.orgID, StudentID: suite.studentID}, nil)

	c, rec := newJSONContext(suite.T(), suite.e, suite.payload(), &suite.orgID)
	assert.NoError(suite.T(), suite.handlers.CreateStudentPayment(c))
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)
}

func (suite *StudentPaymentHandlersTestSuite) TestCreate_UnknownStudentNotPersisted() {
	c, rec := newJSONContext(suite.T(), suite.e, suite.payload(), &suite.orgID)
	assert.NoError(suite.T(), suite.handlers.CreateStudentPayment(c))

	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	suite.mockService.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *StudentPaymentHandlersTestSuite) TestCreate_CrossTenantStudentLooksAbsent() {
	// The student exists, but under a different organization than the
	// caller's scope, so resolution reports the same way as absence.
	otherOrg := uuid.New()
	suite.refs.add("student", otherOrg, suite.studentID)

	c, rec := newJSONContext(suite.T(), suite.e, suite.payload(), &suite.orgID)
	assert.NoError(suite.T(), suite.handlers.CreateStudentPayment(c))

	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	suite.mockService.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything, mock.Anything)
}
