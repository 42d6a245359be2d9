package services

import (
	"context"
	"errors"
	"testing"

	"edumart/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, orgID uuid.UUID, email string) (*models.User, error) {
	args := m.Called(ctx, orgID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SetBlocked(ctx context.Context, orgID, id uuid.UUID, blocked bool) error {
	args := m.Called(ctx, orgID, id, blocked)
	return args.Error(0)
}

func (m *MockUserRepository) SoftDelete(ctx context.Context, orgID, id uuid.UUID) error {
	args := m.Called(ctx, orgID, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, orgID, limit, offset)
	return args.Get(0).([]*models.User), args.Error(1)
}

type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) Create(ctx context.Context, student *models.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Student, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentRepository) GetByUserID(ctx context.Context, orgID, userID uuid.UUID) (*models.Student, error) {
	args := m.Called(ctx, orgID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentRepository) Update(ctx context.Context, student *models.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) SoftDelete(ctx context.Context, orgID, id uuid.UUID) error {
	args := m.Called(ctx, orgID, id)
	return args.Error(0)
}

func (m *MockStudentRepository) SoftDeleteByUserID(ctx context.Context, orgID, userID uuid.UUID) error {
	args := m.Called(ctx, orgID, userID)
	return args.Error(0)
}

func (m *MockStudentRepository) List(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*models.Student, error) {
	args := m.Called(ctx, orgID, limit, offset)
	return args.Get(0).([]*models.Student), args.Error(1)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) GetByUserID(ctx context.Context, orgID, userID uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, orgID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) SoftDeleteByUserID(ctx context.Context, orgID, userID uuid.UUID) error {
	args := m.Called(ctx, orgID, userID)
	return args.Error(0)
}

type UserServiceTestSuite struct {
	suite.Suite
	mockUsers    *MockUserRepository
	mockStudents *MockStudentRepository
	mockProfiles *MockProfileRepository
	service      UserService
	orgID        uuid.UUID
	ctx          context.Context
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUsers = &MockUserRepository{}
	suite.mockStudents = &MockStudentRepository{}
	suite.mockProfiles = &MockProfileRepository{}
	suite.service = NewUserService(suite.mockUsers, suite.mockStudents, suite.mockProfiles)
	suite.orgID = uuid.New()
	suite.ctx = context.Background()

	suite.mockUsers.Test(suite.T())
	suite.mockStudents.Test(suite.T())
	suite.mockProfiles.Test(suite.T())
}

func (suite *UserServiceTestSuite) TearDownTest() {
	suite.mockUsers.AssertExpectations(suite.T())
	suite.mockStudents.AssertExpectations(suite.T())
	suite.mockProfiles.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (suite *UserServiceTestSuite) TestCreate_StudentGetsStudentProfile() {
	suite.mockUsers.On("GetByEmail", suite.ctx, suite.orgID, "student@school.test").Return(nil, errors.New("not found"))
	suite.mockUsers.On("Create", suite.ctx, mock.AnythingOfType("*models.User")).Return(nil)
	suite.mockStudents.On("Create", suite.ctx, mock.MatchedBy(func(s *models.Student) bool {
		return s.Name == "A Student" && s.ClassName == "Ten" && s.Roll == 7
	})).Return(nil)

	user, err := suite.service.Create(suite.ctx, suite.orgID, &CreateUserRequest{
		Email:     "student@school.test",
		Password:  "s3cret-pass",
		Role:      models.RoleStudent,
		Name:      "A Student",
		ClassName: "Ten",
		Roll:      7,
		Session:   "2025-2026",
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.orgID, user.OrgID)
	assert.Equal(suite.T(), models.RoleStudent, user.Role)
	// The stored hash verifies against the original password.
	assert.NoError(suite.T(), bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")))
	suite.mockProfiles.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreate_TeacherGetsRoleProfile() {
	suite.mockUsers.On("GetByEmail", suite.ctx, suite.orgID, "teacher@school.test").Return(nil, errors.New("not found"))
	suite.mockUsers.On("Create", suite.ctx, mock.AnythingOfType("*models.User")).Return(nil)
	suite.mockProfiles.On("Create", suite.ctx, mock.MatchedBy(func(p *models.Profile) bool {
		return p.Role == models.RoleTeacher && p.Name == "A Teacher"
	})).Return(nil)

	user, err := suite.service.Create(suite.ctx, suite.orgID, &CreateUserRequest{
		Email:    "teacher@school.test",
		Password: "s3cret-pass",
		Role:     models.RoleTeacher,
		Name:     "A Teacher",
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.RoleTeacher, user.Role)
	suite.mockStudents.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreate_DuplicateEmailRejected() {
	suite.mockUsers.On("GetByEmail", suite.ctx, suite.orgID, "taken@school.test").
		Return(&models.User{ID: uuid.New(), Email: "taken@school.test"}, nil)

	user, err := suite.service.Create(suite.ctx, suite.orgID, &CreateUserRequest{
		Email:    "taken@school.test",
		Password: "s3cret-pass",
		Role:     models.RoleAdmin,
		Name:     "Someone",
	})

	assert.Nil(suite.T(), user)
	assert.ErrorIs(suite.T(), err, ErrEmailTaken)
	suite.mockUsers.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdate_RoleImmutableWithProfile() {
	userID := uuid.New()
	existing := &models.User{ID: userID, OrgID: suite.orgID, Role: models.RoleTeacher}
	suite.mockUsers.On("GetByID", suite.ctx, suite.orgID, userID).Return(existing, nil)
	suite.mockProfiles.On("GetByUserID", suite.ctx, suite.orgID, userID).
		Return(&models.Profile{ID: uuid.New(), UserID: userID, Role: models.RoleTeacher}, nil)

	admin := models.RoleAdmin
	user, err := suite.service.Update(suite.ctx, suite.orgID, userID, &UpdateUserRequest{Role: &admin})

	assert.Nil(suite.T(), user)
	assert.ErrorIs(suite.T(), err, ErrRoleImmutable)
	suite.mockUsers.AssertNotCalled(suite.T(), "Update", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdate_RoleChangeAllowedWithoutProfile() {
	userID := uuid.New()
	existing := &models.User{ID: userID, OrgID: suite.orgID, Role: models.RoleStaff}
	suite.mockUsers.On("GetByID", suite.ctx, suite.orgID, userID).Return(existing, nil)
	suite.mockProfiles.On("GetByUserID", suite.ctx, suite.orgID, userID).Return(nil, errors.New("not found"))
	suite.mockUsers.On("Update", suite.ctx, existing).Return(nil)

	admin := models.RoleAdmin
	user, err := suite.service.Update(suite.ctx, suite.orgID, userID, &UpdateUserRequest{Role: &admin})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.RoleAdmin, user.Role)
}

func (suite *UserServiceTestSuite) TestSoftDelete_CascadesToStudentProfile() {
	userID := uuid.New()
	existing := &models.User{ID: userID, OrgID: suite.orgID, Role: models.RoleStudent}
	suite.mockUsers.On("GetByID", suite.ctx, suite.orgID, userID).Return(existing, nil)
	suite.mockUsers.On("SoftDelete", suite.ctx, suite.orgID, userID).Return(nil)
	suite.mockStudents.On("SoftDeleteByUserID", suite.ctx, suite.orgID, userID).Return(nil)

	assert.NoError(suite.T(), suite.service.SoftDelete(suite.ctx, suite.orgID, userID))
	suite.mockProfiles.AssertNotCalled(suite.T(), "SoftDeleteByUserID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestSoftDelete_CascadesToRoleProfile() {
	userID := uuid.New()
	existing := &models.User{ID: userID, OrgID: suite.orgID, Role: models.RoleAdmin}
	suite.mockUsers.On("GetByID", suite.ctx, suite.orgID, userID).Return(existing, nil)
	suite.mockUsers.On("SoftDelete", suite.ctx, suite.orgID, userID).Return(nil)
	suite.mockProfiles.On("SoftDeleteByUserID", suite.ctx, suite.orgID, userID).Return(nil)

	assert.NoError(suite.T(), suite.service.SoftDelete(suite.ctx, suite.orgID, userID))
}
