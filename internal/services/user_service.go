package services

import (
	"context"
	"errors"

	"edumart/internal/models"
	"edumart/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken    = errors.New("email is already in use")
	ErrRoleImmutable = errors.New("role cannot change once a profile is attached")
)

// UserService creates users together with their role profile and keeps the
// two lifecycles in step. Creation is sequenced, not transactional: a user
// row without a profile is possible when the second write fails, matching
// the persistence adapter's stated guarantees.
type UserService interface {
	Create(ctx context.Context, orgID uuid.UUID, req *CreateUserRequest) (*models.User, error)
	GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, orgID, id uuid.UUID, req *UpdateUserRequest) (*models.User, error)
	SetBlocked(ctx context.Context, orgID, id uuid.UUID, blocked bool) error
	SoftDelete(ctx context.Context, orgID, id uuid.UUID) error
	List(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*models.User, error)
}

type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Name     string `json:"name"`

	// Profile fields for admin/teacher/staff roles.
	Phone       *string `json:"phone"`
	Designation *string `json:"designation"`

	// Student profile fields.
	ClassName    string  `json:"class_name"`
	Section      *string `json:"section"`
	Roll         int     `json:"roll"`
	Session      string  `json:"session"`
	GuardianName *string `json:"guardian_name"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

type userService struct {
	userRepo    repositories.UserRepository
	studentRepo repositories.StudentRepository
	profileRepo repositories.ProfileRepository
}

func NewUserService(userRepo repositories.UserRepository, studentRepo repositories.StudentRepository, profileRepo repositories.ProfileRepository) UserService {
	return &userService{
		userRepo:    userRepo,
		studentRepo: studentRepo,
		profileRepo: profileRepo,
	}
}

func (s *userService) Create(ctx context.Context, orgID uuid.UUID, req *CreateUserRequest) (*models.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, orgID, req.Email)
	if err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		OrgID:        orgID,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Profile creation follows the user write. Not rolled back on failure.
	if req.Role == models.RoleStudent {
		student := &models.Student{
			ID:           uuid.New(),
			OrgID:        orgID,
			UserID:       user.ID,
			Name:         req.Name,
			ClassName:    req.ClassName,
			Section:      req.Section,
			Roll:         req.Roll,
			Session:      req.Session,
			GuardianName: req.GuardianName,
			Phone:        req.Phone,
		}
		if err := s.studentRepo.Create(ctx, student); err != nil {
			return nil, err
		}
	} else {
		profile := &models.Profile{
			ID:          uuid.New(),
			OrgID:       orgID,
			UserID:      user.ID,
			Role:        req.Role,
			Name:        req.Name,
			Phone:       req.Phone,
			Designation: req.Designation,
		}
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return nil, err
		}
	}

	return user, nil
}

func (s *userService) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, orgID, id)
}

func (s *userService) Update(ctx context.Context, orgID, id uuid.UUID, req *UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if req.Role != nil && *req.Role != user.Role {
		if s.hasProfile(ctx, orgID, user) {
			return nil, ErrRoleImmutable
		}
		user.Role = *req.Role
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) hasProfile(ctx context.Context, orgID uuid.UUID, user *models.User) bool {
	if user.Role == models.RoleStudent {
		student, err := s.studentRepo.GetByUserID(ctx, orgID, user.ID)
		return err == nil && student != nil
	}
	profile, err := s.profileRepo.GetByUserID(ctx, orgID, user.ID)
	return err == nil && profile != nil
}

func (s *userService) SetBlocked(ctx context.Context, orgID, id uuid.UUID, blocked bool) error {
	return s.userRepo.SetBlocked(ctx, orgID, id, blocked)
}

// SoftDelete flags the user and its role profile together.
func (s *userService) SoftDelete(ctx context.Context, orgID, id uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return err
	}
	if err := s.userRepo.SoftDelete(ctx, orgID, id); err != nil {
		return err
	}
	if user.Role == models.RoleStudent {
		return s.studentRepo.SoftDeleteByUserID(ctx, orgID, id)
	}
	return s.profileRepo.SoftDeleteByUserID(ctx, orgID, id)
}

func (s *userService) List(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*models.User, error) {
	return s.userRepo.List(ctx, orgID, limit, offset)
}
