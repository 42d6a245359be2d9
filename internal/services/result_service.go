package services

import (
	"context"

	"edumart/internal/models"
	"edumart/internal/repositories"

	"github.com/google/uuid"
)

type ResultService interface {
	Create(ctx context.Context, orgID uuid.UUID, req *CreateResultRequest) (*models.Result, error)
	GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Result, error)
	Update(ctx context.Context, orgID, id uuid.UUID, req *UpdateResultRequest) (*models.Result, error)
	Delete(ctx context.Context, orgID, id uuid.UUID) error
	List(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*models.Result, error)
	ListByStudent(ctx context.Context, orgID, studentID uuid.UUID, limit, offset int) ([]*models.Result, error)
}

type CreateResultRequest struct {
	Student  string                 `json:"student"`
	Exam     string                 `json:"exam"`
	Session  string                 `json:"session"`
	Results  []models.SubjectResult `json:"results"`
	GPA      float64                `json:"gpa"`
	IsPassed bool                   `json:"is_passed"`
}

type UpdateResultRequest struct {
	Session  *string                `json:"session"`
	Results  []models.SubjectResult `json:"results"`
	GPA      *float64               `json:"gpa"`
	IsPassed *bool                  `json:"is_passed"`
}

type resultService struct {
	resultRepo repositories.ResultRepository
}

func NewResultService(resultRepo repositories.ResultRepository) ResultService {
	return &resultService{resultRepo: resultRepo}
}

// Create assumes the student and exam references were already resolved
// inside the caller's tenant by the normalization layer in front of it.
func (s *resultService) Create(ctx context.Context, orgID uuid.UUID, req *CreateResultRequest) (*models.Result, error) {
	studentID, err := uuid.Parse(req.Student)
	if err != nil {
		return nil, err
	}
	examID, err := uuid.Parse(req.Exam)
	if err != nil {
		return nil, err
	}

	result := &models.Result{
		ID:        uuid.New(),
		OrgID:     orgID,
		StudentID: studentID,
		ExamID:    examID,
		Session:   req.Session,
		Subjects:  req.Results,
		GPA:       req.GPA,
		IsPassed:  req.IsPassed,
	}
	if err := s.resultRepo.Create(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *resultService) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Result, error) {
	return s.resultRepo.GetByID(ctx, orgID, id)
}

func (s *resultService) Update(ctx context.Context, orgID, id uuid.UUID, req *UpdateResultRequest) (*models.Result, error) {
	result, err := s.resultRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if req.Session != nil {
		result.Session = *req.Session
	}
	if req.Results != nil {
		result.Subjects = req.Results
	}
	if req.GPA != nil {
		result.GPA = *req.GPA
	}
	if req.IsPassed != nil {
		result.IsPassed = *req.IsPassed
	}

	if err := s.resultRepo.Update(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *resultService) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return s.resultRepo.Delete(ctx, orgID, id)
}

func (s *resultService) List(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*models.Result, error) {
	return s.resultRepo.List(ctx, orgID, limit, offset)
}

func (s *resultService) ListByStudent(ctx context.Context, orgID, studentID uuid.UUID, limit, offset int) ([]*models.Result, error) {
	return s.resultRepo.ListByStudent(ctx, orgID, studentID, limit, offset)
}
