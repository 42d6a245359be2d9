package repositories

import (
	"context"

	"edumart/internal/models"

	"github.com/google/uuid"
)

type ExamRepository interface {
	Create(ctx context.Context, exam *models.Exam) error
	GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Exam, error)
	Update(ctx context.Context, exam *models.Exam) error
	SoftDelete(ctx context.Context, orgID, id uuid.UUID) error
	Restore(ctx context.Context, orgID, id uuid.UUID) error
	List(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*models.Exam, error)
}

type examRepo struct {
	db DBTX
}

func NewExamRepo(db DBTX) ExamRepository {
	return &examRepo{db: db}
}

const examColumns = `id, org_id, name, exam_type, year, is_deleted, created_at, updated_at`

func (r *examRepo) Create(ctx context.Context, exam *models.Exam) error {
	query := `
		INSERT INTO exams (id, org_id, name, exam_type, year, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, exam.ID, exam.OrgID, exam.Name, exam.ExamType, exam.Year)
	return err
}

func (r *examRepo) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Exam, error) {
	exam := &models.Exam{}
	query := `SELECT ` + examColumns + ` FROM exams WHERE org_id = $1 AND id = $2`
	err := r.db.QueryRow(ctx, query, orgID, id).Scan(
		&exam.ID, &exam.OrgID, &exam.Name, &exam.ExamType, &exam.Year,
		&exam.IsDeleted, &exam.CreatedAt, &exam.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return exam, nil
}

func (r *examRepo) Update(ctx context.Context, exam *models.Exam) error {
	query := `
		UPDATE exams
		SET name = $1, exam_type = $2, year = $3, updated_at = NOW()
		WHERE org_id = $4 AND id = $5 AND is_deleted = FALSE
	`
	_, err := r.db.Exec(ctx, query, exam.Name, exam.ExamType, exam.Year, exam.OrgID, exam.ID)
	return err
}

func (r *examRepo) SoftDelete(ctx context.Context, orgID, id uuid.UUID) error {
	query := `UPDATE exams SET is_deleted = TRUE, updated_at = NOW() WHERE org_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, orgID, id)
	return err
}

func (r *examRepo) Restore(ctx context.Context, orgID, id uuid.UUID) error {
	query := `UPDATE exams SET is_deleted = FALSE, updated_at = NOW() WHERE org_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, orgID, id)
	return err
}

func (r *examRepo) List(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*models.Exam, error) {
	query := `
		SELECT ` + examColumns + `
		FROM exams
		WHERE org_id = $1 AND is_deleted = FALSE
		ORDER BY year DESC, name
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, orgID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exams []*models.Exam
	for rows.Next() {
		exam := &models.Exam{}
		if err := rows.Scan(
			&exam.ID, &exam.OrgID, &exam.Name, &exam.ExamType, &exam.Year,
			&exam.IsDeleted, &exam.CreatedAt, &exam.UpdatedAt); err != nil {
			return nil, err
		}
		exams = append(exams, exam)
	}
	return exams, rows.Err()
}
