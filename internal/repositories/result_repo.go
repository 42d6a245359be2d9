package repositories

import (
	"context"
	"encoding/json"

	"edumart/internal/models"

	"github.com/google/uuid"
)

type ResultRepository interface {
	Create(ctx context.Context, result *models.Result) error
	GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Result, error)
	Update(ctx context.Context, result *models.Result) error
	Delete(ctx context.Context, orgID, id uuid.UUID) error
	ListByStudent(ctx context.Context, orgID, studentID uuid.UUID, limit, offset int) ([]*models.Result, error)
	List(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*models.Result, error)
}

type resultRepo struct {
	db DBTX
}

func NewResultRepo(db DBTX) ResultRepository {
	return &resultRepo{db: db}
}

const resultColumns = `id, org_id, student_id, exam_id, session, subjects, gpa, is_passed, created_at, updated_at`

// subjects is a JSONB column; marshal on write, unmarshal on read.

func (r *resultRepo) scanRow(row interface{ Scan(...any) error }) (*models.Result, error) {
	res := &models.Result{}
	var subjects []byte
	err := row.Scan(
		&res.ID, &res.OrgID, &res.StudentID, &res.ExamID, &res.Session,
		&subjects, &res.GPA, &res.IsPassed, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(subjects, &res.Subjects); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *resultRepo) Create(ctx context.Context, result *models.Result) error {
	subjects, err := json.Marshal(result.Subjects)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO results (id, org_id, student_id, exam_id, session, subjects, gpa, is_passed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err = r.db.Exec(ctx, query,
		result.ID, result.OrgID, result.StudentID, result.ExamID, result.Session,
		subjects, result.GPA, result.IsPassed)
	return err
}

func (r *resultRepo) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Result, error) {
	query := `SELECT ` + resultColumns + ` FROM results WHERE org_id = $1 AND id = $2`
	return r.scanRow(r.db.QueryRow(ctx, query, orgID, id))
}

func (r *resultRepo) Update(ctx context.Context, result *models.Result) error {
	subjects, err := json.Marshal(result.Subjects)
	if err != nil {
		return err
	}
	query := `
		UPDATE results
		SET session = $1, subjects = $2, gpa = $3, is_passed = $4, updated_at = NOW()
		WHERE org_id = $5 AND id = $6
	`
	_, err = r.db.Exec(ctx, query,
		result.Session, subjects, result.GPA, result.IsPassed, result.OrgID, result.ID)
	return err
}

func (r *resultRepo) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	query := `DELETE FROM results WHERE org_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, orgID, id)
	return err
}

func (r *resultRepo) ListByStudent(ctx context.Context, orgID, studentID uuid.UUID, limit, offset int) ([]*models.Result, error) {
	query := `
		SELECT ` + resultColumns + `
		FROM results
		WHERE org_id = $1 AND student_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	return r.queryList(ctx, query, orgID, studentID, limit, offset)
}

func (r *resultRepo) List(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*models.Result, error) {
	query := `
		SELECT ` + resultColumns + `
		FROM results
		WHERE org_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.queryList(ctx, query, orgID, limit, offset)
}

func (r *resultRepo) queryList(ctx context.Context, query string, args ...any) ([]*models.Result, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*models.Result
	for rows.Next() {
		res, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
