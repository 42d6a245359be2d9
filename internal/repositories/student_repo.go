package repositories

import (
	"context"

	"edumart/internal/models"

	"github.com/google/uuid"
)

type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Student, error)
	GetByUserID(ctx context.Context, orgID, userID uuid.UUID) (*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	SoftDelete(ctx context.Context, orgID, id uuid.UUID) error
	SoftDeleteByUserID(ctx context.Context, orgID, userID uuid.UUID) error
	List(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*models.Student, error)
}

type studentRepo struct {
	db DBTX
}

func NewStudentRepo(db DBTX) StudentRepository {
	return &studentRepo{db: db}
}

const studentColumns = `id, org_id, user_id, name, class_name, section, roll, session, guardian_name, phone, is_deleted, created_at, updated_at`

func (r *studentRepo) scanRow(row interface{ Scan(...any) error }) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(
		&s.ID, &s.OrgID, &s.UserID, &s.Name, &s.ClassName, &s.Section, &s.Roll,
		&s.Session, &s.GuardianName, &s.Phone, &s.IsDeleted, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *studentRepo) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (id, org_id, user_id, name, class_name, section, roll, session, guardian_name, phone, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, FALSE, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query,
		student.ID, student.OrgID, student.UserID, student.Name, student.ClassName,
		student.Section, student.Roll, student.Session, student.GuardianName, student.Phone)
	return err
}

func (r *studentRepo) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE org_id = $1 AND id = $2 AND is_deleted = FALSE`
	return r.scanRow(r.db.QueryRow(ctx, query, orgID, id))
}

func (r *studentRepo) GetByUserID(ctx context.Context, orgID, userID uuid.UUID) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE org_id = $1 AND user_id = $2 AND is_deleted = FALSE`
	return r.scanRow(r.db.QueryRow(ctx, query, orgID, userID))
}

func (r *studentRepo) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET name = $1, class_name = $2, section = $3, roll = $4, session = $5,
		    guardian_name = $6, phone = $7, updated_at = NOW()
		WHERE org_id = $8 AND id = $9 AND is_deleted = FALSE
	`
	_, err := r.db.Exec(ctx, query,
		student.Name, student.ClassName, student.Section, student.Roll, student.Session,
		student.GuardianName, student.Phone, student.OrgID, student.ID)
	return err
}

func (r *studentRepo) SoftDelete(ctx context.Context, orgID, id uuid.UUID) error {
	query := `UPDATE students SET is_deleted = TRUE, updated_at = NOW() WHERE org_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, orgID, id)
	return err
}

func (r *studentRepo) SoftDeleteByUserID(ctx context.Context, orgID, userID uuid.UUID) error {
	query := `UPDATE students SET is_deleted = TRUE, updated_at = NOW() WHERE org_id = $1 AND user_id = $2`
	_, err := r.db.Exec(ctx, query, orgID, userID)
	return err
}

func (r *studentRepo) List(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*models.Student, error) {
	query := `
		SELECT ` + studentColumns + `
		FROM students
		WHERE org_id = $1 AND is_deleted = FALSE
		ORDER BY class_name, roll
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, orgID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}
