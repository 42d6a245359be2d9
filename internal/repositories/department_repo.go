package repositories

import (
	"context"

	"edumart/internal/models"

	"github.com/google/uuid"
)

type DepartmentRepository interface {
	Create(ctx context.Context, department *models.Department) error
	GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Department, error)
	Update(ctx context.Context, department *models.Department) error
	Delete(ctx context.Context, orgID, id uuid.UUID) error
	List(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*models.Department, error)
}

type departmentRepo struct {
	db DBTX
}

func NewDepartmentRepo(db DBTX) DepartmentRepository {
	return &departmentRepo{db: db}
}

func (r *departmentRepo) Create(ctx context.Context, department *models.Department) error {
	query := `
		INSERT INTO departments (id, org_id, name, head, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, department.ID, department.OrgID, department.Name, department.Head)
	return err
}

func (r *departmentRepo) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Department, error) {
	d := &models.Department{}
	query := `SELECT id, org_id, name, head, created_at, updated_at FROM departments WHERE org_id = $1 AND id = $2`
	err := r.db.QueryRow(ctx, query, orgID, id).Scan(
		&d.ID, &d.OrgID, &d.Name, &d.Head, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *departmentRepo) Update(ctx context.Context, department *models.Department) error {
	query := `UPDATE departments SET name = $1, head = $2, updated_at = NOW() WHERE org_id = $3 AND id = $4`
	_, err := r.db.Exec(ctx, query, department.Name, department.Head, department.OrgID, department.ID)
	return err
}

func (r *departmentRepo) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	query := `DELETE FROM departments WHERE org_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, orgID, id)
	return err
}

func (r *departmentRepo) List(ctx context.Context, orgID uuid.UUID, limit, offset int) ([]*models.Department, error) {
	query := `
		SELECT id, org_id, name, head, created_at, updated_at
		FROM departments
		WHERE org_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, orgID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []*models.Department
	for rows.Next() {
		d := &models.Department{}
		if err := rows.Scan(&d.ID, &d.OrgID, &d.Name, &d.Head, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}
