package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/academic_docs_app/internal/apperrors"
	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	portsrepo "github.com/SscSPs/academic_docs_app/internal/core/ports/repositories"
	"github.com/SscSPs/academic_docs_app/internal/models"
	"github.com/SscSPs/academic_docs_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxDepartmentRepository struct {
	db dbtx
}

func newPgxDepartmentRepository(db dbtx) *PgxDepartmentRepository {
	return &PgxDepartmentRepository{db: db}
}

var _ portsrepo.DepartmentRepositoryFacade = (*PgxDepartmentRepository)(nil)

func (r *PgxDepartmentRepository) FindDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error) {
	rows, err := r.db.Query(ctx, `
		SELECT department_id, name, head_user_id, dean_user_id
		FROM departments WHERE department_id = $1`, departmentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query department", err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Department])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to collect department row", err)
	}
	dept := mapping.ToDomainDepartment(m)
	return &dept, nil
}

func (r *PgxDepartmentRepository) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	rows, err := r.db.Query(ctx, `
		SELECT department_id, name, head_user_id, dean_user_id
		FROM departments ORDER BY department_id`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query departments", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Department])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect department rows", err)
	}
	depts := make([]domain.Department, len(ms))
	for i, m := range ms {
		depts[i] = mapping.ToDomainDepartment(m)
	}
	return depts, nil
}

func (r *PgxDepartmentRepository) UpsertDepartment(ctx context.Context, department domain.Department) error {
	m := mapping.ToModelDepartment(department)
	_, err := r.db.Exec(ctx, `
		INSERT INTO departments (department_id, name, head_user_id, dean_user_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (department_id) DO UPDATE
		SET name = EXCLUDED.name,
		    head_user_id = EXCLUDED.head_user_id,
		    dean_user_id = EXCLUDED.dean_user_id`,
		m.DepartmentID, m.Name, m.HeadUserID, m.DeanUserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert department "+m.DepartmentID, err)
	}
	return nil
}
