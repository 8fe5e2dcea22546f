package repositories

import (
	"context"

	"github.com/SscSPs/academic_docs_app/internal/core/domain"
)

// DepartmentReader resolves who heads a department.
type DepartmentReader interface {
	FindDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error)

	// ListDepartments returns every department ordered by ID.
	ListDepartments(ctx context.Context) ([]domain.Department, error)
}

// DepartmentWriter maintains the department directory.
type DepartmentWriter interface {
	// UpsertDepartment inserts the department or replaces its name and assignments.
	UpsertDepartment(ctx context.Context, department domain.Department) error
}

// DepartmentRepositoryFacade combines all department-related repository interfaces
type DepartmentRepositoryFacade interface {
	DepartmentReader
	DepartmentWriter
}
