package services

import (
	"context"

	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	"github.com/SscSPs/academic_docs_app/internal/dto"
)

// DepartmentDirectorySvc maintains the departments documents are routed through.
type DepartmentDirectorySvc interface {
	// List returns every department ordered by ID.
	List(ctx context.Context) ([]domain.Department, error)

	// Upsert creates or updates a department. Admin only.
	Upsert(ctx context.Context, actor domain.Actor, departmentID string, req dto.UpsertDepartmentRequest) (*domain.Department, error)
}
