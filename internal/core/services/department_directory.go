package services

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/SscSPs/academic_docs_app/internal/apperrors"
	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	portsrepo "github.com/SscSPs/academic_docs_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/academic_docs_app/internal/core/ports/services"
	"github.com/SscSPs/academic_docs_app/internal/dto"
	"github.com/google/uuid"
)

var departmentIDPattern = regexp.MustCompile(`^[A-Z][A-Z0-9]{1,15}$`)

// departmentDirectory implements the DepartmentDirectorySvc interface
type departmentDirectory struct {
	BaseService
	departmentRepo portsrepo.DepartmentRepositoryFacade
	audit          portssvc.AuditSinkSvc
	now            func() time.Time
}

// NewDepartmentDirectory creates the department directory service.
func NewDepartmentDirectory(departmentRepo portsrepo.DepartmentRepositoryFacade, audit portssvc.AuditSinkSvc) portssvc.DepartmentDirectorySvc {
	return &departmentDirectory{
		departmentRepo: departmentRepo,
		audit:          audit,
		now:            time.Now,
	}
}

var _ portssvc.DepartmentDirectorySvc = (*departmentDirectory)(nil)

func (s *departmentDirectory) List(ctx context.Context) ([]domain.Department, error) {
	depts, err := s.departmentRepo.ListDepartments(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list departments")
		return nil, err
	}
	return depts, nil
}

// Upsert writes the department and then records an audit entry. The directory
// write is not rolled back when the audit sink gives up.
func (s *departmentDirectory) Upsert(ctx context.Context, actor domain.Actor, departmentID string, req dto.UpsertDepartmentRequest) (*domain.Department, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: only administrators can edit departments", apperrors.ErrForbidden)
	}
	if !departmentIDPattern.MatchString(departmentID) {
		return nil, fmt.Errorf("%w: department ID must be 2-16 upper-case letters or digits", apperrors.ErrValidation)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: department name is required", apperrors.ErrValidation)
	}

	dept := domain.Department{
		DepartmentID: departmentID,
		Name:         name,
		HeadUserID:   optionalID(req.HeadUserID),
		DeanUserID:   optionalID(req.DeanUserID),
	}
	if err := s.departmentRepo.UpsertDepartment(ctx, dept); err != nil {
		s.LogError(ctx, err, "Failed to upsert department", slog.String("department_id", departmentID))
		return nil, err
	}

	entry := domain.AuditLogEntry{
		EntryID:   uuid.NewString(),
		ActorID:   actor.ID,
		Action:    domain.AuditActionDepartment,
		Detail:    fmt.Sprintf("%s %q head=%s dean=%s", departmentID, name, idOrNone(dept.HeadUserID), idOrNone(dept.DeanUserID)),
		IPAddress: actor.IPAddress,
		Severity:  domain.SeverityMedium,
		CreatedAt: s.now().UTC(),
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.LogError(ctx, err, "Department saved without audit entry", slog.String("department_id", departmentID))
	}

	s.LogInfo(ctx, "Department saved", slog.String("department_id", departmentID), slog.String("user_id", actor.ID))
	return &dept, nil
}

func optionalID(id *string) *string {
	if id == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*id)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func idOrNone(id *string) string {
	if id == nil {
		return "none"
	}
	return *id
}
