package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/academic_docs_app/internal/apperrors"
	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	portsrepo "github.com/SscSPs/academic_docs_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/academic_docs_app/internal/core/ports/services"
	"github.com/SscSPs/academic_docs_app/internal/dto"
	"github.com/google/uuid"
)

// documentStore implements the DocumentSvcFacade interface
type documentStore struct {
	BaseService
	documentRepo portsrepo.DocumentRepositoryFacade
	txManager    portsrepo.TransactionManager
	audit        portssvc.AuditSinkSvc
	now          func() time.Time
}

// DocumentOption is a functional option for configuring the document store
type DocumentOption func(*documentStore)

// WithDocumentAudit records a "create" entry for every new document.
func WithDocumentAudit(audit portssvc.AuditSinkSvc, txManager portsrepo.TransactionManager) DocumentOption {
	return func(s *documentStore) {
		s.audit = audit
		s.txManager = txManager
	}
}

// WithDocumentClock overrides the time source.
func WithDocumentClock(now func() time.Time) DocumentOption {
	return func(s *documentStore) {
		s.now = now
	}
}

// NewDocumentStore creates a new document store with the provided options
func NewDocumentStore(repo portsrepo.DocumentRepositoryFacade, options ...DocumentOption) portssvc.DocumentSvcFacade {
	svc := &documentStore{
		documentRepo: repo,
		now:          time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure documentStore implements the DocumentSvcFacade interface
var _ portssvc.DocumentSvcFacade = (*documentStore)(nil)

// CreateDocument stores a new draft owned by the actor.
func (s *documentStore) CreateDocument(ctx context.Context, actor domain.Actor, req dto.CreateDocumentRequest) (*domain.Document, error) {
	if actor.ID == "" || !actor.Role.IsValid() {
		return nil, fmt.Errorf("%w: actor identity is required", apperrors.ErrValidation)
	}
	if actor.Role != domain.RoleTeacher && actor.Role != domain.RoleAdmin {
		s.LogWarn(ctx, "Document creation refused",
			slog.String("user_id", actor.ID),
			slog.String("role", string(actor.Role)))
		return nil, fmt.Errorf("%w: only teachers can upload documents", apperrors.ErrForbidden)
	}

	title := strings.TrimSpace(req.Title)
	filePath := strings.TrimSpace(req.FilePath)
	if title == "" || filePath == "" {
		return nil, fmt.Errorf("%w: title and file path are required", apperrors.ErrValidation)
	}

	departmentID := req.DepartmentID
	if departmentID == "" {
		departmentID = actor.DepartmentID
	}
	if departmentID == "" {
		return nil, fmt.Errorf("%w: department is required", apperrors.ErrValidation)
	}
	if actor.Role == domain.RoleTeacher && departmentID != actor.DepartmentID {
		return nil, fmt.Errorf("%w: teachers can only upload to their own department", apperrors.ErrForbidden)
	}

	now := s.now().UTC()
	doc := domain.Document{
		DocumentID:   uuid.NewString(),
		OwnerID:      actor.ID,
		DepartmentID: departmentID,
		Title:        title,
		Description:  strings.TrimSpace(req.Description),
		FilePath:     filePath,
		Status:       domain.StatusDraft,
		Version:      0,
		Timestamps:   domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	if s.txManager == nil || s.audit == nil {
		if err := s.documentRepo.SaveDocument(ctx, doc); err != nil {
			s.LogError(ctx, err, "Failed to save document", slog.String("document_id", doc.DocumentID))
			return nil, err
		}
		return &doc, nil
	}

	entry := domain.AuditLogEntry{
		ActorID:    actor.ID,
		DocumentID: doc.DocumentID,
		Action:     domain.AuditActionCreate,
		Detail:     fmt.Sprintf("uploaded %q", title),
		IPAddress:  actor.IPAddress,
		Severity:   domain.SeverityLow,
		CreatedAt:  now,
	}
	entry.EntryID = uuid.NewString()
	auditPending := false
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		if err := tx.Documents().SaveDocument(ctx, doc); err != nil {
			return err
		}
		if err := s.audit.RecordWith(ctx, tx.Audit(), entry); err != nil {
			auditPending = true
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create document", slog.String("document_id", doc.DocumentID))
		return nil, err
	}
	if auditPending {
		// The sink logs, counts and escalates the loss itself.
		_ = s.audit.Record(context.WithoutCancel(ctx), entry)
	}

	s.LogInfo(ctx, "Document created",
		slog.String("document_id", doc.DocumentID),
		slog.String("department_id", departmentID))
	return &doc, nil
}

// GetDocumentByID retrieves a document the actor is allowed to see.
func (s *documentStore) GetDocumentByID(ctx context.Context, documentID string, actor domain.Actor) (*domain.Document, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find document by ID", slog.String("document_id", documentID))
		}
		return nil, err
	}
	if !domain.CanView(actor, *doc) {
		return nil, fmt.Errorf("%w: document %s is not visible to this user", apperrors.ErrForbidden, documentID)
	}
	return doc, nil
}

// UpdateStatus performs the version-guarded status write.
func (s *documentStore) UpdateStatus(ctx context.Context, w portsrepo.DocumentWriter, documentID string, fromVersion int64, status domain.DocumentStatus, reviewerID *string, at time.Time) (*domain.Document, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, status)
	}
	if (reviewerID != nil) != (status == domain.StatusUnderReview) {
		return nil, fmt.Errorf("%w: reviewer must be set exactly when under review", apperrors.ErrValidation)
	}
	if w == nil {
		w = s.documentRepo
	}
	doc, err := w.UpdateDocumentStatus(ctx, documentID, fromVersion, status, reviewerID, at)
	if err != nil {
		if errors.Is(err, apperrors.ErrVersionConflict) {
			s.LogDebug(ctx, "Stale document version",
				slog.String("document_id", documentID),
				slog.Int64("from_version", fromVersion))
		}
		return nil, err
	}
	return doc, nil
}
