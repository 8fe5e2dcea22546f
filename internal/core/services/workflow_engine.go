package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SscSPs/academic_docs_app/internal/apperrors"
	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	portsrepo "github.com/SscSPs/academic_docs_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/academic_docs_app/internal/core/ports/services"
	"github.com/SscSPs/academic_docs_app/internal/dto"
	"github.com/google/uuid"
)

// workflowEngine implements the WorkflowSvcFacade interface. It is the only
// component allowed to change a document's status.
type workflowEngine struct {
	BaseService
	documentRepo   portsrepo.DocumentReader
	departmentRepo portsrepo.DepartmentReader
	txManager      portsrepo.TransactionManager
	documents      portssvc.DocumentWriterSvc
	comments       portssvc.CommentLedgerSvc
	audit          portssvc.AuditSinkSvc
	notifier       portssvc.NotificationSvc
	metrics        *Metrics
	now            func() time.Time
}

// WorkflowDeps groups the collaborators of the workflow engine.
type WorkflowDeps struct {
	DocumentRepo   portsrepo.DocumentReader
	DepartmentRepo portsrepo.DepartmentReader
	TxManager      portsrepo.TransactionManager
	Documents      portssvc.DocumentWriterSvc
	Comments       portssvc.CommentLedgerSvc
	Audit          portssvc.AuditSinkSvc
	Notifier       portssvc.NotificationSvc
	Metrics        *Metrics
	Now            func() time.Time
}

// NewWorkflowEngine creates the workflow engine.
func NewWorkflowEngine(deps WorkflowDeps) portssvc.WorkflowSvcFacade {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &workflowEngine{
		documentRepo:   deps.DocumentRepo,
		departmentRepo: deps.DepartmentRepo,
		txManager:      deps.TxManager,
		documents:      deps.Documents,
		comments:       deps.Comments,
		audit:          deps.Audit,
		notifier:       deps.Notifier,
		metrics:        deps.Metrics,
		now:            now,
	}
}

var _ portssvc.WorkflowSvcFacade = (*workflowEngine)(nil)

// Transition applies event to the document on behalf of actor. The status write,
// the optional comment and the audit entry commit together; notifications follow
// after commit and never affect the result.
func (e *workflowEngine) Transition(ctx context.Context, documentID string, event domain.Event, actor domain.Actor, req dto.TransitionRequest) (*domain.TransitionOutcome, error) {
	outcome, err := e.transition(ctx, documentID, event, actor, req)
	switch {
	case err != nil:
		e.metrics.observeTransition(string(event), outcomeLabel(err))
	case outcome.AuditDegraded:
		e.metrics.observeTransition(string(event), "degraded")
	default:
		e.metrics.observeTransition(string(event), "success")
	}
	return outcome, err
}

func (e *workflowEngine) transition(ctx context.Context, documentID string, event domain.Event, actor domain.Actor, req dto.TransitionRequest) (*domain.TransitionOutcome, error) {
	if _, ok := domain.ParseEvent(string(event)); !ok {
		return nil, fmt.Errorf("%w: unknown event %q", apperrors.ErrValidation, event)
	}
	body := ""
	if req.Comment != nil {
		body = strings.TrimSpace(*req.Comment)
	}
	if event == domain.EventReject && body == "" {
		return nil, fmt.Errorf("%w: a rejection requires a comment", apperrors.ErrValidation)
	}
	if utf8.RuneCountInString(body) > domain.MaxCommentLength {
		return nil, fmt.Errorf("%w: comment must be at most %d characters", apperrors.ErrValidation, domain.MaxCommentLength)
	}
	if err := validateActor(actor); err != nil {
		return nil, err
	}
	if req.Version == nil {
		return nil, fmt.Errorf("%w: version is required", apperrors.ErrValidation)
	}
	expected := *req.Version

	doc, err := e.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			e.LogError(ctx, err, "Failed to load document for transition", slog.String("document_id", documentID))
		}
		return nil, err
	}
	if !domain.CanPerform(actor, *doc, event) {
		e.LogWarn(ctx, "Transition refused",
			slog.String("document_id", documentID),
			slog.String("event", string(event)),
			slog.String("user_id", actor.ID),
			slog.String("role", string(actor.Role)))
		return nil, fmt.Errorf("%w: %s may not %s this document", apperrors.ErrForbidden, actor.Role, event)
	}
	// A stale caller must re-read before learning whether the edge still exists.
	if doc.Version != expected {
		return nil, fmt.Errorf("%w: expected version %d, current is %d", apperrors.ErrVersionConflict, expected, doc.Version)
	}
	next, ok := domain.NextStatus(doc.Status, event)
	if !ok {
		return nil, fmt.Errorf("%w: cannot %s a document that is %s", apperrors.ErrInvalidTransition, event, doc.Status)
	}

	now := e.now().UTC()
	entry := domain.AuditLogEntry{
		EntryID:    uuid.NewString(),
		ActorID:    actor.ID,
		DocumentID: documentID,
		Action:     string(event),
		Detail:     fmt.Sprintf("%s -> %s (version %d)", doc.Status, next, expected+1),
		IPAddress:  actor.IPAddress,
		Severity:   domain.SeverityFor(actor, event),
		CreatedAt:  now,
	}

	outcome := &domain.TransitionOutcome{}
	auditPending := false
	err = e.txManager.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		updated, err := e.documents.UpdateStatus(ctx, tx.Documents(), documentID, expected, next, domain.ReviewerAfter(actor, event), now)
		if err != nil {
			return err
		}
		outcome.Document = *updated

		if body != "" {
			comment, err := e.comments.AppendWith(ctx, tx.Comments(), documentID, actor.ID, body, domain.CommentKindFor(event))
			if err != nil {
				return err
			}
			outcome.Comment = comment
		}

		if err := e.audit.RecordWith(ctx, tx.Audit(), entry); err != nil {
			e.LogWarn(ctx, "Audit write inside transaction failed, retrying after commit",
				slog.String("document_id", documentID),
				slog.String("error", err.Error()))
			auditPending = true
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrVersionConflict) && !errors.Is(err, apperrors.ErrValidation) {
			e.LogError(ctx, err, "Transition failed", slog.String("document_id", documentID), slog.String("event", string(event)))
		}
		return nil, err
	}

	if auditPending {
		outcome.AuditDegraded = !e.retryAudit(ctx, entry)
	}

	e.LogInfo(ctx, "Document transitioned",
		slog.String("document_id", documentID),
		slog.String("event", string(event)),
		slog.String("status", string(next)),
		slog.Int64("version", outcome.Document.Version))

	e.notifyTransition(ctx, outcome.Document, event, actor)
	return outcome, nil
}

// BulkTransition decides several documents with one approve or reject. Each item
// runs through Transition in its own transaction, so one stale or foreign document
// leaves the rest untouched and every committed item keeps its own audit entry.
func (e *workflowEngine) BulkTransition(ctx context.Context, event domain.Event, actor domain.Actor, req dto.BulkReviewRequest) ([]domain.BulkItemResult, error) {
	if event != domain.EventApprove && event != domain.EventReject {
		return nil, fmt.Errorf("%w: bulk review only supports approve and reject, got %q", apperrors.ErrValidation, event)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one document is required", apperrors.ErrValidation)
	}
	if len(req.Items) > domain.MaxBulkItems {
		return nil, fmt.Errorf("%w: at most %d documents per bulk review", apperrors.ErrValidation, domain.MaxBulkItems)
	}
	body := ""
	if req.Comment != nil {
		body = strings.TrimSpace(*req.Comment)
	}
	if event == domain.EventReject && body == "" {
		return nil, fmt.Errorf("%w: a rejection requires a comment", apperrors.ErrValidation)
	}
	if utf8.RuneCountInString(body) > domain.MaxCommentLength {
		return nil, fmt.Errorf("%w: comment must be at most %d characters", apperrors.ErrValidation, domain.MaxCommentLength)
	}
	if err := validateActor(actor); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(req.Items))
	for _, item := range req.Items {
		if item.ID == "" || item.Version == nil {
			return nil, fmt.Errorf("%w: every item needs an id and a version", apperrors.ErrValidation)
		}
		if _, dup := seen[item.ID]; dup {
			return nil, fmt.Errorf("%w: document %s is listed twice", apperrors.ErrValidation, item.ID)
		}
		seen[item.ID] = struct{}{}
	}

	results := make([]domain.BulkItemResult, 0, len(req.Items))
	failed := 0
	for _, item := range req.Items {
		if err := ctx.Err(); err != nil {
			results = append(results, domain.BulkItemResult{DocumentID: item.ID, Err: err})
			failed++
			continue
		}
		outcome, err := e.Transition(ctx, item.ID, event, actor, dto.TransitionRequest{Version: item.Version, Comment: req.Comment})
		if err != nil {
			failed++
		}
		results = append(results, domain.BulkItemResult{DocumentID: item.ID, Outcome: outcome, Err: err})
	}

	e.LogInfo(ctx, "Bulk review finished",
		slog.String("event", string(event)),
		slog.String("user_id", actor.ID),
		slog.Int("items", len(req.Items)),
		slog.Int("failed", failed))
	return results, nil
}

// Comment leaves a general comment without touching status or version.
func (e *workflowEngine) Comment(ctx context.Context, documentID string, actor domain.Actor, req dto.CreateCommentRequest) (*domain.ReviewComment, error) {
	if err := validateActor(actor); err != nil {
		return nil, err
	}
	doc, err := e.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if !domain.CanComment(actor, *doc) {
		return nil, fmt.Errorf("%w: you cannot comment on this document", apperrors.ErrForbidden)
	}

	entry := domain.AuditLogEntry{
		EntryID:    uuid.NewString(),
		ActorID:    actor.ID,
		DocumentID: documentID,
		Action:     domain.AuditActionComment,
		IPAddress:  actor.IPAddress,
		Severity:   domain.SeverityLow,
		CreatedAt:  e.now().UTC(),
	}

	var comment *domain.ReviewComment
	auditPending := false
	err = e.txManager.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		c, err := e.comments.AppendWith(ctx, tx.Comments(), documentID, actor.ID, req.Body, domain.CommentGeneral)
		if err != nil {
			return err
		}
		comment = c
		entry.Detail = "comment " + c.CommentID
		if err := e.audit.RecordWith(ctx, tx.Audit(), entry); err != nil {
			auditPending = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if auditPending {
		e.retryAudit(ctx, entry)
	}

	if actor.ID != doc.OwnerID {
		e.notifier.Notify(ctx, doc.OwnerID, fmt.Sprintf("New comment on %q", doc.Title), documentID)
	}
	return comment, nil
}

// retryAudit makes the out-of-transaction attempts for an entry whose savepoint
// write failed. It reports whether the entry was eventually stored.
func (e *workflowEngine) retryAudit(ctx context.Context, entry domain.AuditLogEntry) bool {
	if err := e.audit.Record(context.WithoutCancel(ctx), entry); err != nil {
		e.LogError(ctx, err, "Transition committed without audit entry",
			slog.String("document_id", entry.DocumentID),
			slog.String("action", entry.Action))
		return false
	}
	return true
}

func (e *workflowEngine) notifyTransition(ctx context.Context, doc domain.Document, event domain.Event, actor domain.Actor) {
	switch event {
	case domain.EventSubmit, domain.EventResubmit:
		if head := e.departmentHead(ctx, doc.DepartmentID); head != "" {
			e.notifier.Notify(ctx, head, fmt.Sprintf("%q is waiting for review", doc.Title), doc.DocumentID)
		}
	case domain.EventApprove, domain.EventReject:
		verdict := "approved"
		if event == domain.EventReject {
			verdict = "rejected"
		}
		e.notifier.Notify(ctx, doc.OwnerID, fmt.Sprintf("Your document %q was %s", doc.Title, verdict), doc.DocumentID)
		if domain.IsEscalation(actor, event) {
			if head := e.departmentHead(ctx, doc.DepartmentID); head != "" && head != actor.ID {
				e.notifier.Notify(ctx, head, fmt.Sprintf("%q was %s by the %s", doc.Title, verdict, strings.ReplaceAll(string(actor.Role), "_", " ")), doc.DocumentID)
			}
		}
	}
}

func (e *workflowEngine) departmentHead(ctx context.Context, departmentID string) string {
	if e.departmentRepo == nil {
		return ""
	}
	dept, err := e.departmentRepo.FindDepartmentByID(ctx, departmentID)
	if err != nil {
		e.LogWarn(ctx, "Cannot resolve department head for notification",
			slog.String("department_id", departmentID),
			slog.String("error", err.Error()))
		return ""
	}
	if dept.HeadUserID == nil {
		return ""
	}
	return *dept.HeadUserID
}

func validateActor(actor domain.Actor) error {
	if actor.ID == "" {
		return fmt.Errorf("%w: actor identity is required", apperrors.ErrValidation)
	}
	if !actor.Role.IsValid() {
		return fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, actor.Role)
	}
	return nil
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrVersionConflict):
		return "conflict"
	case errors.Is(err, apperrors.ErrForbidden):
		return "forbidden"
	case errors.Is(err, apperrors.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperrors.ErrValidation):
		return "validation"
	}
	return "error"
}
