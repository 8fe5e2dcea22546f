package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/academic_docs_app/internal/apperrors"
	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	portsrepo "github.com/SscSPs/academic_docs_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/academic_docs_app/internal/core/ports/services"
	"github.com/google/uuid"
)

// AuditConfig tunes the retry loop of the audit sink.
type AuditConfig struct {
	MaxAttempts  int
	RetryBackoff time.Duration
}

// auditSink implements the AuditSinkSvc interface
type auditSink struct {
	BaseService
	auditRepo portsrepo.AuditRepositoryFacade
	alerter   portssvc.OperatorAlerter
	metrics   *Metrics
	cfg       AuditConfig
}

// NewAuditSink creates the audit log sink. alerter may be nil.
func NewAuditSink(repo portsrepo.AuditRepositoryFacade, alerter portssvc.OperatorAlerter, metrics *Metrics, cfg AuditConfig) portssvc.AuditSinkSvc {
	if cfg.MaxAttempts < 2 {
		cfg.MaxAttempts = 2
	}
	return &auditSink{
		auditRepo: repo,
		alerter:   alerter,
		metrics:   metrics,
		cfg:       cfg,
	}
}

var _ portssvc.AuditSinkSvc = (*auditSink)(nil)

// Record appends entry, retrying with a linear backoff. Once every attempt has
// failed the loss is counted, logged and escalated to the operator.
func (s *auditSink) Record(ctx context.Context, entry domain.AuditLogEntry) error {
	entry, err := prepareAuditEntry(entry)
	if err != nil {
		return err
	}

	var lastErr error
retry:
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		if lastErr = s.auditRepo.SaveAuditEntry(ctx, entry); lastErr == nil {
			return nil
		}
		s.LogWarn(ctx, "Audit write failed, retrying",
			slog.Int("attempt", attempt),
			slog.String("entry_id", entry.EntryID),
			slog.String("error", lastErr.Error()))
		if attempt == s.cfg.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			lastErr = ctx.Err()
			break retry
		case <-time.After(s.cfg.RetryBackoff * time.Duration(attempt)):
		}
	}

	s.reportLoss(ctx, entry, lastErr)
	return fmt.Errorf("%w: %w", apperrors.ErrAuditWriteFailed, lastErr)
}

// RecordWith makes a single attempt through w. Retrying belongs to the caller,
// whose transaction may not survive a second statement.
func (s *auditSink) RecordWith(ctx context.Context, w portsrepo.AuditWriter, entry domain.AuditLogEntry) error {
	entry, err := prepareAuditEntry(entry)
	if err != nil {
		return err
	}
	if err := w.SaveAuditEntry(ctx, entry); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrAuditWriteFailed, err)
	}
	return nil
}

// List returns filtered entries for the admin audit view.
func (s *auditSink) List(ctx context.Context, actor domain.Actor, filter domain.AuditFilter) ([]domain.AuditLogEntry, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: audit logs are restricted to administrators", apperrors.ErrForbidden)
	}
	if filter.Severity != "" && !filter.Severity.IsValid() {
		return nil, fmt.Errorf("%w: unknown severity %q", apperrors.ErrValidation, filter.Severity)
	}
	if filter.Since != nil && filter.Until != nil && filter.Until.Before(*filter.Since) {
		return nil, fmt.Errorf("%w: until must not be before since", apperrors.ErrValidation)
	}
	switch {
	case filter.Limit <= 0:
		filter.Limit = domain.DefaultAuditLimit
	case filter.Limit > domain.MaxAuditLimit:
		filter.Limit = domain.MaxAuditLimit
	}

	entries, err := s.auditRepo.ListAuditEntries(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit entries")
		return nil, err
	}
	if entries == nil {
		return []domain.AuditLogEntry{}, nil
	}
	return entries, nil
}

func (s *auditSink) reportLoss(ctx context.Context, entry domain.AuditLogEntry, cause error) {
	s.metrics.observeAuditLoss()
	s.LogError(ctx, cause, "Audit entry lost",
		slog.String("entry_id", entry.EntryID),
		slog.String("document_id", entry.DocumentID),
		slog.String("actor_id", entry.ActorID),
		slog.String("action", entry.Action),
		slog.String("severity", string(domain.SeverityCritical)))
	if s.alerter == nil {
		return
	}
	subject := fmt.Sprintf("[critical] audit entry lost for document %s", entry.DocumentID)
	body := fmt.Sprintf("Action %q by %s at %s could not be written to the audit log.\nEntry: %s\nCause: %v\n",
		entry.Action, entry.ActorID, entry.CreatedAt.Format(time.RFC3339), entry.EntryID, cause)
	if err := s.alerter.Alert(context.WithoutCancel(ctx), subject, body); err != nil {
		s.LogError(ctx, err, "Failed to alert operator about audit loss", slog.String("entry_id", entry.EntryID))
	}
}

func prepareAuditEntry(entry domain.AuditLogEntry) (domain.AuditLogEntry, error) {
	if entry.ActorID == "" || entry.Action == "" {
		return entry, fmt.Errorf("%w: audit entry needs an actor and an action", apperrors.ErrValidation)
	}
	if entry.Severity == "" {
		entry.Severity = domain.SeverityLow
	}
	if !entry.Severity.IsValid() {
		return entry, fmt.Errorf("%w: unknown severity %q", apperrors.ErrValidation, entry.Severity)
	}
	if entry.EntryID == "" {
		entry.EntryID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	return entry, nil
}
