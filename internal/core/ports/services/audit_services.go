package services

import (
	"context"

	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	portsrepo "github.com/SscSPs/academic_docs_app/internal/core/ports/repositories"
)

// AuditSinkSvc is the append-only audit log.
type AuditSinkSvc interface {
	// Record appends entry, retrying transient failures. It returns an error wrapping
	// apperrors.ErrAuditWriteFailed once every attempt has failed.
	Record(ctx context.Context, entry domain.AuditLogEntry) error

	// RecordWith appends entry through w, usually bound to the caller's transaction.
	RecordWith(ctx context.Context, w portsrepo.AuditWriter, entry domain.AuditLogEntry) error

	// List returns filtered entries for the admin audit view.
	List(ctx context.Context, actor domain.Actor, filter domain.AuditFilter) ([]domain.AuditLogEntry, error)
}
