package repositories

import (
	"context"

	"github.com/SscSPs/academic_docs_app/internal/core/domain"
)

// AuditReader defines read operations for the audit log
type AuditReader interface {
	// ListAuditEntries returns entries matching filter, newest first.
	ListAuditEntries(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditLogEntry, error)
}

// AuditWriter appends to the audit log. There is deliberately no update or delete.
type AuditWriter interface {
	SaveAuditEntry(ctx context.Context, entry domain.AuditLogEntry) error
}

// AuditRepositoryFacade combines all audit-related repository interfaces
type AuditRepositoryFacade interface {
	AuditReader
	AuditWriter
}
