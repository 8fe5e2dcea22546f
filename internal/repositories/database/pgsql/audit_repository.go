package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/academic_docs_app/internal/apperrors"
	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	portsrepo "github.com/SscSPs/academic_docs_app/internal/core/ports/repositories"
	"github.com/SscSPs/academic_docs_app/internal/models"
	"github.com/SscSPs/academic_docs_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxAuditRepository struct {
	db dbtx
}

func newPgxAuditRepository(db dbtx) *PgxAuditRepository {
	return &PgxAuditRepository{db: db}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

const auditColumns = `entry_id, actor_id, document_id, action, detail, ip_address, severity, created_at`

func (r *PgxAuditRepository) SaveAuditEntry(ctx context.Context, entry domain.AuditLogEntry) error {
	m := mapping.ToModelAuditLog(entry)
	_, err := r.db.Exec(ctx, `
		INSERT INTO audit_logs (`+auditColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		m.EntryID, m.ActorID, m.DocumentID, m.Action, m.Detail, m.IPAddress, m.Severity, m.CreatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save audit entry", err)
	}
	return nil
}

// ListAuditEntries builds its WHERE clause from the non-empty filter fields.
func (r *PgxAuditRepository) ListAuditEntries(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditLogEntry, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.ActorID != "" {
		add("actor_id = $%d", filter.ActorID)
	}
	if filter.DocumentID != "" {
		add("document_id = $%d", filter.DocumentID)
	}
	if filter.Action != "" {
		add("action = $%d", filter.Action)
	}
	if filter.Severity != "" {
		add("severity = $%d", string(filter.Severity))
	}
	if filter.Since != nil {
		add("created_at >= $%d", *filter.Since)
	}
	if filter.Until != nil {
		add("created_at <= $%d", *filter.Until)
	}

	query := `SELECT ` + auditColumns + ` FROM audit_logs`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = domain.DefaultAuditLimit
	}
	args = append(args, limit)
	query += fmt.Sprintf(` ORDER BY created_at DESC, entry_id DESC LIMIT $%d`, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query audit entries", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AuditLog])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect audit entries", err)
	}
	return mapping.ToDomainAuditLogEntrySlice(ms), nil
}
