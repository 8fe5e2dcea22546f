package pgsql

import (
	"context"
	"log/slog"

	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	portsrepo "github.com/SscSPs/academic_docs_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxTxManager runs units of work inside a single Postgres transaction.
type PgxTxManager struct {
	BaseRepository
}

func newPgxTxManager(pool *pgxpool.Pool) *PgxTxManager {
	return &PgxTxManager{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionManager = (*PgxTxManager)(nil)

// WithinTx commits every write made through tx when fn returns nil and rolls all
// of them back otherwise.
func (m *PgxTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.TxRepositories) error) error {
	tx, err := m.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := m.Rollback(context.WithoutCancel(ctx), tx); rbErr != nil {
			slog.Default().Error("Rollback failed", slog.String("error", rbErr.Error()))
		}
	}()

	if err := fn(ctx, &pgxTxRepositories{tx: tx}); err != nil {
		return err
	}
	return m.Commit(ctx, tx)
}

type pgxTxRepositories struct {
	tx pgx.Tx
}

func (r *pgxTxRepositories) Documents() portsrepo.DocumentWriter {
	return newPgxDocumentRepository(r.tx)
}

func (r *pgxTxRepositories) Comments() portsrepo.CommentWriter {
	return newPgxCommentRepository(r.tx)
}

// Audit writes each entry inside its own savepoint, so a failed insert leaves the
// surrounding transaction usable.
func (r *pgxTxRepositories) Audit() portsrepo.AuditWriter {
	return &savepointAuditWriter{tx: r.tx}
}

type savepointAuditWriter struct {
	tx pgx.Tx
}

func (w *savepointAuditWriter) SaveAuditEntry(ctx context.Context, entry domain.AuditLogEntry) error {
	sp, err := w.tx.Begin(ctx) // nested Begin issues SAVEPOINT
	if err != nil {
		return err
	}
	if err := newPgxAuditRepository(sp).SaveAuditEntry(ctx, entry); err != nil {
		if rbErr := sp.Rollback(ctx); rbErr != nil {
			return rbErr
		}
		return err
	}
	return sp.Commit(ctx) // RELEASE SAVEPOINT
}
