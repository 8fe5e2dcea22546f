package pgsql

import (
	portsrepo "github.com/SscSPs/academic_docs_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		DocumentRepo:   newPgxDocumentRepository(dbPool),
		CommentRepo:    newPgxCommentRepository(dbPool),
		AuditRepo:      newPgxAuditRepository(dbPool),
		DepartmentRepo: newPgxDepartmentRepository(dbPool),
		TxManager:      newPgxTxManager(dbPool),
	}
}
