package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/academic_docs_app/internal/apperrors"
	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	portsrepo "github.com/SscSPs/academic_docs_app/internal/core/ports/repositories"
	"github.com/SscSPs/academic_docs_app/internal/models"
	"github.com/SscSPs/academic_docs_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxDocumentRepository struct {
	db dbtx
}

// newPgxDocumentRepository creates a new repository for document data.
func newPgxDocumentRepository(db dbtx) *PgxDocumentRepository {
	return &PgxDocumentRepository{db: db}
}

// Ensure PgxDocumentRepository implements portsrepo.DocumentRepositoryFacade
var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

const documentColumns = `
	document_id, owner_id, department_id, title, description, file_path,
	status, current_reviewer_id, version, created_at, updated_at`

func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, document domain.Document) error {
	m := mapping.ToModelDocument(document)
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.db.Exec(ctx, query,
		m.DocumentID,
		m.OwnerID,
		m.DepartmentID,
		m.Title,
		m.Description,
		m.FilePath,
		m.Status,
		m.CurrentReviewerID,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		switch code, constraint := pgErrorCode(err); code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: document %s already exists", apperrors.ErrValidation, m.DocumentID)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: unknown department %s (%s)", apperrors.ErrValidation, m.DepartmentID, constraint)
		case pgCheckViolation:
			return fmt.Errorf("%w: document violates %s", apperrors.ErrValidation, constraint)
		}
		return apperrors.NewAppError(500, "failed to save document "+m.DocumentID, err)
	}
	return nil
}

func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1`
	rows, err := r.db.Query(ctx, query, documentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query document", err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Document])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to collect document row", err)
	}
	doc := mapping.ToDomainDocument(m)
	return &doc, nil
}

// UpdateDocumentStatus is a compare-and-set on the version column; no row lock is
// taken beyond the UPDATE itself.
func (r *PgxDocumentRepository) UpdateDocumentStatus(ctx context.Context, documentID string, fromVersion int64, status domain.DocumentStatus, reviewerID *string, updatedAt time.Time) (*domain.Document, error) {
	query := `
		UPDATE documents
		SET status = $1, current_reviewer_id = $2, version = version + 1, updated_at = $3
		WHERE document_id = $4 AND version = $5
		RETURNING ` + documentColumns
	rows, err := r.db.Query(ctx, query, string(status), reviewerID, updatedAt, documentID, fromVersion)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to update document status", err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Document])
	if err == nil {
		doc := mapping.ToDomainDocument(m)
		return &doc, nil
	}
	if code, constraint := pgErrorCode(err); code == pgCheckViolation {
		return nil, fmt.Errorf("%w: status update violates %s", apperrors.ErrValidation, constraint)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewAppError(500, "failed to collect updated document", err)
	}

	// Nothing matched: either the document is gone or someone else moved it first.
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM documents WHERE document_id = $1)`, documentID).Scan(&exists); err != nil {
		return nil, apperrors.NewAppError(500, "failed to check document existence", err)
	}
	if !exists {
		return nil, apperrors.ErrNotFound
	}
	return nil, apperrors.ErrVersionConflict
}
