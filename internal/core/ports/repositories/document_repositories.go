package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/academic_docs_app/internal/core/domain"
)

// DocumentReader defines read operations for document data
type DocumentReader interface {
	// FindDocumentByID retrieves a document by its identifier.
	// Returns apperrors.ErrNotFound if no such document exists.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)
}

// DocumentWriter defines write operations for document data
type DocumentWriter interface {
	// SaveDocument persists a new document.
	SaveDocument(ctx context.Context, document domain.Document) error

	// UpdateDocumentStatus sets status and reviewer and bumps the version by one, but only
	// if the stored version equals fromVersion. Returns apperrors.ErrVersionConflict on a
	// mismatch and apperrors.ErrNotFound if the document does not exist.
	UpdateDocumentStatus(ctx context.Context, documentID string, fromVersion int64, status domain.DocumentStatus, reviewerID *string, updatedAt time.Time) (*domain.Document, error)
}

// DocumentRepositoryFacade combines all document-related repository interfaces
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}
