package services

import (
	"context"
	"time"

	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	portsrepo "github.com/SscSPs/academic_docs_app/internal/core/ports/repositories"
	"github.com/SscSPs/academic_docs_app/internal/dto"
)

// DocumentReaderSvc defines read operations for documents
type DocumentReaderSvc interface {
	// GetDocumentByID retrieves a document the actor is allowed to see.
	GetDocumentByID(ctx context.Context, documentID string, actor domain.Actor) (*domain.Document, error)
}

// DocumentWriterSvc defines write operations for documents
type DocumentWriterSvc interface {
	// CreateDocument stores a new draft owned by the actor.
	CreateDocument(ctx context.Context, actor domain.Actor, req dto.CreateDocumentRequest) (*domain.Document, error)

	// UpdateStatus performs the version-guarded status write through w, which is
	// usually bound to the caller's transaction.
	UpdateStatus(ctx context.Context, w portsrepo.DocumentWriter, documentID string, fromVersion int64, status domain.DocumentStatus, reviewerID *string, at time.Time) (*domain.Document, error)
}

// DocumentSvcFacade combines all document-related service interfaces
type DocumentSvcFacade interface {
	DocumentReaderSvc
	DocumentWriterSvc
}
