package services

import (
	"context"
	"iter"

	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	portsrepo "github.com/SscSPs/academic_docs_app/internal/core/ports/repositories"
)

// CommentLedgerSvc is the append-only review comment thread of each document.
type CommentLedgerSvc interface {
	// Append adds an immutable comment using the ledger's own repository.
	Append(ctx context.Context, documentID, authorID, body string, kind domain.CommentKind) (*domain.ReviewComment, error)

	// AppendWith adds a comment through w, usually bound to the caller's transaction.
	AppendWith(ctx context.Context, w portsrepo.CommentWriter, documentID, authorID, body string, kind domain.CommentKind) (*domain.ReviewComment, error)

	// ListForDocument yields the document's comments ordered by creation time. The
	// sequence is lazy and may be ranged over more than once.
	ListForDocument(ctx context.Context, documentID string) iter.Seq2[domain.ReviewComment, error]

	// MarkRead flags a single comment as read by its recipient.
	MarkRead(ctx context.Context, commentID string, reader domain.Actor) (*domain.ReviewComment, error)
}
