package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/academic_docs_app/internal/core/domain"
)

// CommentReader defines read operations for review comments
type CommentReader interface {
	// FindCommentByID retrieves a single comment.
	FindCommentByID(ctx context.Context, commentID string) (*domain.ReviewComment, error)

	// ListCommentsByDocument returns up to limit comments ordered by creation time
	// ascending, starting after nextToken. The returned token is nil on the last page.
	ListCommentsByDocument(ctx context.Context, documentID string, limit int, nextToken *string) ([]domain.ReviewComment, *string, error)
}

// CommentWriter defines write operations for review comments
type CommentWriter interface {
	// SaveComment appends a new comment.
	SaveComment(ctx context.Context, comment domain.ReviewComment) error

	// MarkCommentRead flags a comment as read. Marking an already read comment is a no-op.
	MarkCommentRead(ctx context.Context, commentID string, readAt time.Time) error
}

// CommentRepositoryFacade combines all comment-related repository interfaces
type CommentRepositoryFacade interface {
	CommentReader
	CommentWriter
}
