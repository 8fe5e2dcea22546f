package services

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SscSPs/academic_docs_app/internal/apperrors"
	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	portsrepo "github.com/SscSPs/academic_docs_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/academic_docs_app/internal/core/ports/services"
	"github.com/google/uuid"
)

const defaultCommentPageSize = 50

// commentLedger implements the CommentLedgerSvc interface
type commentLedger struct {
	BaseService
	commentRepo  portsrepo.CommentRepositoryFacade
	documentRepo portsrepo.DocumentReader
	pageSize     int
	now          func() time.Time
}

// CommentOption is a functional option for configuring the comment ledger
type CommentOption func(*commentLedger)

// WithCommentPageSize sets how many comments are fetched per storage round trip.
func WithCommentPageSize(n int) CommentOption {
	return func(l *commentLedger) {
		if n > 0 {
			l.pageSize = n
		}
	}
}

// WithCommentClock overrides the time source.
func WithCommentClock(now func() time.Time) CommentOption {
	return func(l *commentLedger) {
		l.now = now
	}
}

// NewCommentLedger creates the review comment ledger.
func NewCommentLedger(commentRepo portsrepo.CommentRepositoryFacade, documentRepo portsrepo.DocumentReader, options ...CommentOption) portssvc.CommentLedgerSvc {
	l := &commentLedger{
		commentRepo:  commentRepo,
		documentRepo: documentRepo,
		pageSize:     defaultCommentPageSize,
		now:          time.Now,
	}
	for _, option := range options {
		option(l)
	}
	return l
}

var _ portssvc.CommentLedgerSvc = (*commentLedger)(nil)

// Append adds an immutable comment using the ledger's own repository.
func (l *commentLedger) Append(ctx context.Context, documentID, authorID, body string, kind domain.CommentKind) (*domain.ReviewComment, error) {
	return l.AppendWith(ctx, l.commentRepo, documentID, authorID, body, kind)
}

// AppendWith adds a comment through w.
func (l *commentLedger) AppendWith(ctx context.Context, w portsrepo.CommentWriter, documentID, authorID, body string, kind domain.CommentKind) (*domain.ReviewComment, error) {
	comment, err := l.newComment(documentID, authorID, body, kind)
	if err != nil {
		return nil, err
	}
	if err := w.SaveComment(ctx, comment); err != nil {
		l.LogError(ctx, err, "Failed to save review comment",
			slog.String("document_id", documentID),
			slog.String("comment_id", comment.CommentID))
		return nil, err
	}
	return &comment, nil
}

func (l *commentLedger) newComment(documentID, authorID, body string, kind domain.CommentKind) (domain.ReviewComment, error) {
	body = strings.TrimSpace(body)
	switch {
	case documentID == "" || authorID == "":
		return domain.ReviewComment{}, fmt.Errorf("%w: document and author are required", apperrors.ErrValidation)
	case body == "":
		return domain.ReviewComment{}, fmt.Errorf("%w: comment cannot be empty", apperrors.ErrValidation)
	case utf8.RuneCountInString(body) > domain.MaxCommentLength:
		return domain.ReviewComment{}, fmt.Errorf("%w: comment must be at most %d characters", apperrors.ErrValidation, domain.MaxCommentLength)
	case !kind.IsValid():
		return domain.ReviewComment{}, fmt.Errorf("%w: unknown comment kind %q", apperrors.ErrValidation, kind)
	}
	return domain.ReviewComment{
		CommentID:  uuid.NewString(),
		DocumentID: documentID,
		AuthorID:   authorID,
		Body:       body,
		Kind:       kind,
		CreatedAt:  l.now().UTC(),
	}, nil
}

// ListForDocument yields comments oldest first, one page at a time. Each range
// over the sequence starts again from the first page.
func (l *commentLedger) ListForDocument(ctx context.Context, documentID string) iter.Seq2[domain.ReviewComment, error] {
	return func(yield func(domain.ReviewComment, error) bool) {
		var token *string
		for {
			if err := ctx.Err(); err != nil {
				yield(domain.ReviewComment{}, err)
				return
			}
			page, next, err := l.commentRepo.ListCommentsByDocument(ctx, documentID, l.pageSize, token)
			if err != nil {
				l.LogError(ctx, err, "Failed to list review comments", slog.String("document_id", documentID))
				yield(domain.ReviewComment{}, err)
				return
			}
			for _, c := range page {
				if !yield(c, nil) {
					return
				}
			}
			if next == nil || len(page) == 0 {
				return
			}
			token = next
		}
	}
}

// MarkRead flags a comment as read. Only the document owner or an admin may do so.
func (l *commentLedger) MarkRead(ctx context.Context, commentID string, reader domain.Actor) (*domain.ReviewComment, error) {
	comment, err := l.commentRepo.FindCommentByID(ctx, commentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			l.LogError(ctx, err, "Failed to find review comment", slog.String("comment_id", commentID))
		}
		return nil, err
	}
	doc, err := l.documentRepo.FindDocumentByID(ctx, comment.DocumentID)
	if err != nil {
		return nil, err
	}
	if reader.Role != domain.RoleAdmin && doc.OwnerID != reader.ID {
		return nil, fmt.Errorf("%w: only the document owner can mark comments as read", apperrors.ErrForbidden)
	}
	if comment.IsRead {
		return comment, nil
	}

	readAt := l.now().UTC()
	if err := l.commentRepo.MarkCommentRead(ctx, commentID, readAt); err != nil {
		l.LogError(ctx, err, "Failed to mark review comment as read", slog.String("comment_id", commentID))
		return nil, err
	}
	comment.IsRead = true
	comment.ReadAt = &readAt
	return comment, nil
}
