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
	"github.com/SscSPs/academic_docs_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

type PgxCommentRepository struct {
	db dbtx
}

// newPgxCommentRepository creates a new repository for review comments.
func newPgxCommentRepository(db dbtx) *PgxCommentRepository {
	return &PgxCommentRepository{db: db}
}

var _ portsrepo.CommentRepositoryFacade = (*PgxCommentRepository)(nil)

const commentColumns = `comment_id, document_id, author_id, body, kind, is_read, read_at, created_at`

func (r *PgxCommentRepository) SaveComment(ctx context.Context, comment domain.ReviewComment) error {
	m := mapping.ToModelReviewComment(comment)
	query := `
		INSERT INTO review_comments (` + commentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.db.Exec(ctx, query,
		m.CommentID, m.DocumentID, m.AuthorID, m.Body, m.Kind, m.IsRead, m.ReadAt, m.CreatedAt)
	if err != nil {
		switch code, constraint := pgErrorCode(err); code {
		case pgForeignKeyViolation:
			return apperrors.ErrNotFound
		case pgUniqueViolation, pgCheckViolation:
			return fmt.Errorf("%w: comment violates %s", apperrors.ErrValidation, constraint)
		}
		return apperrors.NewAppError(500, "failed to save review comment", err)
	}
	return nil
}

func (r *PgxCommentRepository) FindCommentByID(ctx context.Context, commentID string) (*domain.ReviewComment, error) {
	rows, err := r.db.Query(ctx, `SELECT `+commentColumns+` FROM review_comments WHERE comment_id = $1`, commentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query review comment", err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.ReviewComment])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to collect review comment", err)
	}
	c := mapping.ToDomainReviewComment(m)
	return &c, nil
}

// ListCommentsByDocument uses keyset pagination on (created_at, comment_id). One
// extra row is fetched to know whether another page exists.
func (r *PgxCommentRepository) ListCommentsByDocument(ctx context.Context, documentID string, limit int, nextToken *string) ([]domain.ReviewComment, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	args := []any{documentID}
	query := `SELECT ` + commentColumns + ` FROM review_comments WHERE document_id = $1`
	if nextToken != nil && *nextToken != "" {
		cursorAt, cursorID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		query += ` AND (created_at, comment_id) > ($2, $3)`
		args = append(args, cursorAt, cursorID)
	}
	query += fmt.Sprintf(` ORDER BY created_at ASC, comment_id ASC LIMIT $%d`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query review comments", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ReviewComment])
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to collect review comments", err)
	}

	var next *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.CommentID)
		next = &token
	}
	return mapping.ToDomainReviewCommentSlice(ms), next, nil
}

func (r *PgxCommentRepository) MarkCommentRead(ctx context.Context, commentID string, readAt time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE review_comments SET is_read = TRUE, read_at = $2
		WHERE comment_id = $1 AND NOT is_read`, commentID, readAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark review comment as read", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM review_comments WHERE comment_id = $1)`, commentID).Scan(&exists); err != nil {
		return apperrors.NewAppError(500, "failed to check review comment", err)
	}
	if !exists {
		return apperrors.ErrNotFound
	}
	return nil
}
