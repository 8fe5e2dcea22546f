package dto

import (
	"time"

	"github.com/SscSPs/academic_docs_app/internal/core/domain"
)

// CreateCommentRequest defines data for a general review comment.
type CreateCommentRequest struct {
	Body string `json:"body" binding:"required,max=1000"`
}

// CommentResponse defines data returned for a review comment.
type CommentResponse struct {
	CommentID  string             `json:"commentID"`
	DocumentID string             `json:"documentID"`
	AuthorID   string             `json:"authorID"`
	Body       string             `json:"body"`
	Kind       domain.CommentKind `json:"kind"`
	IsRead     bool               `json:"isRead"`
	ReadAt     *time.Time         `json:"readAt,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
}

// ToCommentResponse converts domain.ReviewComment to DTO.
func ToCommentResponse(c *domain.ReviewComment) CommentResponse {
	return CommentResponse{
		CommentID:  c.CommentID,
		DocumentID: c.DocumentID,
		AuthorID:   c.AuthorID,
		Body:       c.Body,
		Kind:       c.Kind,
		IsRead:     c.IsRead,
		ReadAt:     c.ReadAt,
		CreatedAt:  c.CreatedAt,
	}
}

// ToCommentResponses converts a slice of comments, never returning nil.
func ToCommentResponses(cs []domain.ReviewComment) []CommentResponse {
	list := make([]CommentResponse, len(cs))
	for i := range cs {
		list[i] = ToCommentResponse(&cs[i])
	}
	return list
}
