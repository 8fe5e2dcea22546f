package domain

import "time"

// CommentKind classifies a reviewer remark.
type CommentKind string

const (
	CommentGeneral   CommentKind = "general"
	CommentApproval  CommentKind = "approval"
	CommentRejection CommentKind = "rejection"
)

// IsValid reports whether k is a known comment kind.
func (k CommentKind) IsValid() bool {
	return k == CommentGeneral || k == CommentApproval || k == CommentRejection
}

// MaxCommentLength bounds the body of a review comment.
const MaxCommentLength = 1000

// ReviewComment is an immutable remark attached to a document. Only the read
// state changes after creation.
type ReviewComment struct {
	CommentID  string      `json:"commentID"`
	DocumentID string      `json:"documentID"`
	AuthorID   string      `json:"authorID"`
	Body       string      `json:"body"`
	Kind       CommentKind `json:"kind"`
	IsRead     bool        `json:"isRead"`
	ReadAt     *time.Time  `json:"readAt,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
}
