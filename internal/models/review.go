package models

import "time"

// ReviewComment is the row shape of the review_comments table.
type ReviewComment struct {
	CommentID  string     `db:"comment_id"`
	DocumentID string     `db:"document_id"`
	AuthorID   string     `db:"author_id"`
	Body       string     `db:"body"`
	Kind       string     `db:"kind"`
	IsRead     bool       `db:"is_read"`
	ReadAt     *time.Time `db:"read_at"`
	CreatedAt  time.Time  `db:"created_at"`
}

// AuditLog is the row shape of the audit_logs table.
type AuditLog struct {
	EntryID    string    `db:"entry_id"`
	ActorID    string    `db:"actor_id"`
	DocumentID *string   `db:"document_id"` // Nullable for actions not tied to a document
	Action     string    `db:"action"`
	Detail     string    `db:"detail"`
	IPAddress  string    `db:"ip_address"`
	Severity   string    `db:"severity"`
	CreatedAt  time.Time `db:"created_at"`
}
