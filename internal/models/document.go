package models

import "time"

// Document is the row shape of the documents table.
type Document struct {
	DocumentID        string    `db:"document_id"`
	OwnerID           string    `db:"owner_id"`
	DepartmentID      string    `db:"department_id"`
	Title             string    `db:"title"`
	Description       string    `db:"description"`
	FilePath          string    `db:"file_path"`
	Status            string    `db:"status"`
	CurrentReviewerID *string   `db:"current_reviewer_id"` // Nullable
	Version           int64     `db:"version"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

// Department is the row shape of the departments table.
type Department struct {
	DepartmentID string  `db:"department_id"`
	Name         string  `db:"name"`
	HeadUserID   *string `db:"head_user_id"`
	DeanUserID   *string `db:"dean_user_id"`
}
