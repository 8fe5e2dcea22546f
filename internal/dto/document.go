package dto

import (
	"time"

	"github.com/SscSPs/academic_docs_app/internal/core/domain"
)

// --- Document DTOs ---

// CreateDocumentRequest defines data for uploading a new draft document.
// FilePath is an opaque reference issued by the external file store.
type CreateDocumentRequest struct {
	Title        string `json:"title" binding:"required,max=255"`
	Description  string `json:"description" binding:"max=5000"`
	FilePath     string `json:"filePath" binding:"required,max=1024"`
	DepartmentID string `json:"departmentID"`
}

// TransitionRequest carries the optimistic-concurrency version and an optional comment.
type TransitionRequest struct {
	Version *int64  `json:"version" binding:"required,min=0"`
	Comment *string `json:"comment"`
}

// BulkReviewItem names one document of a bulk review and the version the caller saw.
type BulkReviewItem struct {
	ID      string `json:"id" binding:"required"`
	Version *int64 `json:"version" binding:"required,min=0"`
}

// BulkReviewRequest applies one decision to many documents.
type BulkReviewRequest struct {
	Items   []BulkReviewItem `json:"items" binding:"required,min=1,max=50,dive"`
	Event   string           `json:"event" binding:"required,oneof=approve reject"`
	Comment *string          `json:"comment"`
}

// DocumentResponse defines data returned for a document.
type DocumentResponse struct {
	DocumentID        string                `json:"documentID"`
	OwnerID           string                `json:"ownerID"`
	DepartmentID      string                `json:"departmentID"`
	Title             string                `json:"title"`
	Description       string                `json:"description"`
	FilePath          string                `json:"filePath"`
	Status            domain.DocumentStatus `json:"status"`
	CurrentReviewerID *string               `json:"currentReviewerID,omitempty"`
	Version           int64                 `json:"version"`
	CreatedAt         time.Time             `json:"createdAt"`
	UpdatedAt         time.Time             `json:"updatedAt"`
}

// ToDocumentResponse converts domain.Document to DTO.
func ToDocumentResponse(d *domain.Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:        d.DocumentID,
		OwnerID:           d.OwnerID,
		DepartmentID:      d.DepartmentID,
		Title:             d.Title,
		Description:       d.Description,
		FilePath:          d.FilePath,
		Status:            d.Status,
		CurrentReviewerID: d.CurrentReviewerID,
		Version:           d.Version,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

// TransitionResponse is returned after a workflow transition.
type TransitionResponse struct {
	Document DocumentResponse `json:"document"`
	Comment  *CommentResponse `json:"comment,omitempty"`
}

// ToTransitionResponse converts a domain.TransitionOutcome to DTO. The degraded-audit
// flag stays internal.
func ToTransitionResponse(o *domain.TransitionOutcome) TransitionResponse {
	resp := TransitionResponse{Document: ToDocumentResponse(&o.Document)}
	if o.Comment != nil {
		c := ToCommentResponse(o.Comment)
		resp.Comment = &c
	}
	return resp
}

// BulkReviewItemResponse is the per-document result of a bulk review.
type BulkReviewItemResponse struct {
	DocumentID string                `json:"documentID"`
	Success    bool                  `json:"success"`
	Status     domain.DocumentStatus `json:"status,omitempty"`
	Version    int64                 `json:"version,omitempty"`
	Error      string                `json:"error,omitempty"`
}

// BulkReviewResponse summarises a bulk review.
type BulkReviewResponse struct {
	Processed int                      `json:"processed"`
	Failed    int                      `json:"failed"`
	Items     []BulkReviewItemResponse `json:"items"`
}
