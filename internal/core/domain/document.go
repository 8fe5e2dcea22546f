package domain

// DocumentStatus is the workflow state of a document.
type DocumentStatus string

const (
	StatusDraft           DocumentStatus = "draft"
	StatusPendingApproval DocumentStatus = "pending_approval"
	StatusUnderReview     DocumentStatus = "under_review"
	StatusApproved        DocumentStatus = "approved"
	StatusRejected        DocumentStatus = "rejected"
)

// IsValid reports whether s is one of the five workflow states.
func (s DocumentStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPendingApproval, StatusUnderReview, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Document is a teacher-authored file moving through departmental review.
// OwnerID and DepartmentID never change after creation.
type Document struct {
	DocumentID        string         `json:"documentID"`
	OwnerID           string         `json:"ownerID"`
	DepartmentID      string         `json:"departmentID"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	FilePath          string         `json:"filePath"`
	Status            DocumentStatus `json:"status"`
	CurrentReviewerID *string        `json:"currentReviewerID,omitempty"`
	Version           int64          `json:"version"`
	Timestamps
}

// IsConsistent checks the reviewer/status invariant: a reviewer is set iff the
// document is under review.
func (d Document) IsConsistent() bool {
	if !d.Status.IsValid() {
		return false
	}
	return (d.CurrentReviewerID != nil) == (d.Status == StatusUnderReview)
}

// CanView reports whether actor may read doc. Students only see published work.
func CanView(actor Actor, doc Document) bool {
	switch actor.Role {
	case RoleAdmin, RoleCollegeDean:
		return true
	case RoleDepartmentHead:
		if actor.InDepartment(doc.DepartmentID) {
			return true
		}
	case RoleTeacher:
		if doc.OwnerID == actor.ID {
			return true
		}
	}
	return doc.Status == StatusApproved
}
