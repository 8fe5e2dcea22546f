package dto

import "github.com/SscSPs/academic_docs_app/internal/core/domain"

// UpsertDepartmentRequest sets a department's name and its reviewers. An omitted
// or empty user ID clears the assignment.
type UpsertDepartmentRequest struct {
	Name       string  `json:"name" binding:"required,max=255"`
	HeadUserID *string `json:"headUserID"`
	DeanUserID *string `json:"deanUserID"`
}

// DepartmentResponse defines data returned for a department.
type DepartmentResponse struct {
	DepartmentID string  `json:"departmentID"`
	Name         string  `json:"name"`
	HeadUserID   *string `json:"headUserID,omitempty"`
	DeanUserID   *string `json:"deanUserID,omitempty"`
}

// ToDepartmentResponse converts domain.Department to DTO.
func ToDepartmentResponse(d *domain.Department) DepartmentResponse {
	return DepartmentResponse{
		DepartmentID: d.DepartmentID,
		Name:         d.Name,
		HeadUserID:   d.HeadUserID,
		DeanUserID:   d.DeanUserID,
	}
}

// ToDepartmentResponses converts a slice of departments, never returning nil.
func ToDepartmentResponses(ds []domain.Department) []DepartmentResponse {
	list := make([]DepartmentResponse, len(ds))
	for i := range ds {
		list[i] = ToDepartmentResponse(&ds[i])
	}
	return list
}
