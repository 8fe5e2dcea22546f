package mapping

import (
	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	"github.com/SscSPs/academic_docs_app/internal/models"
)

// ToModelDocument converts a domain Document to a model Document
func ToModelDocument(d domain.Document) models.Document {
	return models.Document{
		DocumentID:        d.DocumentID,
		OwnerID:           d.OwnerID,
		DepartmentID:      d.DepartmentID,
		Title:             d.Title,
		Description:       d.Description,
		FilePath:          d.FilePath,
		Status:            string(d.Status),
		CurrentReviewerID: d.CurrentReviewerID,
		Version:           d.Version,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

// ToDomainDocument converts a model Document to a domain Document
func ToDomainDocument(m models.Document) domain.Document {
	return domain.Document{
		DocumentID:        m.DocumentID,
		OwnerID:           m.OwnerID,
		DepartmentID:      m.DepartmentID,
		Title:             m.Title,
		Description:       m.Description,
		FilePath:          m.FilePath,
		Status:            domain.DocumentStatus(m.Status),
		CurrentReviewerID: m.CurrentReviewerID,
		Version:           m.Version,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToDomainDepartment converts a model Department to a domain Department
func ToDomainDepartment(m models.Department) domain.Department {
	return domain.Department{
		DepartmentID: m.DepartmentID,
		Name:         m.Name,
		HeadUserID:   m.HeadUserID,
		DeanUserID:   m.DeanUserID,
	}
}

// ToModelDepartment converts a domain Department to a model Department
func ToModelDepartment(d domain.Department) models.Department {
	return models.Department{
		DepartmentID: d.DepartmentID,
		Name:         d.Name,
		HeadUserID:   d.HeadUserID,
		DeanUserID:   d.DeanUserID,
	}
}
