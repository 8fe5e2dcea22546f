package mapping

import (
	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	"github.com/SscSPs/academic_docs_app/internal/models"
)

// ToModelReviewComment converts a domain ReviewComment to a model ReviewComment
func ToModelReviewComment(d domain.ReviewComment) models.ReviewComment {
	return models.ReviewComment{
		CommentID:  d.CommentID,
		DocumentID: d.DocumentID,
		AuthorID:   d.AuthorID,
		Body:       d.Body,
		Kind:       string(d.Kind),
		IsRead:     d.IsRead,
		ReadAt:     d.ReadAt,
		CreatedAt:  d.CreatedAt,
	}
}

// ToDomainReviewComment converts a model ReviewComment to a domain ReviewComment
func ToDomainReviewComment(m models.ReviewComment) domain.ReviewComment {
	return domain.ReviewComment{
		CommentID:  m.CommentID,
		DocumentID: m.DocumentID,
		AuthorID:   m.AuthorID,
		Body:       m.Body,
		Kind:       domain.CommentKind(m.Kind),
		IsRead:     m.IsRead,
		ReadAt:     m.ReadAt,
		CreatedAt:  m.CreatedAt,
	}
}

// ToDomainReviewCommentSlice converts a slice of model comments to domain comments
func ToDomainReviewCommentSlice(ms []models.ReviewComment) []domain.ReviewComment {
	ds := make([]domain.ReviewComment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainReviewComment(m)
	}
	return ds
}

// ToModelAuditLog converts a domain AuditLogEntry to a model AuditLog
func ToModelAuditLog(d domain.AuditLogEntry) models.AuditLog {
	var documentID *string
	if d.DocumentID != "" {
		id := d.DocumentID
		documentID = &id
	}
	return models.AuditLog{
		EntryID:    d.EntryID,
		ActorID:    d.ActorID,
		DocumentID: documentID,
		Action:     d.Action,
		Detail:     d.Detail,
		IPAddress:  d.IPAddress,
		Severity:   string(d.Severity),
		CreatedAt:  d.CreatedAt,
	}
}

// ToDomainAuditLogEntry converts a model AuditLog to a domain AuditLogEntry
func ToDomainAuditLogEntry(m models.AuditLog) domain.AuditLogEntry {
	e := domain.AuditLogEntry{
		EntryID:   m.EntryID,
		ActorID:   m.ActorID,
		Action:    m.Action,
		Detail:    m.Detail,
		IPAddress: m.IPAddress,
		Severity:  domain.Severity(m.Severity),
		CreatedAt: m.CreatedAt,
	}
	if m.DocumentID != nil {
		e.DocumentID = *m.DocumentID
	}
	return e
}

// ToDomainAuditLogEntrySlice converts a slice of model audit rows to domain entries
func ToDomainAuditLogEntrySlice(ms []models.AuditLog) []domain.AuditLogEntry {
	ds := make([]domain.AuditLogEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAuditLogEntry(m)
	}
	return ds
}
