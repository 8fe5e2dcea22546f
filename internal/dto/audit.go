package dto

import (
	"time"

	"github.com/SscSPs/academic_docs_app/internal/core/domain"
)

// ListAuditLogsParams binds the admin audit-log query string.
type ListAuditLogsParams struct {
	ActorID    string     `form:"actor_id"`
	DocumentID string     `form:"document_id"`
	Action     string     `form:"action"`
	Severity   string     `form:"severity" binding:"omitempty,oneof=low medium high critical"`
	Since      *time.Time `form:"since" time_format:"2006-01-02T15:04:05Z07:00"`
	Until      *time.Time `form:"until" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit      int        `form:"limit" binding:"omitempty,min=1,max=100"`
}

// ToAuditFilter converts the query parameters into a domain filter.
func (p ListAuditLogsParams) ToAuditFilter() domain.AuditFilter {
	return domain.AuditFilter{
		ActorID:    p.ActorID,
		DocumentID: p.DocumentID,
		Action:     p.Action,
		Severity:   domain.Severity(p.Severity),
		Since:      p.Since,
		Until:      p.Until,
		Limit:      p.Limit,
	}
}

// AuditLogResponse defines data returned for an audit entry.
type AuditLogResponse struct {
	EntryID    string          `json:"entryID"`
	ActorID    string          `json:"actorID"`
	DocumentID string          `json:"documentID"`
	Action     string          `json:"action"`
	Detail     string          `json:"detail"`
	IPAddress  string          `json:"ipAddress"`
	Severity   domain.Severity `json:"severity"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ToAuditLogResponses converts audit entries to DTOs.
func ToAuditLogResponses(es []domain.AuditLogEntry) []AuditLogResponse {
	list := make([]AuditLogResponse, len(es))
	for i, e := range es {
		list[i] = AuditLogResponse{
			EntryID:    e.EntryID,
			ActorID:    e.ActorID,
			DocumentID: e.DocumentID,
			Action:     e.Action,
			Detail:     e.Detail,
			IPAddress:  e.IPAddress,
			Severity:   e.Severity,
			CreatedAt:  e.CreatedAt,
		}
	}
	return list
}
