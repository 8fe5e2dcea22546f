package domain

import "time"

// Severity ranks audit entries for the admin monitoring view.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// IsValid reports whether s is a known severity.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Audit actions that are not workflow events.
const (
	AuditActionCreate  = "create"
	AuditActionComment = "comment"
)

// AuditLogEntry is an immutable record of a state-changing action.
type AuditLogEntry struct {
	EntryID    string    `json:"entryID"`
	ActorID    string    `json:"actorID"`
	DocumentID string    `json:"documentID"`
	Action     string    `json:"action"`
	Detail     string    `json:"detail"`
	IPAddress  string    `json:"ipAddress"`
	Severity   Severity  `json:"severity"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AuditFilter narrows an audit listing. Zero values mean "no constraint".
type AuditFilter struct {
	ActorID    string
	DocumentID string
	Action     string
	Severity   Severity
	Since      *time.Time
	Until      *time.Time
	Limit      int
}

const (
	DefaultAuditLimit = 50
	MaxAuditLimit     = 100
)
