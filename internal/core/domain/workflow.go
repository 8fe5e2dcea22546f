package domain

// Event names a workflow intent. The string value doubles as the audit action.
type Event string

const (
	EventSubmit   Event = "submit"
	EventClaim    Event = "claim"
	EventApprove  Event = "approve"
	EventReject   Event = "reject"
	EventResubmit Event = "resubmit"
)

// ParseEvent converts a raw event name into an Event.
func ParseEvent(name string) (Event, bool) {
	e := Event(name)
	_, ok := eventTargets[e]
	return e, ok
}

type edge struct {
	from DocumentStatus
	to   DocumentStatus
}

// eventTargets is the single transition table for documents.
var eventTargets = map[Event]edge{
	EventSubmit:   {from: StatusDraft, to: StatusPendingApproval},
	EventClaim:    {from: StatusPendingApproval, to: StatusUnderReview},
	EventApprove:  {from: StatusUnderReview, to: StatusApproved},
	EventReject:   {from: StatusUnderReview, to: StatusRejected},
	EventResubmit: {from: StatusRejected, to: StatusPendingApproval},
}

// NextStatus returns the status reached by applying e in state from.
func NextStatus(from DocumentStatus, e Event) (DocumentStatus, bool) {
	ed, ok := eventTargets[e]
	if !ok || ed.from != from {
		return "", false
	}
	return ed.to, true
}

// roleEvents is the fixed permission table. Admin is handled separately.
var roleEvents = map[Role]map[Event]bool{
	RoleStudent:        {},
	RoleTeacher:        {EventSubmit: true, EventResubmit: true},
	RoleDepartmentHead: {EventClaim: true, EventApprove: true, EventReject: true},
	RoleCollegeDean:    {EventApprove: true, EventReject: true},
}

// RoleAllows reports whether role may perform e on some document.
func RoleAllows(role Role, e Event) bool {
	if role == RoleAdmin {
		_, ok := eventTargets[e]
		return ok
	}
	return roleEvents[role][e]
}

// CanPerform applies the permission table plus its ownership and department scope.
func CanPerform(actor Actor, doc Document, e Event) bool {
	if !RoleAllows(actor.Role, e) {
		return false
	}
	switch actor.Role {
	case RoleAdmin, RoleCollegeDean:
		return true
	case RoleTeacher:
		return doc.OwnerID == actor.ID
	case RoleDepartmentHead:
		return actor.InDepartment(doc.DepartmentID)
	}
	return false
}

// CanComment reports whether actor may leave a general comment on doc.
func CanComment(actor Actor, doc Document) bool {
	switch actor.Role {
	case RoleAdmin, RoleCollegeDean:
		return true
	case RoleDepartmentHead:
		return actor.InDepartment(doc.DepartmentID)
	}
	return doc.OwnerID == actor.ID
}

// ReviewerAfter returns the reviewer for the status reached by e.
func ReviewerAfter(actor Actor, e Event) *string {
	if e != EventClaim {
		return nil
	}
	id := actor.ID
	return &id
}

// CommentKindFor maps the triggering event onto the kind of an attached comment.
func CommentKindFor(e Event) CommentKind {
	switch e {
	case EventApprove:
		return CommentApproval
	case EventReject:
		return CommentRejection
	}
	return CommentGeneral
}

// SeverityFor ranks the audit entry of a transition.
func SeverityFor(actor Actor, e Event) Severity {
	if actor.Role == RoleAdmin {
		return SeverityHigh
	}
	if e == EventApprove || e == EventReject {
		return SeverityMedium
	}
	return SeverityLow
}

// IsEscalation reports whether a decision was taken above the department head.
func IsEscalation(actor Actor, e Event) bool {
	if e != EventApprove && e != EventReject {
		return false
	}
	return actor.Role == RoleCollegeDean || actor.Role == RoleAdmin
}

// TransitionOutcome is the result of a successful transition. AuditDegraded is set
// when the status change committed but its audit entry could not be written.
type TransitionOutcome struct {
	Document      Document
	Comment       *ReviewComment
	AuditDegraded bool
}

// MaxBulkItems caps the number of documents decided in one bulk review.
const MaxBulkItems = 50

// BulkItemResult reports what happened to one document of a bulk review. Exactly
// one of Outcome and Err is set.
type BulkItemResult struct {
	DocumentID string
	Outcome    *TransitionOutcome
	Err        error
}
