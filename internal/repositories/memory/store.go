package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/academic_docs_app/internal/apperrors"
	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	portsrepo "github.com/SscSPs/academic_docs_app/internal/core/ports/repositories"
	"github.com/SscSPs/academic_docs_app/internal/utils/pagination"
)

// Store keeps documents, comments and audit entries in-process. It backs the
// memory storage mode and the service tests.
type Store struct {
	mu          sync.RWMutex
	documents   map[string]domain.Document
	comments    map[string]domain.ReviewComment
	commentIDs  map[string][]string // document ID -> comment IDs in insertion order
	audit       []domain.AuditLogEntry
	departments map[string]domain.Department

	// txMu serialises transactions so staged writes never interleave.
	txMu       sync.Mutex
	auditFault func(domain.AuditLogEntry) error
}

// NewSeededStore initializes a store holding the default department directory.
func NewSeededStore() *Store {
	s := NewStore()
	for _, d := range domain.DefaultDepartments() {
		s.SaveDepartment(d)
	}
	return s
}

// NewStore initializes an empty in-memory store.
func NewStore() *Store {
	return &Store{
		documents:   make(map[string]domain.Document),
		comments:    make(map[string]domain.ReviewComment),
		commentIDs:  make(map[string][]string),
		departments: make(map[string]domain.Department),
	}
}

// Provider exposes the store through the repository ports.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		DocumentRepo:   s,
		CommentRepo:    s,
		AuditRepo:      s,
		DepartmentRepo: s,
		TxManager:      s,
	}
}

// SetAuditFault installs a hook consulted before every audit write. A non-nil
// error from it fails the write. Pass nil to clear it.
func (s *Store) SetAuditFault(fault func(domain.AuditLogEntry) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auditFault = fault
}

// SaveDepartment stores or replaces a department.
func (s *Store) SaveDepartment(d domain.Department) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.departments[d.DepartmentID] = d
}

// UpsertDepartment inserts or replaces a department.
func (s *Store) UpsertDepartment(_ context.Context, d domain.Department) error {
	d.HeadUserID = cloneString(d.HeadUserID)
	d.DeanUserID = cloneString(d.DeanUserID)
	s.SaveDepartment(d)
	return nil
}

// ListDepartments returns every department ordered by ID.
func (s *Store) ListDepartments(_ context.Context) ([]domain.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	depts := make([]domain.Department, 0, len(s.departments))
	for _, d := range s.departments {
		depts = append(depts, d)
	}
	slices.SortFunc(depts, func(a, b domain.Department) int {
		return strings.Compare(a.DepartmentID, b.DepartmentID)
	})
	return depts, nil
}

// FindDepartmentByID retrieves a department.
func (s *Store) FindDepartmentByID(_ context.Context, departmentID string) (*domain.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.departments[departmentID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &d, nil
}

// FindDocumentByID retrieves a document.
func (s *Store) FindDocumentByID(_ context.Context, documentID string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.documents[documentID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return cloneDocument(d), nil
}

// SaveDocument stores a new document.
func (s *Store) SaveDocument(_ context.Context, doc domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.documents[doc.DocumentID]; exists {
		return fmt.Errorf("%w: document %s already exists", apperrors.ErrValidation, doc.DocumentID)
	}
	s.documents[doc.DocumentID] = *cloneDocument(doc)
	return nil
}

// UpdateDocumentStatus applies a version-guarded status change.
func (s *Store) UpdateDocumentStatus(_ context.Context, documentID string, fromVersion int64, status domain.DocumentStatus, reviewerID *string, updatedAt time.Time) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateStatusLocked(s.documents, documentID, fromVersion, status, reviewerID, updatedAt)
}

func (s *Store) updateStatusLocked(docs map[string]domain.Document, documentID string, fromVersion int64, status domain.DocumentStatus, reviewerID *string, updatedAt time.Time) (*domain.Document, error) {
	d, ok := docs[documentID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if d.Version != fromVersion {
		return nil, apperrors.ErrVersionConflict
	}
	d.Status = status
	d.CurrentReviewerID = cloneString(reviewerID)
	d.Version++
	d.UpdatedAt = updatedAt
	docs[documentID] = d
	return cloneDocument(d), nil
}

// FindCommentByID retrieves a single comment.
func (s *Store) FindCommentByID(_ context.Context, commentID string) (*domain.ReviewComment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.comments[commentID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

// ListCommentsByDocument pages through a document's comments oldest first.
func (s *Store) ListCommentsByDocument(_ context.Context, documentID string, limit int, nextToken *string) ([]domain.ReviewComment, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	var (
		cursorAt time.Time
		cursorID string
	)
	if nextToken != nil && *nextToken != "" {
		at, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		cursorAt, cursorID = at, id
	}

	s.mu.RLock()
	all := make([]domain.ReviewComment, 0, len(s.commentIDs[documentID]))
	for _, id := range s.commentIDs[documentID] {
		all = append(all, s.comments[id])
	}
	s.mu.RUnlock()

	slices.SortFunc(all, func(a, b domain.ReviewComment) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.CommentID, b.CommentID)
	})

	page := make([]domain.ReviewComment, 0, limit)
	for _, c := range all {
		if cursorID != "" && !pagination.After(c.CreatedAt, c.CommentID, cursorAt, cursorID) {
			continue
		}
		page = append(page, c)
		if len(page) == limit {
			break
		}
	}
	if len(page) < limit {
		return page, nil, nil
	}
	last := page[len(page)-1]
	token := pagination.EncodeToken(last.CreatedAt, last.CommentID)
	return page, &token, nil
}

// SaveComment appends a comment.
func (s *Store) SaveComment(_ context.Context, comment domain.ReviewComment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveCommentLocked(comment)
}

func (s *Store) saveCommentLocked(comment domain.ReviewComment) error {
	if _, ok := s.documents[comment.DocumentID]; !ok {
		return apperrors.ErrNotFound
	}
	if _, exists := s.comments[comment.CommentID]; exists {
		return fmt.Errorf("%w: comment %s already exists", apperrors.ErrValidation, comment.CommentID)
	}
	s.comments[comment.CommentID] = comment
	s.commentIDs[comment.DocumentID] = append(s.commentIDs[comment.DocumentID], comment.CommentID)
	return nil
}

// MarkCommentRead flags a comment as read once.
func (s *Store) MarkCommentRead(_ context.Context, commentID string, readAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[commentID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if c.IsRead {
		return nil
	}
	c.IsRead = true
	c.ReadAt = &readAt
	s.comments[commentID] = c
	return nil
}

// SaveAuditEntry appends an audit entry unless the fault hook refuses it.
func (s *Store) SaveAuditEntry(_ context.Context, entry domain.AuditLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.auditFault != nil {
		if err := s.auditFault(entry); err != nil {
			return err
		}
	}
	s.audit = append(s.audit, entry)
	return nil
}

// ListAuditEntries returns matching entries newest first.
func (s *Store) ListAuditEntries(_ context.Context, filter domain.AuditFilter) ([]domain.AuditLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.AuditLogEntry, 0)
	for i := len(s.audit) - 1; i >= 0; i-- {
		if matchesAudit(s.audit[i], filter) {
			out = append(out, s.audit[i])
		}
	}
	slices.SortStableFunc(out, func(a, b domain.AuditLogEntry) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// AuditEntries returns a copy of every stored entry in insertion order.
func (s *Store) AuditEntries() []domain.AuditLogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.audit)
}

func matchesAudit(e domain.AuditLogEntry, f domain.AuditFilter) bool {
	switch {
	case f.ActorID != "" && e.ActorID != f.ActorID:
		return false
	case f.DocumentID != "" && e.DocumentID != f.DocumentID:
		return false
	case f.Action != "" && e.Action != f.Action:
		return false
	case f.Severity != "" && e.Severity != f.Severity:
		return false
	case f.Since != nil && e.CreatedAt.Before(*f.Since):
		return false
	case f.Until != nil && e.CreatedAt.After(*f.Until):
		return false
	}
	return true
}

func cloneDocument(d domain.Document) *domain.Document {
	d.CurrentReviewerID = cloneString(d.CurrentReviewerID)
	return &d
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
