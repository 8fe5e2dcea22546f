package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/academic_docs_app/internal/apperrors"
	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	portsrepo "github.com/SscSPs/academic_docs_app/internal/core/ports/repositories"
)

var _ portsrepo.TransactionManager = (*Store)(nil)

// WithinTx stages every write made through tx and applies them together once fn
// returns nil. Transactions run one at a time.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.TxRepositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	tx := &memTx{store: s, docs: make(map[string]domain.Document)}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range tx.comments {
		_, committed := s.documents[c.DocumentID]
		_, staged := tx.docs[c.DocumentID]
		if !committed && !staged {
			return apperrors.ErrNotFound
		}
		if _, exists := s.comments[c.CommentID]; exists {
			return fmt.Errorf("%w: comment %s already exists", apperrors.ErrValidation, c.CommentID)
		}
	}
	for id, d := range tx.docs {
		s.documents[id] = d
	}
	for _, c := range tx.comments {
		s.comments[c.CommentID] = c
		s.commentIDs[c.DocumentID] = append(s.commentIDs[c.DocumentID], c.CommentID)
	}
	s.audit = append(s.audit, tx.audit...)
	return nil
}

// memTx is the staging area of one transaction.
type memTx struct {
	store    *Store
	docs     map[string]domain.Document
	comments []domain.ReviewComment
	audit    []domain.AuditLogEntry
}

func (t *memTx) Documents() portsrepo.DocumentWriter { return txDocuments{t} }
func (t *memTx) Comments() portsrepo.CommentWriter   { return txComments{t} }
func (t *memTx) Audit() portsrepo.AuditWriter        { return txAudit{t} }

type txDocuments struct{ t *memTx }

func (w txDocuments) SaveDocument(_ context.Context, doc domain.Document) error {
	w.t.store.mu.RLock()
	_, exists := w.t.store.documents[doc.DocumentID]
	w.t.store.mu.RUnlock()
	if _, staged := w.t.docs[doc.DocumentID]; exists || staged {
		return fmt.Errorf("%w: document %s already exists", apperrors.ErrValidation, doc.DocumentID)
	}
	w.t.docs[doc.DocumentID] = *cloneDocument(doc)
	return nil
}

func (w txDocuments) UpdateDocumentStatus(_ context.Context, documentID string, fromVersion int64, status domain.DocumentStatus, reviewerID *string, updatedAt time.Time) (*domain.Document, error) {
	if _, staged := w.t.docs[documentID]; !staged {
		w.t.store.mu.RLock()
		d, ok := w.t.store.documents[documentID]
		w.t.store.mu.RUnlock()
		if !ok {
			return nil, apperrors.ErrNotFound
		}
		w.t.docs[documentID] = d
	}
	return w.t.store.updateStatusLocked(w.t.docs, documentID, fromVersion, status, reviewerID, updatedAt)
}

type txComments struct{ t *memTx }

func (w txComments) SaveComment(_ context.Context, comment domain.ReviewComment) error {
	w.t.comments = append(w.t.comments, comment)
	return nil
}

func (w txComments) MarkCommentRead(ctx context.Context, commentID string, readAt time.Time) error {
	return w.t.store.MarkCommentRead(ctx, commentID, readAt)
}

// txAudit behaves like a savepoint: a refused entry is simply not staged and the
// rest of the transaction carries on.
type txAudit struct{ t *memTx }

func (w txAudit) SaveAuditEntry(_ context.Context, entry domain.AuditLogEntry) error {
	w.t.store.mu.RLock()
	fault := w.t.store.auditFault
	w.t.store.mu.RUnlock()
	if fault != nil {
		if err := fault(entry); err != nil {
			return err
		}
	}
	w.t.audit = append(w.t.audit, entry)
	return nil
}
