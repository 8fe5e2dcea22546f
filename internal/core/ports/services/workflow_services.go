package services

import (
	"context"

	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	"github.com/SscSPs/academic_docs_app/internal/dto"
)

// WorkflowSvcFacade is the entry point callers use to move documents through review.
type WorkflowSvcFacade interface {
	// Transition applies event to the document on behalf of actor.
	Transition(ctx context.Context, documentID string, event domain.Event, actor domain.Actor, req dto.TransitionRequest) (*domain.TransitionOutcome, error)

	// BulkTransition applies approve or reject to each listed document. Items are
	// decided independently; per-item failures are reported in the results and
	// only request-level validation fails the call.
	BulkTransition(ctx context.Context, event domain.Event, actor domain.Actor, req dto.BulkReviewRequest) ([]domain.BulkItemResult, error)

	// Comment leaves a general comment without changing the document's status.
	Comment(ctx context.Context, documentID string, actor domain.Actor, req dto.CreateCommentRequest) (*domain.ReviewComment, error)
}
