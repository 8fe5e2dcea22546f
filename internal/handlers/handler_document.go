package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	portssvc "github.com/SscSPs/academic_docs_app/internal/core/ports/services"
	"github.com/SscSPs/academic_docs_app/internal/dto"
	"github.com/SscSPs/academic_docs_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// documentHandler handles HTTP requests related to documents and their workflow.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
	workflowService portssvc.WorkflowSvcFacade
	commentService  portssvc.CommentLedgerSvc
}

func newDocumentHandler(ds portssvc.DocumentSvcFacade, ws portssvc.WorkflowSvcFacade, cs portssvc.CommentLedgerSvc) *documentHandler {
	return &documentHandler{
		documentService: ds,
		workflowService: ws,
		commentService:  cs,
	}
}

// RegisterDocumentRoutes registers routes related to documents, their transitions and comments.
func RegisterDocumentRoutes(rg *gin.RouterGroup, ds portssvc.DocumentSvcFacade, ws portssvc.WorkflowSvcFacade, cs portssvc.CommentLedgerSvc) {
	h := newDocumentHandler(ds, ws, cs)

	documents := rg.Group("/documents")
	{
		documents.POST("", h.createDocument)
		documents.POST("/bulk-review", h.bulkReview)
		documents.GET("/:id", h.getDocument)
		documents.POST("/:id/comments", h.createComment)
		documents.GET("/:id/comments", h.listComments)
		for _, e := range []domain.Event{domain.EventSubmit, domain.EventClaim, domain.EventApprove, domain.EventReject, domain.EventResubmit} {
			documents.POST("/:id/"+string(e), h.transition(e))
		}
	}

	rg.POST("/comments/:id/read", h.markCommentRead)
}

// createDocument godoc
// @Summary Upload a new draft document
// @Description Creates a draft owned by the calling teacher
// @Tags documents
// @Accept  json
// @Produce  json
// @Param   document body dto.CreateDocumentRequest true "Document details"
// @Success 201 {object} dto.Envelope{data=dto.DocumentResponse}
// @Failure 400 {object} dto.Envelope "Invalid input format"
// @Failure 401 {object} dto.Envelope "Unauthorized"
// @Failure 403 {object} dto.Envelope "Forbidden"
// @Failure 422 {object} dto.Envelope "Validation error"
// @Security BearerAuth
// @Router /documents [post]
func (h *documentHandler) createDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDocument", slog.String("error", err.Error()))
		respondFail(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	doc, err := h.documentService.CreateDocument(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, logger, "CreateDocument", err)
		return
	}

	logger.Info("Document created", slog.String("document_id", doc.DocumentID))
	respondOK(c, http.StatusCreated, dto.ToDocumentResponse(doc), "Document created")
}

// getDocument godoc
// @Summary Get a document by ID
// @Tags documents
// @Produce  json
// @Param   id path string true "Document ID"
// @Success 200 {object} dto.Envelope{data=dto.DocumentResponse}
// @Failure 403 {object} dto.Envelope "Forbidden"
// @Failure 404 {object} dto.Envelope "Document not found"
// @Security BearerAuth
// @Router /documents/{id} [get]
func (h *documentHandler) getDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("document_id", c.Param("id")))
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	doc, err := h.documentService.GetDocumentByID(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, logger, "GetDocument", err)
		return
	}
	respondOK(c, http.StatusOK, dto.ToDocumentResponse(doc), "")
}

// transition godoc
// @Summary Apply a workflow event to a document
// @Description One of submit, claim, approve, reject or resubmit. Reject requires a comment.
// @Tags workflow
// @Accept  json
// @Produce  json
// @Param   id path string true "Document ID"
// @Param   event path string true "Workflow event" Enums(submit, claim, approve, reject, resubmit)
// @Param   transition body dto.TransitionRequest true "Expected version and optional comment"
// @Success 200 {object} dto.Envelope{data=dto.TransitionResponse}
// @Failure 403 {object} dto.Envelope "Forbidden"
// @Failure 404 {object} dto.Envelope "Document not found"
// @Failure 409 {object} dto.Envelope "Version conflict"
// @Failure 422 {object} dto.Envelope "Validation error or illegal transition"
// @Security BearerAuth
// @Router /documents/{id}/{event} [post]
func (h *documentHandler) transition(event domain.Event) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(
			slog.String("document_id", c.Param("id")),
			slog.String("event", string(event)),
		)
		actor, ok := requireActor(c, logger)
		if !ok {
			return
		}

		var req dto.TransitionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for transition", slog.String("error", err.Error()))
			respondFail(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
			return
		}

		outcome, err := h.workflowService.Transition(c.Request.Context(), c.Param("id"), event, actor, req)
		if err != nil {
			respondError(c, logger, "Transition", err)
			return
		}

		if outcome.AuditDegraded {
			logger.Warn("Transition committed without an audit entry")
		}
		respondOK(c, http.StatusOK, dto.ToTransitionResponse(outcome), "Document is now "+string(outcome.Document.Status))
	}
}

// bulkReview godoc
// @Summary Approve or reject several documents at once
// @Description Each document is decided independently with its own version check. A reject comment is attached to every rejected document.
// @Tags workflow
// @Accept  json
// @Produce  json
// @Param   review body dto.BulkReviewRequest true "Documents, decision and optional comment"
// @Success 200 {object} dto.Envelope{data=dto.BulkReviewResponse}
// @Failure 400 {object} dto.Envelope "Invalid input format"
// @Failure 422 {object} dto.Envelope "Validation error"
// @Security BearerAuth
// @Router /documents/bulk-review [post]
func (h *documentHandler) bulkReview(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	var req dto.BulkReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for BulkReview", slog.String("error", err.Error()))
		respondFail(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	results, err := h.workflowService.BulkTransition(c.Request.Context(), domain.Event(req.Event), actor, req)
	if err != nil {
		respondError(c, logger, "BulkReview", err)
		return
	}

	resp := dto.BulkReviewResponse{Items: make([]dto.BulkReviewItemResponse, 0, len(results))}
	for _, r := range results {
		item := dto.BulkReviewItemResponse{DocumentID: r.DocumentID}
		if r.Err != nil {
			_, item.Error = classifyError(r.Err)
			resp.Failed++
		} else {
			item.Success = true
			item.Status = r.Outcome.Document.Status
			item.Version = r.Outcome.Document.Version
			resp.Processed++
		}
		resp.Items = append(resp.Items, item)
	}
	respondOK(c, http.StatusOK, resp, fmt.Sprintf("Bulk %s: %d processed, %d failed", req.Event, resp.Processed, resp.Failed))
}

// createComment godoc
// @Summary Leave a general comment on a document
// @Tags comments
// @Accept  json
// @Produce  json
// @Param   id path string true "Document ID"
// @Param   comment body dto.CreateCommentRequest true "Comment body"
// @Success 201 {object} dto.Envelope{data=dto.CommentResponse}
// @Failure 403 {object} dto.Envelope "Forbidden"
// @Failure 404 {object} dto.Envelope "Document not found"
// @Failure 422 {object} dto.Envelope "Validation error"
// @Security BearerAuth
// @Router /documents/{id}/comments [post]
func (h *documentHandler) createComment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("document_id", c.Param("id")))
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateComment", slog.String("error", err.Error()))
		respondFail(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	comment, err := h.workflowService.Comment(c.Request.Context(), c.Param("id"), actor, req)
	if err != nil {
		respondError(c, logger, "CreateComment", err)
		return
	}
	respondOK(c, http.StatusCreated, dto.ToCommentResponse(comment), "Comment added")
}

// listComments godoc
// @Summary List the review comments of a document
// @Description Comments are returned oldest first
// @Tags comments
// @Produce  json
// @Param   id path string true "Document ID"
// @Success 200 {object} dto.Envelope{data=[]dto.CommentResponse}
// @Failure 403 {object} dto.Envelope "Forbidden"
// @Failure 404 {object} dto.Envelope "Document not found"
// @Security BearerAuth
// @Router /documents/{id}/comments [get]
func (h *documentHandler) listComments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("document_id", c.Param("id")))
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	// Visibility of the thread follows visibility of the document.
	doc, err := h.documentService.GetDocumentByID(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, logger, "ListComments", err)
		return
	}

	var comments []domain.ReviewComment
	for comment, err := range h.commentService.ListForDocument(c.Request.Context(), doc.DocumentID) {
		if err != nil {
			respondError(c, logger, "ListComments", err)
			return
		}
		comments = append(comments, comment)
	}
	respondOK(c, http.StatusOK, dto.ToCommentResponses(comments), "")
}

// markCommentRead godoc
// @Summary Mark a review comment as read
// @Tags comments
// @Produce  json
// @Param   id path string true "Comment ID"
// @Success 200 {object} dto.Envelope{data=dto.CommentResponse}
// @Failure 403 {object} dto.Envelope "Forbidden"
// @Failure 404 {object} dto.Envelope "Comment not found"
// @Security BearerAuth
// @Router /comments/{id}/read [post]
func (h *documentHandler) markCommentRead(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("comment_id", c.Param("id")))
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	comment, err := h.commentService.MarkRead(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, logger, "MarkCommentRead", err)
		return
	}
	respondOK(c, http.StatusOK, dto.ToCommentResponse(comment), "")
}
