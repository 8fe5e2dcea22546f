package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	portssvc "github.com/SscSPs/academic_docs_app/internal/core/ports/services"
	"github.com/SscSPs/academic_docs_app/internal/dto"
	"github.com/SscSPs/academic_docs_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// auditHandler serves the admin audit-log view.
type auditHandler struct {
	auditService portssvc.AuditSinkSvc
}

// RegisterAuditRoutes registers the admin-only audit routes.
func RegisterAuditRoutes(rg *gin.RouterGroup, as portssvc.AuditSinkSvc) {
	h := &auditHandler{auditService: as}
	rg.GET("/audit-logs", middleware.RequireRole(domain.RoleAdmin), h.listAuditLogs)
}

// listAuditLogs godoc
// @Summary List audit log entries
// @Description Newest first. Admin only.
// @Tags audit
// @Produce  json
// @Param   actor_id query string false "Filter by actor"
// @Param   document_id query string false "Filter by document"
// @Param   action query string false "Filter by action"
// @Param   severity query string false "Filter by severity" Enums(low, medium, high, critical)
// @Param   since query string false "Lower bound (RFC3339)"
// @Param   until query string false "Upper bound (RFC3339)"
// @Param   limit query int false "Maximum entries (default 50, max 100)"
// @Success 200 {object} dto.Envelope{data=[]dto.AuditLogResponse}
// @Failure 400 {object} dto.Envelope "Invalid query"
// @Failure 403 {object} dto.Envelope "Forbidden"
// @Security BearerAuth
// @Router /audit-logs [get]
func (h *auditHandler) listAuditLogs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	var params dto.ListAuditLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListAuditLogs", slog.String("error", err.Error()))
		respondFail(c, http.StatusBadRequest, "Invalid query parameters: "+err.Error())
		return
	}

	entries, err := h.auditService.List(c.Request.Context(), actor, params.ToAuditFilter())
	if err != nil {
		respondError(c, logger, "ListAuditLogs", err)
		return
	}
	respondOK(c, http.StatusOK, dto.ToAuditLogResponses(entries), "")
}
