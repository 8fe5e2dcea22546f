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

// departmentHandler serves the department directory.
type departmentHandler struct {
	departmentService portssvc.DepartmentDirectorySvc
}

// RegisterDepartmentRoutes registers the department directory routes. Writes are admin only.
func RegisterDepartmentRoutes(rg *gin.RouterGroup, ds portssvc.DepartmentDirectorySvc) {
	h := &departmentHandler{departmentService: ds}
	departments := rg.Group("/departments")
	{
		departments.GET("", h.listDepartments)
		departments.PUT("/:id", middleware.RequireRole(domain.RoleAdmin), h.upsertDepartment)
	}
}

// listDepartments godoc
// @Summary List departments
// @Tags departments
// @Produce  json
// @Success 200 {object} dto.Envelope{data=[]dto.DepartmentResponse}
// @Security BearerAuth
// @Router /departments [get]
func (h *departmentHandler) listDepartments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	depts, err := h.departmentService.List(c.Request.Context())
	if err != nil {
		respondError(c, logger, "ListDepartments", err)
		return
	}
	respondOK(c, http.StatusOK, dto.ToDepartmentResponses(depts), "")
}

// upsertDepartment godoc
// @Summary Create or update a department
// @Description Sets the name and the head and dean who review its documents. Admin only.
// @Tags departments
// @Accept  json
// @Produce  json
// @Param   id path string true "Department ID"
// @Param   department body dto.UpsertDepartmentRequest true "Department details"
// @Success 200 {object} dto.Envelope{data=dto.DepartmentResponse}
// @Failure 400 {object} dto.Envelope "Invalid input format"
// @Failure 403 {object} dto.Envelope "Forbidden"
// @Failure 422 {object} dto.Envelope "Validation error"
// @Security BearerAuth
// @Router /departments/{id} [put]
func (h *departmentHandler) upsertDepartment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("department_id", c.Param("id")))
	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	var req dto.UpsertDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertDepartment", slog.String("error", err.Error()))
		respondFail(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	dept, err := h.departmentService.Upsert(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, logger, "UpsertDepartment", err)
		return
	}
	respondOK(c, http.StatusOK, dto.ToDepartmentResponse(dept), "Department saved")
}
