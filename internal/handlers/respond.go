package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/academic_docs_app/internal/apperrors"
	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	"github.com/SscSPs/academic_docs_app/internal/dto"
	"github.com/SscSPs/academic_docs_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

const msgVersionConflict = "this document was just updated by someone else - please refresh"

func respondOK(c *gin.Context, status int, data any, message string) {
	c.JSON(status, dto.Envelope{Success: true, Data: data, Message: message})
}

func respondFail(c *gin.Context, status int, message string) {
	c.JSON(status, dto.Envelope{Success: false, Message: message})
}

// respondError maps service errors onto status codes. Only client errors echo the
// error text; infrastructure failures are logged and answered generically.
func respondError(c *gin.Context, logger *slog.Logger, op string, err error) {
	status, message := classifyError(err)
	switch status {
	case http.StatusConflict:
		logger.Info(op+": version conflict", slog.String("error", err.Error()))
	case http.StatusUnprocessableEntity:
		logger.Warn(op+": rejected", slog.String("error", err.Error()))
	case http.StatusForbidden:
		logger.Warn(op+": forbidden", slog.String("error", err.Error()))
	case http.StatusNotFound:
		logger.Warn(op+": not found", slog.String("error", err.Error()))
	case http.StatusUnauthorized:
	default:
		logger.Error(op+": failed", slog.String("error", err.Error()))
	}
	respondFail(c, status, message)
}

// classifyError returns the status code and client-safe message for err.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrVersionConflict):
		return http.StatusConflict, msgVersionConflict
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, "You do not have permission to perform this action"
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, "Resource not found"
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	}
	return http.StatusInternalServerError, "Internal server error"
}

// requireActor fetches the authenticated actor or answers 401.
func requireActor(c *gin.Context, logger *slog.Logger) (domain.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		respondFail(c, http.StatusUnauthorized, "Unauthorized")
		return domain.Actor{}, false
	}
	return actor, true
}
