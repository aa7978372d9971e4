package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/donorlink/backend/internal/domain/shared"
	"github.com/donorlink/backend/internal/infrastructure/logger"
	"github.com/donorlink/backend/internal/interfaces/http/dto"
	"github.com/donorlink/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// Error sends an error response with the given status
func (h *BaseHandler) Error(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, dto.NewErrorResponse(message))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, message)
}

// HandleError converts domain errors to their status and hides anything
// else behind a 500. Outside release mode the 500 carries the error text.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Error(c, dto.GetHTTPStatus(domainErr.Code), domainErr.Message)
		return
	}

	_ = c.Error(err)
	logger.GetGinLogger(c).Error("Unexpected error", zap.Error(err))

	message := "Internal server error"
	if gin.Mode() != gin.ReleaseMode {
		message = err.Error()
	}
	h.Error(c, http.StatusInternalServerError, message)
}

// BindJSON binds the body into obj or answers 400
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.BadRequest(c, middleware.BindingErrorMessage(err))
		return false
	}
	return true
}

// BindOptionalJSON binds the body when one was sent
func (h *BaseHandler) BindOptionalJSON(c *gin.Context, obj any) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	return h.BindJSON(c, obj)
}

// CurrentUserID returns the authenticated user or answers with the auth error
func (h *BaseHandler) CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	id, err := middleware.CurrentUserID(c)
	if err != nil {
		h.HandleError(c, err)
		return uuid.Nil, false
	}
	return id, true
}

// ParamUUID parses a uuid path parameter or answers 400
func (h *BaseHandler) ParamUUID(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "Invalid "+label+" ID format")
		return uuid.Nil, false
	}
	return id, true
}

// dateLayouts are the accepted input formats for calendar fields
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// parseDate parses an optional date field. An empty string yields nil.
func parseDate(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, shared.NewValidationError(field + ": Invalid date, expected YYYY-MM-DD or RFC 3339")
}
