// Package handlers provides HTTP request handlers.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"agriaccount/internal/core/appctx"
	"agriaccount/internal/core/apperror"
	"agriaccount/internal/infrastructure/http/v1/dto"
)

// BaseHandler provides common handler utilities.
type BaseHandler struct{}

// NewBaseHandler creates a new base handler.
func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// BindJSON binds and validates JSON request body.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid request body").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// BindQuery binds and validates query parameters.
func (h *BaseHandler) BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		h.Error(c, apperror.NewValidation("invalid query parameters").WithDetail("error", err.Error()))
		return false
	}
	return true
}

// Error registers error on Gin context and aborts request.
// Actual JSON response is produced by middleware.ErrorHandler (single source of truth).
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// Outcome sends a save/approve/delete result as JSON. Failed outcomes
// still return 200; the client reads the success flag and message.
func (h *BaseHandler) Outcome(c *gin.Context, ok bool, message string) {
	c.JSON(http.StatusOK, dto.OutcomeResponse{Success: ok, Message: message})
}

// ParseIDParam parses the :id path parameter.
func (h *BaseHandler) ParseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return 0, false
	}
	return id, true
}

// ParseIntQuery parses integer query parameter with default value.
func (h *BaseHandler) ParseIntQuery(c *gin.Context, key string, defaultVal int) int {
	val := c.Query(key)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}

// ParseInt64Query parses an optional int64 query parameter. Returns nil
// when absent or malformed.
func (h *BaseHandler) ParseInt64Query(c *gin.Context, key string) *int64 {
	val := c.Query(key)
	if val == "" {
		return nil
	}
	parsed, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

// GetUserName extracts the acting user's name from request context.
func (h *BaseHandler) GetUserName(c *gin.Context) string {
	return appctx.GetUserName(c.Request.Context())
}
