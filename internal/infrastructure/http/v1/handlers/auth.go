package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agriaccount/internal/core/apperror"
	"agriaccount/internal/domain/auth"
	"agriaccount/internal/infrastructure/http/v1/dto"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	*BaseHandler
	service *auth.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service *auth.Service) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.Login(ctx, req.Username, req.Password)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromLoginResult(result))
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.service.Register(ctx, req.Username, req.Password, req.FullName, req.Role)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromUser(user))
}

// ChangePassword handles POST /auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ChangePasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	userID := c.GetInt64("user_id")
	if userID == 0 {
		h.Error(c, apperror.NewUnauthorized("not authenticated"))
		return
	}

	if err := h.service.ChangePassword(ctx, userID, req.CurrentPassword, req.NewPassword); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	username := c.GetString("username")
	if username == "" {
		h.Error(c, apperror.NewUnauthorized("not authenticated"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       c.GetInt64("user_id"),
		"username": username,
		"role":     c.GetString("role"),
		"isAdmin":  c.GetBool("is_admin"),
	})
}
