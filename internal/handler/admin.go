package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taxiq/internal/service"
)

// AdminHandler handles HTTP requests for the configured admin principal.
type AdminHandler struct {
	authService *service.AuthService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(authService *service.AuthService) *AdminHandler {
	return &AdminHandler{authService: authService}
}

// Login handles POST /v1/admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "invalid request body")
		return
	}

	result, err := h.authService.LoginAdmin(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      result.Token,
		"expires_at": result.ExpiresAt.Format(time.RFC3339),
	})
}
