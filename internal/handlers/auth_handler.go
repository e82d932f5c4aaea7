package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kuldeep27396/prime-backend/internal/dtos"
	"github.com/kuldeep27396/prime-backend/internal/services"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /api/users.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dtos.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)
		return
	}

	resp, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		dtos.FailFromError(c, err)
		return
	}
	dtos.OK(c, http.StatusCreated, resp)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		dtos.FailFromError(c, err)
		return
	}
	dtos.OK(c, http.StatusOK, resp)
}

// Refresh handles POST /api/auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dtos.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)
		return
	}

	resp, err := h.auth.Refresh(c.Request.Context(), req)
	if err != nil {
		dtos.FailFromError(c, err)
		return
	}
	dtos.OK(c, http.StatusOK, resp)
}
