package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kuldeep27396/prime-backend/internal/apperrors"
	"github.com/kuldeep27396/prime-backend/internal/dtos"
	"github.com/kuldeep27396/prime-backend/internal/models"
	"github.com/kuldeep27396/prime-backend/internal/utils"
)

const (
	ContextUserID = "userID"
	ContextRole   = "userRole"
)

// AuthMiddleware validates the Bearer access token and stores the caller's
// identity on the gin context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			dtos.Fail(c, http.StatusUnauthorized, apperrors.CodeUnauthorized, "authentication required", nil)
			c.Abort()
			return
		}

		claims, err := utils.ParseAccessToken(strings.TrimPrefix(header, "Bearer "), jwtSecret)
		if err != nil {
			dtos.Fail(c, http.StatusUnauthorized, apperrors.CodeUnauthorized, "invalid or expired token", nil)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// CallerID returns the authenticated user id set by AuthMiddleware.
func CallerID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// CallerRole returns the authenticated user role set by AuthMiddleware.
func CallerRole(c *gin.Context) models.UserRole {
	v, ok := c.Get(ContextRole)
	if !ok {
		return ""
	}
	role, _ := v.(models.UserRole)
	return role
}

// RequireAdmin aborts with 403 unless the caller is an admin.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CallerRole(c) != models.UserRoleAdmin {
			dtos.Fail(c, http.StatusForbidden, apperrors.CodeForbidden, "admin access required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
