package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kuldeep27396/prime-backend/internal/dtos"
)

type HealthHandler struct {
	db *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Root handles GET /.
func (h *HealthHandler) Root(c *gin.Context) {
	dtos.OK(c, http.StatusOK, gin.H{"service": "prime-backend", "status": "ok"})
}

// Health handles GET /health, including a database ping.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, dtos.Envelope{
			Success: false,
			Data:    gin.H{"status": "degraded", "database": "unreachable"},
		})
		return
	}
	dtos.OK(c, http.StatusOK, gin.H{"status": "healthy", "database": "ok"})
}
