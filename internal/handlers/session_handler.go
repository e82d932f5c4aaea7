package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kuldeep27396/prime-backend/internal/dtos"
	"github.com/kuldeep27396/prime-backend/internal/middlewares"
	"github.com/kuldeep27396/prime-backend/internal/services"
)

type SessionHandler struct {
	booking *services.BookingService
}

func NewSessionHandler(booking *services.BookingService) *SessionHandler {
	return &SessionHandler{booking: booking}
}

// CreateSession handles POST /api/sessions.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	callerID, _ := middlewares.CallerID(c)

	var req dtos.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)
		return
	}

	session, err := h.booking.CreateSession(c.Request.Context(), callerID, req)
	if err != nil {
		dtos.FailFromError(c, err)
		return
	}
	dtos.OK(c, http.StatusCreated, dtos.NewSessionResponse(session))
}

// ListSessions handles GET /api/sessions for the caller.
func (h *SessionHandler) ListSessions(c *gin.Context) {
	callerID, _ := middlewares.CallerID(c)

	var f dtos.SessionFilters
	if err := c.ShouldBindQuery(&f); err != nil {
		bindFail(c, err)
		return
	}

	resp, err := h.booking.ListSessions(c.Request.Context(), callerID, f)
	if err != nil {
		dtos.FailFromError(c, err)
		return
	}
	dtos.OK(c, http.StatusOK, resp)
}

// UpdateSession handles PATCH /api/sessions/:id.
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	callerID, _ := middlewares.CallerID(c)

	var req dtos.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)
		return
	}

	session, err := h.booking.UpdateSession(c.Request.Context(), callerID, middlewares.CallerRole(c), id, req)
	if err != nil {
		dtos.FailFromError(c, err)
		return
	}
	dtos.OK(c, http.StatusOK, dtos.NewSessionResponse(session))
}
