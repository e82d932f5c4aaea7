package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kuldeep27396/prime-backend/internal/apperrors"
	"github.com/kuldeep27396/prime-backend/internal/dtos"
	"github.com/kuldeep27396/prime-backend/internal/services"
)

type RoomHandler struct {
	rooms *services.RoomService
}

func NewRoomHandler(rooms *services.RoomService) *RoomHandler {
	return &RoomHandler{rooms: rooms}
}

// CreateRoom handles POST /api/rooms: provision a room for a confirmed
// session.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req dtos.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)
		return
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		dtos.FailFromError(c, apperrors.Validation("sessionId", "invalid session id"))
		return
	}

	room, err := h.rooms.ProvisionRoom(c.Request.Context(), sessionID)
	if err != nil {
		dtos.FailFromError(c, err)
		return
	}
	dtos.OK(c, http.StatusCreated, dtos.NewRoomResponse(room))
}

// GetRoomStatus handles GET /api/rooms/:id/status. The id is the room's
// database id; the response includes live presence from the hub.
func (h *RoomHandler) GetRoomStatus(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	resp, err := h.rooms.RoomStatusByID(c.Request.Context(), id)
	if err != nil {
		dtos.FailFromError(c, err)
		return
	}
	dtos.OK(c, http.StatusOK, resp)
}

// EndRoom handles POST /api/rooms/:id/end. Idempotent.
func (h *RoomHandler) EndRoom(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	room, err := h.rooms.EndRoom(c.Request.Context(), id, "ended")
	if err != nil {
		dtos.FailFromError(c, err)
		return
	}
	dtos.OK(c, http.StatusOK, dtos.NewRoomResponse(room))
}
