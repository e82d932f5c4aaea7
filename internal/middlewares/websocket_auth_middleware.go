package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kuldeep27396/prime-backend/internal/apperrors"
	"github.com/kuldeep27396/prime-backend/internal/dtos"
	"github.com/kuldeep27396/prime-backend/internal/models"
	"github.com/kuldeep27396/prime-backend/internal/repositories"
	"github.com/kuldeep27396/prime-backend/internal/utils"
)

const contextWSAuth = "wsAuth"

// WebSocketAuthContext is the authenticated identity of a presence
// connection. Role is derived from session ownership in the database,
// never taken from the client.
type WebSocketAuthContext struct {
	UserID uuid.UUID
	Name   string
	RoomID uuid.UUID
	Role   string // "mentor" or "participant"
	Room   *models.VideoRoom
}

// WebSocketAuthMiddleware authenticates a presence connection before the
// upgrade. Browsers cannot set headers on WebSocket requests, so the
// access token arrives as a query parameter.
func WebSocketAuthMiddleware(
	jwtSecret string,
	rooms *repositories.VideoRoomRepository,
	sessions *repositories.SessionRepository,
	users *repositories.UserRepository,
	mentors *repositories.MentorRepository,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			dtos.Fail(c, http.StatusUnauthorized, apperrors.CodeUnauthorized, "authentication required", nil)
			c.Abort()
			return
		}

		claims, err := utils.ParseAccessToken(token, jwtSecret)
		if err != nil {
			dtos.Fail(c, http.StatusUnauthorized, apperrors.CodeUnauthorized, "invalid or expired token", nil)
			c.Abort()
			return
		}

		roomID, err := uuid.Parse(c.Query("room_id"))
		if err != nil {
			dtos.Fail(c, http.StatusBadRequest, apperrors.CodeValidation, "valid room_id required", nil)
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		room, err := rooms.GetByID(ctx, roomID)
		if err != nil {
			dtos.Fail(c, http.StatusNotFound, apperrors.CodeNotFound, "room not found", nil)
			c.Abort()
			return
		}
		if room.Status != models.RoomStatusActive {
			dtos.Fail(c, http.StatusConflict, apperrors.CodeConflict, "room has ended", nil)
			c.Abort()
			return
		}

		session, err := sessions.GetByID(ctx, room.SessionID)
		if err != nil {
			dtos.Fail(c, http.StatusNotFound, apperrors.CodeNotFound, "session not found", nil)
			c.Abort()
			return
		}

		role := ""
		if mentor, err := mentors.FindByUserID(ctx, claims.UserID); err == nil && mentor.ID == session.MentorID {
			role = "mentor"
		}
		if role == "" && session.UserID == claims.UserID {
			role = "participant"
		}
		if role == "" {
			dtos.Fail(c, http.StatusForbidden, apperrors.CodeForbidden, "not a participant of this session", nil)
			c.Abort()
			return
		}

		user, err := users.FindByID(ctx, claims.UserID)
		if err != nil {
			dtos.Fail(c, http.StatusUnauthorized, apperrors.CodeUnauthorized, "user not found", nil)
			c.Abort()
			return
		}

		c.Set(contextWSAuth, &WebSocketAuthContext{
			UserID: user.ID,
			Name:   user.Name,
			RoomID: roomID,
			Role:   role,
			Room:   room,
		})
		c.Next()
	}
}

// GetWebSocketAuth retrieves the identity stored by WebSocketAuthMiddleware.
func GetWebSocketAuth(c *gin.Context) (*WebSocketAuthContext, error) {
	v, ok := c.Get(contextWSAuth)
	if !ok {
		return nil, errors.New("websocket auth context missing")
	}
	auth, ok := v.(*WebSocketAuthContext)
	if !ok {
		return nil, errors.New("websocket auth context has wrong type")
	}
	return auth, nil
}
