package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/kuldeep27396/prime-backend/internal/middlewares"
	ws "github.com/kuldeep27396/prime-backend/internal/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Auth happens in WebSocketAuthMiddleware; origin policy is CORS's job
	// for the rest of the API and tokens are required here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WebSocketHandler upgrades authenticated connections onto a room's
// presence channel. Media flows through the external provider; this
// channel carries presence, chat, and lifecycle events only.
type WebSocketHandler struct {
	hub *ws.Hub
}

func NewWebSocketHandler(hub *ws.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// HandleWebSocket handles GET /api/ws/rooms. Must run behind
// WebSocketAuthMiddleware.
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	auth, err := middlewares.GetWebSocketAuth(c)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade without auth context")
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Str("room_id", auth.RoomID.String()).Msg("websocket upgrade failed")
		return
	}

	client := &ws.Client{
		ID:        uuid.New(),
		RoomID:    auth.RoomID,
		SessionID: auth.Room.SessionID,
		Role:      auth.Role,
		UserID:    auth.UserID,
		Name:      auth.Name,
		Conn:      conn,
		Hub:       h.hub,
		Send:      make(chan interface{}, 256),
		Done:      make(chan struct{}),
	}

	room := h.hub.AddClient(auth.RoomID, client)

	if other := room.GetOtherClient(auth.Role); other != nil {
		room.SendToRole(other.Role, ws.NewMessage(ws.TypeParticipantJoined, ws.ParticipantJoinedPayload{
			Name: client.Name,
			Role: client.Role,
		}))
	}
	h.announceRoomReady(room, client)

	go h.readPump(client, room)
	go h.writePump(client)
}

// announceRoomReady tells both parties the channel is fully joined.
func (h *WebSocketHandler) announceRoomReady(room *ws.RoomChannel, client *ws.Client) {
	if !room.BothJoined() {
		return
	}

	other := room.GetOtherClient(client.Role)
	if other == nil {
		return
	}

	room.SendToRole(client.Role, ws.NewMessage(ws.TypeRoomReady, ws.RoomReadyPayload{
		RoomID:         client.RoomID.String(),
		OtherPartyName: other.Name,
		OtherPartyRole: other.Role,
	}))
	room.SendToRole(other.Role, ws.NewMessage(ws.TypeRoomReady, ws.RoomReadyPayload{
		RoomID:         client.RoomID.String(),
		OtherPartyName: client.Name,
		OtherPartyRole: client.Role,
	}))
}

// readPump consumes inbound frames until the connection dies, relaying
// chat and status to the other party.
func (h *WebSocketHandler) readPump(client *ws.Client, room *ws.RoomChannel) {
	defer func() {
		h.hub.RemoveClient(client.RoomID, client.Role)
		room.SendToRole(otherRole(client.Role), ws.NewMessage(ws.TypeParticipantLeft, ws.ParticipantLeftPayload{
			Name: client.Name,
			Role: client.Role,
		}))
		client.Close()
	}()

	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var raw json.RawMessage
		if err := client.Conn.ReadJSON(&raw); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("room_id", client.RoomID.String()).Msg("websocket closed unexpectedly")
			}
			return
		}

		var msg ws.WebSocketMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case ws.TypeChat:
			var chat ws.ChatPayload
			if err := json.Unmarshal(msg.Payload, &chat); err != nil || chat.Text == "" {
				continue
			}
			// The sender identity comes from auth, never from the frame.
			chat.From = client.Name
			room.SendToRole(otherRole(client.Role), ws.NewMessage(ws.TypeChat, chat))

		case ws.TypeStatus:
			var status ws.StatusPayload
			if err := json.Unmarshal(msg.Payload, &status); err != nil {
				continue
			}
			room.SendToRole(otherRole(client.Role), ws.NewMessage(ws.TypeStatus, status))

		default:
			log.Debug().Str("type", msg.Type).Msg("ignoring unknown websocket message type")
		}
	}
}

// writePump drains the send queue and keeps the connection alive.
func (h *WebSocketHandler) writePump(client *ws.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteJSON(message); err != nil {
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-client.Done:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

func otherRole(role string) string {
	if role == "mentor" {
		return "participant"
	}
	return "mentor"
}
