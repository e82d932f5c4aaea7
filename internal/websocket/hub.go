package websocket

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Client is one connected participant of a video room's presence channel.
type Client struct {
	ID        uuid.UUID
	RoomID    uuid.UUID // video_rooms primary key
	SessionID uuid.UUID
	Role      string // "mentor" or "participant" - derived from session ownership
	UserID    uuid.UUID
	Name      string
	Conn      *websocket.Conn
	Hub       *Hub
	Send      chan interface{}
	Done      chan struct{}

	closeOnce sync.Once
}

// Hub tracks the live presence channel of every active room.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]*RoomChannel // key: room id
}

// RoomChannel pairs the mentor and the candidate of one room.
type RoomChannel struct {
	RoomID      uuid.UUID
	Mentor      *Client
	Participant *Client
	StartTime   time.Time
	mu          sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[uuid.UUID]*RoomChannel),
	}
}

// AddClient registers a client with its room channel, creating the channel
// on first join. A duplicate connection for the same role replaces (and
// closes) the previous one.
func (h *Hub) AddClient(roomID uuid.UUID, client *Client) *RoomChannel {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, exists := h.rooms[roomID]
	if !exists {
		room = &RoomChannel{RoomID: roomID, StartTime: time.Now()}
		h.rooms[roomID] = room
	}

	room.mu.Lock()
	defer room.mu.Unlock()
	if client.Role == "mentor" {
		if room.Mentor != nil && room.Mentor.ID != client.ID {
			log.Debug().Str("room_id", roomID.String()).Msg("closing duplicate mentor connection")
			room.Mentor.Close()
		}
		room.Mentor = client
	} else {
		if room.Participant != nil && room.Participant.ID != client.ID {
			log.Debug().Str("room_id", roomID.String()).Msg("closing duplicate participant connection")
			room.Participant.Close()
		}
		room.Participant = client
	}

	return room
}

// GetRoom returns the live channel for a room, or nil.
func (h *Hub) GetRoom(roomID uuid.UUID) *RoomChannel {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.rooms[roomID]
}

// RemoveClient drops a role's client; the channel is removed once empty.
func (h *Hub) RemoveClient(roomID uuid.UUID, role string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, exists := h.rooms[roomID]
	if !exists {
		return
	}

	room.mu.Lock()
	if role == "mentor" {
		room.Mentor = nil
	} else {
		room.Participant = nil
	}
	empty := room.Mentor == nil && room.Participant == nil
	room.mu.Unlock()

	if empty {
		delete(h.rooms, roomID)
	}
}

// Participants lists who is currently connected to a room. Feeds the room
// status endpoint.
func (h *Hub) Participants(roomID uuid.UUID) []PresenceInfo {
	room := h.GetRoom(roomID)
	if room == nil {
		return nil
	}

	room.mu.RLock()
	defer room.mu.RUnlock()

	var out []PresenceInfo
	if room.Mentor != nil {
		out = append(out, PresenceInfo{Name: room.Mentor.Name, Role: "mentor", JoinedAt: room.StartTime})
	}
	if room.Participant != nil {
		out = append(out, PresenceInfo{Name: room.Participant.Name, Role: "participant", JoinedAt: room.StartTime})
	}
	return out
}

// CloseRoom broadcasts room_ended and tears the channel down. Called when
// a room is ended over HTTP or by the sweeper.
func (h *Hub) CloseRoom(roomID uuid.UUID, reason string) {
	room := h.GetRoom(roomID)
	if room == nil {
		return
	}

	room.Broadcast(NewMessage(TypeRoomEnded, RoomEndedPayload{RoomID: roomID.String(), Reason: reason}))

	room.mu.RLock()
	mentor := room.Mentor
	participant := room.Participant
	room.mu.RUnlock()

	if mentor != nil {
		mentor.Close()
	}
	if participant != nil {
		participant.Close()
	}

	h.mu.Lock()
	delete(h.rooms, roomID)
	h.mu.Unlock()
}

// BothJoined reports whether mentor and candidate are both connected.
func (r *RoomChannel) BothJoined() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.Mentor != nil && r.Participant != nil
}

// GetOtherClient returns the opposite party's client.
func (r *RoomChannel) GetOtherClient(role string) *Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if role == "mentor" {
		return r.Participant
	}
	return r.Mentor
}

// Broadcast sends a message to both parties. Slow consumers are skipped.
func (r *RoomChannel) Broadcast(message interface{}) {
	r.mu.RLock()
	mentor := r.Mentor
	participant := r.Participant
	r.mu.RUnlock()

	for _, client := range []*Client{mentor, participant} {
		if client == nil {
			continue
		}
		select {
		case client.Send <- message:
		default:
		}
	}
}

// SendToRole sends a message to one party.
func (r *RoomChannel) SendToRole(role string, message interface{}) {
	r.mu.RLock()
	var client *Client
	if role == "mentor" {
		client = r.Mentor
	} else {
		client = r.Participant
	}
	r.mu.RUnlock()

	if client != nil {
		select {
		case client.Send <- message:
		default:
		}
	}
}

// Close shuts the client down exactly once. Send stays open; Done is the
// only shutdown signal, so a broadcast racing a close never hits a closed
// channel.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.Done)
		if c.Conn != nil {
			c.Conn.Close()
		}
	})
}

// IsConnected reports whether the client is still live.
func (c *Client) IsConnected() bool {
	select {
	case <-c.Done:
		return false
	default:
		return true
	}
}
