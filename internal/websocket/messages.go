package websocket

import (
	"encoding/json"
	"time"
)

// Message types exchanged on the room presence channel. Media itself flows
// through the external provider; this channel only carries presence, chat,
// and lifecycle events.
const (
	TypeRoomReady         = "room_ready"
	TypeParticipantJoined = "participant_joined"
	TypeParticipantLeft   = "participant_left"
	TypeRoomEnded         = "room_ended"
	TypeChat              = "chat"
	TypeStatus            = "status"
)

// WebSocketMessage is the standard frame for all channel communication.
type WebSocketMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// NewMessage builds an outbound frame; payload marshal errors are
// unrepresentable for the fixed payload types below.
func NewMessage(msgType string, payload interface{}) map[string]interface{} {
	return map[string]interface{}{
		"type":    msgType,
		"payload": payload,
	}
}

// PresenceInfo describes one connected participant.
type PresenceInfo struct {
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

type RoomReadyPayload struct {
	RoomID         string `json:"room_id"`
	OtherPartyName string `json:"other_party_name"`
	OtherPartyRole string `json:"other_party_role"`
}

type ParticipantJoinedPayload struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type ParticipantLeftPayload struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type RoomEndedPayload struct {
	RoomID string `json:"room_id"`
	Reason string `json:"reason"` // "ended", "session_cancelled", "session_completed", "expired"
}

type ChatPayload struct {
	From string `json:"from"`
	Text string `json:"text"`
}

type StatusPayload struct {
	State string `json:"state"` // free-form client state, relayed verbatim
}
