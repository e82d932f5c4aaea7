package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/kuldeep27396/prime-backend/internal/models"
)

type CreateRoomRequest struct {
	SessionID string `json:"sessionId" binding:"required,uuid"`
}

type RoomResponse struct {
	ID               uuid.UUID `json:"id"`
	SessionID        uuid.UUID `json:"sessionId"`
	RoomID           string    `json:"roomId"`
	RoomURL          string    `json:"roomUrl"`
	ParticipantToken string    `json:"participantToken"`
	MentorToken      string    `json:"mentorToken"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
}

func NewRoomResponse(r *models.VideoRoom) RoomResponse {
	return RoomResponse{
		ID:               r.ID,
		SessionID:        r.SessionID,
		RoomID:           r.RoomID,
		RoomURL:          r.RoomURL,
		ParticipantToken: r.ParticipantToken,
		MentorToken:      r.MentorToken,
		Status:           string(r.Status),
		CreatedAt:        r.CreatedAt,
	}
}

type RoomParticipant struct {
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

type RoomStatusResponse struct {
	RoomID       string            `json:"roomId"`
	Status       string            `json:"status"`
	Participants []RoomParticipant `json:"participants"`
	RecordingURL *string           `json:"recordingUrl,omitempty"`
	Duration     *int              `json:"duration,omitempty"`
}
