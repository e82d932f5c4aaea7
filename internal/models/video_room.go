package models

import (
	"time"

	"github.com/google/uuid"
)

type RoomStatus string

const (
	RoomStatusActive RoomStatus = "active"
	RoomStatusEnded  RoomStatus = "ended"
)

// VideoRoom is the ephemeral external call resource bound 1:1 to a
// confirmed session while active.
type VideoRoom struct {
	ID        uuid.UUID `db:"id"`
	SessionID uuid.UUID `db:"session_id"`

	RoomID           string     `db:"room_id"` // provider-side identifier
	RoomURL          string     `db:"room_url"`
	ParticipantToken string     `db:"participant_token"`
	MentorToken      string     `db:"mentor_token"`
	Status           RoomStatus `db:"status"`

	RecordingURL   *string    `db:"recording_url"`
	ActualDuration *int       `db:"actual_duration"` // minutes
	EndedAt        *time.Time `db:"ended_at"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
