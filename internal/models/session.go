package models

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionStatusPending   SessionStatus = "pending"
	SessionStatusConfirmed SessionStatus = "confirmed"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusCancelled SessionStatus = "cancelled"
)

type MeetingType string

const (
	MeetingTypeVideo    MeetingType = "video"
	MeetingTypeAudio    MeetingType = "audio"
	MeetingTypeInPerson MeetingType = "in-person"
)

// legalTransitions is the session lifecycle. completed and cancelled are
// terminal: they have no outgoing edges.
var legalTransitions = map[SessionStatus][]SessionStatus{
	SessionStatusPending:   {SessionStatusConfirmed, SessionStatusCancelled},
	SessionStatusConfirmed: {SessionStatusCompleted, SessionStatusCancelled},
}

// CanTransition reports whether from -> to is a legal status change.
func CanTransition(from, to SessionStatus) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a known session status.
func ValidStatus(s SessionStatus) bool {
	switch s {
	case SessionStatusPending, SessionStatusConfirmed, SessionStatusCompleted, SessionStatusCancelled:
		return true
	}
	return false
}

type Session struct {
	ID       uuid.UUID `db:"id"`
	UserID   uuid.UUID `db:"user_id"`
	MentorID uuid.UUID `db:"mentor_id"`

	SessionType string        `db:"session_type"`
	ScheduledAt time.Time     `db:"scheduled_at"`
	Duration    int           `db:"duration"` // minutes
	MeetingType MeetingType   `db:"meeting_type"`
	MeetingLink string        `db:"meeting_link"`
	Status      SessionStatus `db:"status"`

	RecordSession      bool    `db:"record_session"`
	SpecialRequests    string  `db:"special_requests"`
	Rating             *int    `db:"rating"` // 1-5, set with feedback
	Feedback           *string `db:"feedback"`
	CancellationReason *string `db:"cancellation_reason"`
	RecordingURL       *string `db:"recording_url"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// EndsAt is the exclusive end of the booked window.
func (s *Session) EndsAt() time.Time {
	return s.ScheduledAt.Add(time.Duration(s.Duration) * time.Minute)
}

// Overlaps reports whether two half-open booking windows intersect.
func (s *Session) Overlaps(start, end time.Time) bool {
	return s.ScheduledAt.Before(end) && start.Before(s.EndsAt())
}
