package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/kuldeep27396/prime-backend/internal/models"
)

type CreateSessionRequest struct {
	MentorID        string    `json:"mentorId" binding:"required,uuid"`
	SessionType     string    `json:"sessionType" binding:"required,max=255"`
	ScheduledAt     time.Time `json:"scheduledAt" binding:"required"`
	Duration        int       `json:"duration" binding:"required,min=1,max=480"`
	MeetingType     string    `json:"meetingType" binding:"required,oneof=video audio in-person"`
	RecordSession   bool      `json:"recordSession"`
	SpecialRequests string    `json:"specialRequests" binding:"max=2000"`
}

// UpdateSessionRequest patches a session. A nil field is left untouched.
type UpdateSessionRequest struct {
	Status             *string `json:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
	Rating             *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Feedback           *string `json:"feedback" binding:"omitempty,max=5000"`
	CancellationReason *string `json:"cancellationReason" binding:"omitempty,max=2000"`
}

type SessionFilters struct {
	Status string `form:"status" binding:"omitempty,oneof=pending confirmed completed cancelled upcoming"`
	Page   int    `form:"page,default=1" binding:"min=1"`
	Limit  int    `form:"limit,default=10" binding:"min=1,max=100"`
}

type SessionResponse struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"userId"`
	MentorID           uuid.UUID `json:"mentorId"`
	SessionType        string    `json:"sessionType"`
	ScheduledAt        time.Time `json:"scheduledAt"`
	Duration           int       `json:"duration"`
	MeetingType        string    `json:"meetingType"`
	MeetingLink        string    `json:"meetingLink,omitempty"`
	Status             string    `json:"status"`
	RecordSession      bool      `json:"recordSession"`
	SpecialRequests    string    `json:"specialRequests,omitempty"`
	Rating             *int      `json:"rating,omitempty"`
	Feedback           *string   `json:"feedback,omitempty"`
	CancellationReason *string   `json:"cancellationReason,omitempty"`
	RecordingURL       *string   `json:"recordingUrl,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func NewSessionResponse(s *models.Session) SessionResponse {
	return SessionResponse{
		ID:                 s.ID,
		UserID:             s.UserID,
		MentorID:           s.MentorID,
		SessionType:        s.SessionType,
		ScheduledAt:        s.ScheduledAt,
		Duration:           s.Duration,
		MeetingType:        string(s.MeetingType),
		MeetingLink:        s.MeetingLink,
		Status:             string(s.Status),
		RecordSession:      s.RecordSession,
		SpecialRequests:    s.SpecialRequests,
		Rating:             s.Rating,
		Feedback:           s.Feedback,
		CancellationReason: s.CancellationReason,
		RecordingURL:       s.RecordingURL,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

// SessionWithMentor decorates a session with display data for list views.
type SessionWithMentor struct {
	SessionResponse
	MentorName    string `json:"mentorName"`
	MentorAvatar  string `json:"mentorAvatar,omitempty"`
	MentorCompany string `json:"mentorCompany,omitempty"`
}

type SessionStats struct {
	TotalSessions     int     `json:"totalSessions"`
	CompletedSessions int     `json:"completedSessions"`
	UpcomingSessions  int     `json:"upcomingSessions"`
	AverageRating     float64 `json:"averageRating"`
	TotalHours        int     `json:"totalHours"`
}

type SessionListResponse struct {
	Sessions   []SessionWithMentor `json:"sessions"`
	Stats      SessionStats        `json:"stats"`
	Pagination Pagination          `json:"pagination"`
}
