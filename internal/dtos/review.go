package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/kuldeep27396/prime-backend/internal/models"
)

type CreateReviewRequest struct {
	SessionID string `json:"sessionId" binding:"required,uuid"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment" binding:"max=5000"`
	IsPublic  *bool  `json:"isPublic"`
}

type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"sessionId"`
	MentorID  uuid.UUID `json:"mentorId"`
	UserID    uuid.UUID `json:"userId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	IsPublic  bool      `json:"isPublic"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewReviewResponse(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		SessionID: r.SessionID,
		MentorID:  r.MentorID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		IsPublic:  r.IsPublic,
		CreatedAt: r.CreatedAt,
	}
}

type ReviewListResponse struct {
	Reviews    []ReviewResponse `json:"reviews"`
	Pagination Pagination       `json:"pagination"`
}
