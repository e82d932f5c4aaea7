package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/kuldeep27396/prime-backend/internal/models"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Name     string `json:"name" binding:"required,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role" binding:"omitempty,oneof=candidate mentor"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

type UpdateProfileRequest struct {
	Name   *string `json:"name" binding:"omitempty,max=255"`
	Avatar *string `json:"avatar" binding:"omitempty,url"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type SkillAssessmentRequest struct {
	Skill     string  `json:"skill" binding:"required,max=100"`
	Score     int     `json:"score" binding:"min=0,max=100"`
	SessionID *string `json:"sessionId" binding:"omitempty,uuid"`
}

type SkillAssessmentResponse struct {
	ID         uuid.UUID  `json:"id"`
	Skill      string     `json:"skill"`
	Score      int        `json:"score"`
	SessionID  *uuid.UUID `json:"sessionId,omitempty"`
	AssessedAt time.Time  `json:"assessedAt"`
}

func NewSkillAssessmentResponse(a *models.SkillAssessment) SkillAssessmentResponse {
	return SkillAssessmentResponse{
		ID:         a.ID,
		Skill:      a.Skill,
		Score:      a.Score,
		SessionID:  a.SessionID,
		AssessedAt: a.AssessedAt,
	}
}

// UserAnalyticsResponse aggregates a user's activity for the dashboard.
type UserAnalyticsResponse struct {
	TotalSessions      int            `json:"totalSessions"`
	CompletedSessions  int            `json:"completedSessions"`
	UpcomingSessions   int            `json:"upcomingSessions"`
	CancelledSessions  int            `json:"cancelledSessions"`
	TotalHours         int            `json:"totalHours"`
	AverageRatingGiven float64        `json:"averageRatingGiven"`
	SkillScores        map[string]int `json:"skillScores"`
}
