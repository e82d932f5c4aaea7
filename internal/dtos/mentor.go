package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/kuldeep27396/prime-backend/internal/models"
)

type AvailabilityWindowRequest struct {
	Weekday string `json:"weekday" binding:"required,weekday"`
	Start   string `json:"start" binding:"required"`
	End     string `json:"end" binding:"required"`
}

// CreateMentorRequest creates a bookable profile for the calling user.
// Availability is required with no implicit default: an empty list is an
// explicit "not bookable yet".
type CreateMentorRequest struct {
	Name              string                      `json:"name" binding:"required,max=255"`
	Title             string                      `json:"title" binding:"max=255"`
	CurrentCompany    string                      `json:"currentCompany" binding:"max=255"`
	PreviousCompanies []string                    `json:"previousCompanies"`
	Avatar            string                      `json:"avatar" binding:"omitempty,url"`
	Bio               string                      `json:"bio"`
	Specialties       []string                    `json:"specialties"`
	Skills            []string                    `json:"skills"`
	Languages         []string                    `json:"languages"`
	Experience        int                         `json:"experience" binding:"min=0,max=60"`
	HourlyRate        float64                     `json:"hourlyRate" binding:"min=0"`
	ResponseTime      string                      `json:"responseTime" binding:"max=50"`
	Timezone          string                      `json:"timezone" binding:"required,timezone"`
	Availability      []AvailabilityWindowRequest `json:"availability" binding:"required,dive"`
}

// MentorFilters are the query parameters accepted by GET /api/mentors.
type MentorFilters struct {
	Page          int      `form:"page,default=1" binding:"min=1"`
	Limit         int      `form:"limit,default=20" binding:"min=1,max=100"`
	Skills        []string `form:"-"`
	Companies     []string `form:"-"`
	Languages     []string `form:"-"`
	RatingMin     *float64 `form:"rating_min" binding:"omitempty,min=0,max=5"`
	PriceMin      *float64 `form:"price_min" binding:"omitempty,min=0"`
	PriceMax      *float64 `form:"price_max" binding:"omitempty,min=0"`
	ExperienceMin *int     `form:"experience_min" binding:"omitempty,min=0"`
	Search        string   `form:"search"`
}

type MentorResponse struct {
	ID                uuid.UUID                   `json:"id"`
	UserID            uuid.UUID                   `json:"userId"`
	Name              string                      `json:"name"`
	Title             string                      `json:"title,omitempty"`
	CurrentCompany    string                      `json:"currentCompany,omitempty"`
	PreviousCompanies []string                    `json:"previousCompanies"`
	Avatar            string                      `json:"avatar,omitempty"`
	Bio               string                      `json:"bio,omitempty"`
	Specialties       []string                    `json:"specialties"`
	Skills            []string                    `json:"skills"`
	Languages         []string                    `json:"languages"`
	Experience        int                         `json:"experience"`
	Rating            float64                     `json:"rating"`
	ReviewCount       int                         `json:"reviewCount"`
	HourlyRate        float64                     `json:"hourlyRate"`
	ResponseTime      string                      `json:"responseTime,omitempty"`
	Timezone          string                      `json:"timezone"`
	Availability      []models.AvailabilityWindow `json:"availability"`
	IsActive          bool                        `json:"isActive"`
	CreatedAt         time.Time                   `json:"createdAt"`
	UpdatedAt         time.Time                   `json:"updatedAt"`
}

func NewMentorResponse(m *models.Mentor) MentorResponse {
	return MentorResponse{
		ID:                m.ID,
		UserID:            m.UserID,
		Name:              m.Name,
		Title:             m.Title,
		CurrentCompany:    m.CurrentCompany,
		PreviousCompanies: orEmpty(m.PreviousCompanies),
		Avatar:            m.Avatar,
		Bio:               m.Bio,
		Specialties:       orEmpty(m.Specialties),
		Skills:            orEmpty(m.Skills),
		Languages:         orEmpty(m.Languages),
		Experience:        m.Experience,
		Rating:            m.Rating,
		ReviewCount:       m.ReviewCount,
		HourlyRate:        m.HourlyRate,
		ResponseTime:      m.ResponseTime,
		Timezone:          m.Timezone,
		Availability:      m.Availability,
		IsActive:          m.IsActive,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

type MentorListResponse struct {
	Mentors    []MentorResponse `json:"mentors"`
	Pagination Pagination       `json:"pagination"`
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
