package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/kuldeep27396/prime-backend/internal/apperrors"
	"github.com/kuldeep27396/prime-backend/internal/dtos"
	"github.com/kuldeep27396/prime-backend/internal/models"
	"github.com/kuldeep27396/prime-backend/internal/utils"
)

// MentorService manages mentor profiles and discovery.
type MentorService struct {
	mentors MentorStore
	users   UserStore
}

func NewMentorService(mentors MentorStore, users UserStore) *MentorService {
	return &MentorService{mentors: mentors, users: users}
}

// CreateProfile creates the caller's bookable profile. Availability is a
// required field: an empty list is an explicit "not bookable yet", never
// an implicit default.
func (s *MentorService) CreateProfile(ctx context.Context, userID uuid.UUID, req dtos.CreateMentorRequest) (*models.Mentor, error) {
	availability := make(models.Availability, 0, len(req.Availability))
	for _, w := range req.Availability {
		availability = append(availability, models.AvailabilityWindow{
			Weekday: w.Weekday,
			Start:   w.Start,
			End:     w.End,
		})
	}
	if err := utils.ValidateAvailability(availability); err != nil {
		return nil, apperrors.Validation("availability", err.Error())
	}

	mentor := &models.Mentor{
		ID:                uuid.New(),
		UserID:            userID,
		Name:              req.Name,
		Title:             req.Title,
		CurrentCompany:    req.CurrentCompany,
		PreviousCompanies: req.PreviousCompanies,
		Avatar:            req.Avatar,
		Bio:               req.Bio,
		Specialties:       req.Specialties,
		Skills:            req.Skills,
		Languages:         req.Languages,
		Experience:        req.Experience,
		HourlyRate:        req.HourlyRate,
		ResponseTime:      req.ResponseTime,
		Timezone:          req.Timezone,
		Availability:      availability,
		IsActive:          true,
	}

	if err := s.mentors.Create(ctx, mentor); err != nil {
		return nil, err
	}

	if err := s.users.PromoteToMentor(ctx, userID); err != nil {
		return nil, err
	}

	return mentor, nil
}

// GetMentor returns one mentor by id.
func (s *MentorService) GetMentor(ctx context.Context, id uuid.UUID) (*models.Mentor, error) {
	return s.mentors.FindByID(ctx, id)
}

// ListMentors returns mentors matching the discovery filters.
func (s *MentorService) ListMentors(ctx context.Context, f dtos.MentorFilters) (*dtos.MentorListResponse, error) {
	mentors, total, err := s.mentors.List(ctx, f)
	if err != nil {
		return nil, err
	}

	out := make([]dtos.MentorResponse, 0, len(mentors))
	for _, m := range mentors {
		out = append(out, dtos.NewMentorResponse(m))
	}

	return &dtos.MentorListResponse{
		Mentors:    out,
		Pagination: dtos.NewPagination(f.Page, f.Limit, total),
	}, nil
}
