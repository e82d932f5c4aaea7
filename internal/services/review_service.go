package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/kuldeep27396/prime-backend/internal/apperrors"
	"github.com/kuldeep27396/prime-backend/internal/dtos"
	"github.com/kuldeep27396/prime-backend/internal/models"
)

// ReviewService creates reviews and keeps mentor aggregates consistent.
type ReviewService struct {
	reviews  ReviewStore
	sessions SessionStore
}

func NewReviewService(reviews ReviewStore, sessions SessionStore) *ReviewService {
	return &ReviewService{reviews: reviews, sessions: sessions}
}

// CreateReview records a review for a completed session the caller
// attended. The insert and the mentor rating recomputation commit
// together; private reviews still count toward the aggregate.
func (s *ReviewService) CreateReview(ctx context.Context, userID uuid.UUID, req dtos.CreateReviewRequest) (*models.Review, error) {
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return nil, apperrors.Validation("sessionId", "invalid session id")
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	if session.Status != models.SessionStatusCompleted {
		return nil, apperrors.Validation("sessionId", "session is not completed")
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	review := &models.Review{
		ID:        uuid.New(),
		SessionID: sessionID,
		MentorID:  session.MentorID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		IsPublic:  isPublic,
	}

	if _, _, err := s.reviews.CreateAndRecalculate(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListMentorReviews returns a mentor's public reviews.
func (s *ReviewService) ListMentorReviews(ctx context.Context, mentorID uuid.UUID, page, limit int) (*dtos.ReviewListResponse, error) {
	reviews, total, err := s.reviews.ListPublicByMentor(ctx, mentorID, page, limit)
	if err != nil {
		return nil, err
	}

	out := make([]dtos.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, dtos.NewReviewResponse(r))
	}

	return &dtos.ReviewListResponse{
		Reviews:    out,
		Pagination: dtos.NewPagination(page, limit, total),
	}, nil
}
