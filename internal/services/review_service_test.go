package services

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kuldeep27396/prime-backend/internal/apperrors"
	"github.com/kuldeep27396/prime-backend/internal/dtos"
	"github.com/kuldeep27396/prime-backend/internal/models"
)

type reviewFixture struct {
	mentors  *fakeMentorStore
	sessions *fakeSessionStore
	reviews  *fakeReviewStore
	svc      *ReviewService
	mentorID uuid.UUID
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	mentors := newFakeMentorStore()
	sessions := newFakeSessionStore()
	reviews := newFakeReviewStore(mentors)

	mentor := &models.Mentor{ID: uuid.New(), UserID: uuid.New(), Name: "Mentor", Timezone: "UTC"}
	if err := mentors.Create(context.Background(), mentor); err != nil {
		t.Fatalf("seeding mentor: %v", err)
	}

	return &reviewFixture{
		mentors:  mentors,
		sessions: sessions,
		reviews:  reviews,
		svc:      NewReviewService(reviews, sessions),
		mentorID: mentor.ID,
	}
}

func (fx *reviewFixture) seedSession(userID uuid.UUID, status models.SessionStatus) *models.Session {
	session := &models.Session{
		ID:          uuid.New(),
		UserID:      userID,
		MentorID:    fx.mentorID,
		ScheduledAt: time.Now().Add(-2 * time.Hour),
		Duration:    60,
		Status:      status,
	}
	fx.sessions.mu.Lock()
	fx.sessions.sessions[session.ID] = session
	fx.sessions.mu.Unlock()
	return session
}

func TestCreateReview(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name    string
		status  models.SessionStatus
		caller  uuid.UUID
		wantErr func(error) bool
	}{
		{name: "completed session accepts review", status: models.SessionStatusCompleted, caller: userID},
		{name: "pending session rejected", status: models.SessionStatusPending, caller: userID, wantErr: isValidationErr},
		{name: "confirmed session rejected", status: models.SessionStatusConfirmed, caller: userID, wantErr: isValidationErr},
		{name: "cancelled session rejected", status: models.SessionStatusCancelled, caller: userID, wantErr: isValidationErr},
		{name: "stranger forbidden", status: models.SessionStatusCompleted, caller: uuid.New(), wantErr: func(err error) bool {
			return errors.Is(err, apperrors.ErrForbidden)
		}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fx := newReviewFixture(t)
			session := fx.seedSession(userID, test.status)

			review, err := fx.svc.CreateReview(context.Background(), test.caller, dtos.CreateReviewRequest{
				SessionID: session.ID.String(),
				Rating:    5,
				Comment:   "great prep",
			})

			if test.wantErr == nil {
				if err != nil {
					t.Fatalf("CreateReview() error = %v", err)
				}
				if !review.IsPublic {
					t.Error("visibility should default to public")
				}
				return
			}
			if err == nil || !test.wantErr(err) {
				t.Fatalf("CreateReview() error = %v, want matching error", err)
			}
		})
	}
}

func TestCreateReview_OnePerSession(t *testing.T) {
	fx := newReviewFixture(t)
	userID := uuid.New()
	session := fx.seedSession(userID, models.SessionStatusCompleted)

	req := dtos.CreateReviewRequest{SessionID: session.ID.String(), Rating: 4}
	if _, err := fx.svc.CreateReview(context.Background(), userID, req); err != nil {
		t.Fatalf("first CreateReview() error = %v", err)
	}
	_, err := fx.svc.CreateReview(context.Background(), userID, req)
	if !errors.Is(err, apperrors.ErrReviewExists) {
		t.Fatalf("second CreateReview() error = %v, want ErrReviewExists", err)
	}
}

// The mentor aggregate is the rounded mean of all reviews, private ones
// included.
func TestCreateReview_RatingRecompute(t *testing.T) {
	tests := []struct {
		name       string
		ratings    []int
		private    map[int]bool // index -> IsPublic=false
		wantRating float64
		wantCount  int
	}{
		{name: "single review", ratings: []int{4}, wantRating: 4.00, wantCount: 1},
		{name: "mean of two", ratings: []int{5, 4}, wantRating: 4.50, wantCount: 2},
		{name: "rounded to two decimals", ratings: []int{5, 4, 4}, wantRating: 4.33, wantCount: 3},
		{name: "private review still counts", ratings: []int{5, 1}, private: map[int]bool{1: true}, wantRating: 3.00, wantCount: 2},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fx := newReviewFixture(t)

			for i, rating := range test.ratings {
				userID := uuid.New()
				session := fx.seedSession(userID, models.SessionStatusCompleted)
				public := !test.private[i]
				if _, err := fx.svc.CreateReview(context.Background(), userID, dtos.CreateReviewRequest{
					SessionID: session.ID.String(),
					Rating:    rating,
					IsPublic:  &public,
				}); err != nil {
					t.Fatalf("CreateReview(%d) error = %v", i, err)
				}
			}

			mentor, err := fx.mentors.FindByID(context.Background(), fx.mentorID)
			if err != nil {
				t.Fatalf("FindByID() error = %v", err)
			}
			if math.Abs(mentor.Rating-test.wantRating) > 1e-9 {
				t.Errorf("rating = %v, want %v", mentor.Rating, test.wantRating)
			}
			if mentor.ReviewCount != test.wantCount {
				t.Errorf("review count = %d, want %d", mentor.ReviewCount, test.wantCount)
			}
		})
	}
}

// N reviewers racing against one mentor must leave the aggregate exactly
// as if the reviews had arrived one by one.
func TestCreateReview_ConcurrentRecompute(t *testing.T) {
	fx := newReviewFixture(t)

	ratings := []int{5, 4, 3, 5, 4, 2, 5, 1}
	sessions := make([]*models.Session, len(ratings))
	for i := range ratings {
		sessions[i] = fx.seedSession(uuid.New(), models.SessionStatusCompleted)
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(ratings))
	for i := range ratings {
		wg.Add(1)
		go func(session *models.Session, rating int) {
			defer wg.Done()
			_, err := fx.svc.CreateReview(context.Background(), session.UserID, dtos.CreateReviewRequest{
				SessionID: session.ID.String(),
				Rating:    rating,
			})
			errs <- err
		}(sessions[i], ratings[i])
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("CreateReview() error = %v", err)
		}
	}

	mentor, err := fx.mentors.FindByID(context.Background(), fx.mentorID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if mentor.ReviewCount != len(ratings) {
		t.Errorf("review count = %d, want %d", mentor.ReviewCount, len(ratings))
	}
	// mean of 5,4,3,5,4,2,5,1 is 3.625, rounded to 3.63
	if math.Abs(mentor.Rating-3.63) > 1e-9 {
		t.Errorf("rating = %v, want 3.63", mentor.Rating)
	}
}

func TestListMentorReviews_PublicOnly(t *testing.T) {
	fx := newReviewFixture(t)

	public, private := true, false
	for _, visibility := range []*bool{&public, &private, &public} {
		userID := uuid.New()
		session := fx.seedSession(userID, models.SessionStatusCompleted)
		if _, err := fx.svc.CreateReview(context.Background(), userID, dtos.CreateReviewRequest{
			SessionID: session.ID.String(),
			Rating:    5,
			IsPublic:  visibility,
		}); err != nil {
			t.Fatalf("CreateReview() error = %v", err)
		}
	}

	list, err := fx.svc.ListMentorReviews(context.Background(), fx.mentorID, 1, 20)
	if err != nil {
		t.Fatalf("ListMentorReviews() error = %v", err)
	}
	if len(list.Reviews) != 2 {
		t.Errorf("public reviews = %d, want 2", len(list.Reviews))
	}
}

func isValidationErr(err error) bool {
	var ve *apperrors.ValidationError
	return errors.As(err, &ve)
}
