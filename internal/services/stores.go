package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kuldeep27396/prime-backend/internal/dtos"
	"github.com/kuldeep27396/prime-backend/internal/models"
	"github.com/kuldeep27396/prime-backend/internal/repositories"
)

// Store interfaces consumed by the services. The concrete repositories
// satisfy them; tests substitute in-memory fakes.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	PromoteToMentor(ctx context.Context, id uuid.UUID) error
}

type MentorStore interface {
	Create(ctx context.Context, m *models.Mentor) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Mentor, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Mentor, error)
	List(ctx context.Context, f dtos.MentorFilters) ([]*models.Mentor, int, error)
}

type SessionStore interface {
	CreateWithConflictCheck(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.SessionStatus, cancellationReason *string) (bool, error)
	UpdateFeedback(ctx context.Context, id uuid.UUID, rating *int, feedback *string) error
	ListByUser(ctx context.Context, userID uuid.UUID, f dtos.SessionFilters) ([]repositories.SessionWithMentorRow, int, error)
	UserStats(ctx context.Context, userID uuid.UUID) (*dtos.SessionStats, error)
}

type RoomStore interface {
	Create(ctx context.Context, room *models.VideoRoom) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.VideoRoom, error)
	GetActiveBySessionID(ctx context.Context, sessionID uuid.UUID) (*models.VideoRoom, error)
	End(ctx context.Context, id uuid.UUID, actualDuration int) (bool, error)
	ListStaleActive(ctx context.Context, grace time.Duration) ([]*models.VideoRoom, error)
}

type ReviewStore interface {
	CreateAndRecalculate(ctx context.Context, review *models.Review) (newRating float64, reviewCount int, err error)
	ListPublicByMentor(ctx context.Context, mentorID uuid.UUID, page, limit int) ([]*models.Review, int, error)
}

type PaymentStore interface {
	Create(ctx context.Context, p *models.Payment) error
	GetByOrderID(ctx context.Context, orderID string) (*models.Payment, error)
	SetStatus(ctx context.Context, orderID string, status models.PaymentStatus) error
}
