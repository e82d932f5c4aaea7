package repositories

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/kuldeep27396/prime-backend/internal/dtos"
)

// AnalyticsRepository runs the aggregate reads behind the analytics
// endpoints. There is no separate pipeline; everything is plain SQL over
// the operational tables.
type AnalyticsRepository struct {
	db *sql.DB
}

func NewAnalyticsRepository(db *sql.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// UserAnalytics aggregates a user's sessions and review activity into one
// dashboard payload. Skill scores are filled in by the handler from the
// skill assessment repository.
func (r *AnalyticsRepository) UserAnalytics(ctx context.Context, userID uuid.UUID) (*dtos.UserAnalyticsResponse, error) {
	const sessionQuery = `
	SELECT COUNT(*),
	       COUNT(*) FILTER (WHERE status = 'completed'),
	       COUNT(*) FILTER (WHERE status IN ('pending', 'confirmed')),
	       COUNT(*) FILTER (WHERE status = 'cancelled'),
	       COALESCE(SUM(duration) FILTER (WHERE status = 'completed'), 0)
	FROM sessions
	WHERE user_id = $1
	`

	out := &dtos.UserAnalyticsResponse{SkillScores: map[string]int{}}
	var totalMinutes int
	err := r.db.QueryRowContext(ctx, sessionQuery, userID).Scan(
		&out.TotalSessions,
		&out.CompletedSessions,
		&out.UpcomingSessions,
		&out.CancelledSessions,
		&totalMinutes,
	)
	if err != nil {
		return nil, err
	}
	out.TotalHours = totalMinutes / 60

	const ratingQuery = `SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE user_id = $1`
	if err := r.db.QueryRowContext(ctx, ratingQuery, userID).Scan(&out.AverageRatingGiven); err != nil {
		return nil, err
	}

	return out, nil
}
