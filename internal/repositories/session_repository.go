package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kuldeep27396/prime-backend/internal/apperrors"
	"github.com/kuldeep27396/prime-backend/internal/dtos"
	"github.com/kuldeep27396/prime-backend/internal/models"
)

type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `
	id, user_id, mentor_id, session_type, scheduled_at, duration, meeting_type,
	meeting_link, status, record_session, special_requests, rating, feedback,
	cancellation_reason, recording_url, created_at, updated_at`

func scanSession(scanner interface{ Scan(...interface{}) error }) (*models.Session, error) {
	var s models.Session
	err := scanner.Scan(
		&s.ID,
		&s.UserID,
		&s.MentorID,
		&s.SessionType,
		&s.ScheduledAt,
		&s.Duration,
		&s.MeetingType,
		&s.MeetingLink,
		&s.Status,
		&s.RecordSession,
		&s.SpecialRequests,
		&s.Rating,
		&s.Feedback,
		&s.CancellationReason,
		&s.RecordingURL,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateWithConflictCheck runs the overlap check and the insert in one
// transaction. The mentor row is locked first so two concurrent bookings
// for the same mentor serialize; the schema's exclusion constraint is the
// backstop. A hit returns *apperrors.ConflictError naming the colliding
// session.
func (r *SessionRepository) CreateWithConflictCheck(ctx context.Context, session *models.Session) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const lockQuery = `SELECT id FROM mentors WHERE id = $1 FOR UPDATE`
	var mentorID uuid.UUID
	if err := tx.QueryRowContext(ctx, lockQuery, session.MentorID).Scan(&mentorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.ErrMentorNotFound
		}
		return err
	}

	// Half-open interval overlap: existing.start < proposed.end AND
	// proposed.start < existing.end.
	const conflictQuery = `
	SELECT id FROM sessions
	WHERE mentor_id = $1
	  AND status IN ('pending', 'confirmed')
	  AND scheduled_at < $3
	  AND $2 < scheduled_at + duration * INTERVAL '1 minute'
	LIMIT 1
	`
	var conflictID uuid.UUID
	err = tx.QueryRowContext(ctx, conflictQuery, session.MentorID, session.ScheduledAt, session.EndsAt()).Scan(&conflictID)
	if err == nil {
		return &apperrors.ConflictError{ConflictingSessionID: conflictID}
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	const insertQuery = `
	INSERT INTO sessions (
		id, user_id, mentor_id, session_type, scheduled_at, duration, meeting_type,
		meeting_link, status, record_session, special_requests, created_at, updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
	RETURNING created_at, updated_at
	`
	err = tx.QueryRowContext(
		ctx,
		insertQuery,
		session.ID,
		session.UserID,
		session.MentorID,
		session.SessionType,
		session.ScheduledAt,
		session.Duration,
		session.MeetingType,
		session.MeetingLink,
		session.Status,
		session.RecordSession,
		session.SpecialRequests,
	).Scan(&session.CreatedAt, &session.UpdatedAt)
	if isPqError(err, pqExclusionViolation) {
		// Constraint backstop fired; the colliding id is unknown here.
		return &apperrors.ConflictError{}
	}
	if err != nil {
		return err
	}

	return tx.Commit()
}

// GetByID returns a session by primary key.
func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	const query = `SELECT` + sessionColumns + ` FROM sessions WHERE id = $1`
	return scanSession(r.db.QueryRowContext(ctx, query, id))
}

// UpdateStatus transitions a session from an expected status. Zero rows
// means a concurrent request moved the session first; the caller re-reads
// and reports an invalid transition.
func (r *SessionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.SessionStatus, cancellationReason *string) (bool, error) {
	const query = `
	UPDATE sessions
	SET status = $1,
	    cancellation_reason = COALESCE($2, cancellation_reason),
	    updated_at = NOW()
	WHERE id = $3 AND status = $4
	`
	res, err := r.db.ExecContext(ctx, query, to, cancellationReason, id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// UpdateFeedback records the candidate's rating and feedback text.
func (r *SessionRepository) UpdateFeedback(ctx context.Context, id uuid.UUID, rating *int, feedback *string) error {
	const query = `
	UPDATE sessions
	SET rating = COALESCE($1, rating),
	    feedback = COALESCE($2, feedback),
	    updated_at = NOW()
	WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, rating, feedback, id)
	return err
}

// SessionWithMentorRow is a session joined with mentor display columns.
type SessionWithMentorRow struct {
	Session       models.Session
	MentorName    string
	MentorAvatar  string
	MentorCompany string
}

// ListByUser returns the user's sessions with mentor display data, newest
// scheduled first.
func (r *SessionRepository) ListByUser(ctx context.Context, userID uuid.UUID, f dtos.SessionFilters) ([]SessionWithMentorRow, int, error) {
	where := "s.user_id = $1"
	args := []interface{}{userID}

	switch f.Status {
	case "":
	case "upcoming":
		where += " AND s.status IN ('pending', 'confirmed')"
	default:
		args = append(args, f.Status)
		where += fmt.Sprintf(" AND s.status = $%d", len(args))
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM sessions s WHERE " + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, f.Limit, (f.Page-1)*f.Limit)
	query := `
	SELECT s.id, s.user_id, s.mentor_id, s.session_type, s.scheduled_at, s.duration,
	       s.meeting_type, s.meeting_link, s.status, s.record_session, s.special_requests,
	       s.rating, s.feedback, s.cancellation_reason, s.recording_url, s.created_at, s.updated_at,
	       m.name, m.avatar, m.current_company
	FROM sessions s
	JOIN mentors m ON m.id = s.mentor_id
	WHERE ` + where + fmt.Sprintf(`
	ORDER BY s.scheduled_at DESC
	LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []SessionWithMentorRow
	for rows.Next() {
		var row SessionWithMentorRow
		s := &row.Session
		err := rows.Scan(
			&s.ID, &s.UserID, &s.MentorID, &s.SessionType, &s.ScheduledAt, &s.Duration,
			&s.MeetingType, &s.MeetingLink, &s.Status, &s.RecordSession, &s.SpecialRequests,
			&s.Rating, &s.Feedback, &s.CancellationReason, &s.RecordingURL, &s.CreatedAt, &s.UpdatedAt,
			&row.MentorName, &row.MentorAvatar, &row.MentorCompany,
		)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, row)
	}
	return out, total, rows.Err()
}

// UserStats aggregates a user's booking history for list responses.
func (r *SessionRepository) UserStats(ctx context.Context, userID uuid.UUID) (*dtos.SessionStats, error) {
	const query = `
	SELECT COUNT(*),
	       COUNT(*) FILTER (WHERE status = 'completed'),
	       COUNT(*) FILTER (WHERE status IN ('pending', 'confirmed')),
	       COALESCE(AVG(rating) FILTER (WHERE rating IS NOT NULL), 0),
	       COALESCE(SUM(duration) FILTER (WHERE status = 'completed'), 0)
	FROM sessions
	WHERE user_id = $1
	`
	var stats dtos.SessionStats
	var totalMinutes int
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&stats.TotalSessions,
		&stats.CompletedSessions,
		&stats.UpcomingSessions,
		&stats.AverageRating,
		&totalMinutes,
	)
	if err != nil {
		return nil, err
	}
	stats.TotalHours = totalMinutes / 60
	return &stats, nil
}
