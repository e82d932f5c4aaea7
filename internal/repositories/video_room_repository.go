package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/kuldeep27396/prime-backend/internal/apperrors"
	"github.com/kuldeep27396/prime-backend/internal/models"
)

type VideoRoomRepository struct {
	db *sql.DB
}

func NewVideoRoomRepository(db *sql.DB) *VideoRoomRepository {
	return &VideoRoomRepository{db: db}
}

const roomColumns = `
	id, session_id, room_id, room_url, participant_token, mentor_token, status,
	recording_url, actual_duration, ended_at, created_at, updated_at`

func scanRoom(scanner interface{ Scan(...interface{}) error }) (*models.VideoRoom, error) {
	var room models.VideoRoom
	err := scanner.Scan(
		&room.ID,
		&room.SessionID,
		&room.RoomID,
		&room.RoomURL,
		&room.ParticipantToken,
		&room.MentorToken,
		&room.Status,
		&room.RecordingURL,
		&room.ActualDuration,
		&room.EndedAt,
		&room.CreatedAt,
		&room.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// Create inserts a room mapping. The partial unique index on
// (session_id) WHERE status = 'active' enforces one active room per
// session; a violation surfaces as ErrRoomActiveExists.
func (r *VideoRoomRepository) Create(ctx context.Context, room *models.VideoRoom) error {
	const query = `
	INSERT INTO video_rooms (
		id, session_id, room_id, room_url, participant_token, mentor_token, status,
		created_at, updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		room.ID,
		room.SessionID,
		room.RoomID,
		room.RoomURL,
		room.ParticipantToken,
		room.MentorToken,
		room.Status,
	).Scan(&room.CreatedAt, &room.UpdatedAt)

	if isPqError(err, pqUniqueViolation) {
		return apperrors.ErrRoomActiveExists
	}
	return err
}

// GetByID returns a room by primary key.
func (r *VideoRoomRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.VideoRoom, error) {
	const query = `SELECT` + roomColumns + ` FROM video_rooms WHERE id = $1`
	return scanRoom(r.db.QueryRowContext(ctx, query, id))
}

// GetActiveBySessionID returns the session's active room, if any.
func (r *VideoRoomRepository) GetActiveBySessionID(ctx context.Context, sessionID uuid.UUID) (*models.VideoRoom, error) {
	const query = `SELECT` + roomColumns + ` FROM video_rooms WHERE session_id = $1 AND status = 'active'`
	return scanRoom(r.db.QueryRowContext(ctx, query, sessionID))
}

// End marks a room ended and records its actual duration. Idempotent: an
// already-ended room matches zero rows and reports ended=false with no
// error, so a second end is a no-op success.
func (r *VideoRoomRepository) End(ctx context.Context, id uuid.UUID, actualDuration int) (bool, error) {
	const query = `
	UPDATE video_rooms
	SET status = 'ended', actual_duration = $1, ended_at = NOW(), updated_at = NOW()
	WHERE id = $2 AND status = 'active'
	`
	res, err := r.db.ExecContext(ctx, query, actualDuration, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// ListStaleActive returns active rooms whose session window elapsed more
// than grace ago. Used by the background sweeper.
func (r *VideoRoomRepository) ListStaleActive(ctx context.Context, grace time.Duration) ([]*models.VideoRoom, error) {
	const query = `
	SELECT v.id, v.session_id, v.room_id, v.room_url, v.participant_token, v.mentor_token,
	       v.status, v.recording_url, v.actual_duration, v.ended_at, v.created_at, v.updated_at
	FROM video_rooms v
	JOIN sessions s ON s.id = v.session_id
	WHERE v.status = 'active'
	  AND s.scheduled_at + s.duration * INTERVAL '1 minute' < NOW() - make_interval(secs => $1)
	`
	rows, err := r.db.QueryContext(ctx, query, grace.Seconds())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.VideoRoom
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	return out, rows.Err()
}
