package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/kuldeep27396/prime-backend/internal/apperrors"
	"github.com/kuldeep27396/prime-backend/internal/models"
)

type ReviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// CreateAndRecalculate inserts a review and recomputes the mentor's derived
// rating and review count in the same transaction, with the mentor row
// locked so concurrent inserts for the same mentor cannot lose updates.
// Private reviews count toward the aggregate.
func (r *ReviewRepository) CreateAndRecalculate(ctx context.Context, review *models.Review) (newRating float64, reviewCount int, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, err
	}
	defer tx.Rollback()

	const lockQuery = `SELECT id FROM mentors WHERE id = $1 FOR UPDATE`
	var mentorID uuid.UUID
	if err := tx.QueryRowContext(ctx, lockQuery, review.MentorID).Scan(&mentorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, apperrors.ErrMentorNotFound
		}
		return 0, 0, err
	}

	const insertQuery = `
	INSERT INTO reviews (id, session_id, mentor_id, user_id, rating, comment, is_public, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	RETURNING created_at
	`
	err = tx.QueryRowContext(
		ctx,
		insertQuery,
		review.ID,
		review.SessionID,
		review.MentorID,
		review.UserID,
		review.Rating,
		review.Comment,
		review.IsPublic,
	).Scan(&review.CreatedAt)
	if isPqError(err, pqUniqueViolation) {
		return 0, 0, apperrors.ErrReviewExists
	}
	if err != nil {
		return 0, 0, err
	}

	const recalcQuery = `
	UPDATE mentors
	SET rating = sub.avg_rating,
	    review_count = sub.cnt,
	    updated_at = NOW()
	FROM (
		SELECT ROUND(AVG(rating)::numeric, 2) AS avg_rating, COUNT(*) AS cnt
		FROM reviews
		WHERE mentor_id = $1
	) sub
	WHERE mentors.id = $1
	RETURNING mentors.rating, mentors.review_count
	`
	if err := tx.QueryRowContext(ctx, recalcQuery, review.MentorID).Scan(&newRating, &reviewCount); err != nil {
		return 0, 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, err
	}
	return newRating, reviewCount, nil
}

// ListPublicByMentor returns a mentor's public reviews, newest first.
func (r *ReviewRepository) ListPublicByMentor(ctx context.Context, mentorID uuid.UUID, page, limit int) ([]*models.Review, int, error) {
	var total int
	const countQuery = `SELECT COUNT(*) FROM reviews WHERE mentor_id = $1 AND is_public = TRUE`
	if err := r.db.QueryRowContext(ctx, countQuery, mentorID).Scan(&total); err != nil {
		return nil, 0, err
	}

	const query = `
	SELECT id, session_id, mentor_id, user_id, rating, comment, is_public, created_at
	FROM reviews
	WHERE mentor_id = $1 AND is_public = TRUE
	ORDER BY created_at DESC
	LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, mentorID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		var review models.Review
		err := rows.Scan(
			&review.ID,
			&review.SessionID,
			&review.MentorID,
			&review.UserID,
			&review.Rating,
			&review.Comment,
			&review.IsPublic,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, &review)
	}
	return reviews, total, rows.Err()
}
