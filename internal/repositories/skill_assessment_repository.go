package repositories

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/kuldeep27396/prime-backend/internal/models"
)

type SkillAssessmentRepository struct {
	db *sql.DB
}

func NewSkillAssessmentRepository(db *sql.DB) *SkillAssessmentRepository {
	return &SkillAssessmentRepository{db: db}
}

// Create inserts a skill assessment record.
func (r *SkillAssessmentRepository) Create(ctx context.Context, a *models.SkillAssessment) error {
	const query = `
	INSERT INTO skill_assessments (id, user_id, skill, score, session_id, assessed_at)
	VALUES ($1, $2, $3, $4, $5, NOW())
	RETURNING assessed_at
	`
	return r.db.QueryRowContext(
		ctx,
		query,
		a.ID,
		a.UserID,
		a.Skill,
		a.Score,
		a.SessionID,
	).Scan(&a.AssessedAt)
}

// ListByUser returns a user's assessments, newest first.
func (r *SkillAssessmentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.SkillAssessment, error) {
	const query = `
	SELECT id, user_id, skill, score, session_id, assessed_at
	FROM skill_assessments
	WHERE user_id = $1
	ORDER BY assessed_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.SkillAssessment
	for rows.Next() {
		var a models.SkillAssessment
		if err := rows.Scan(&a.ID, &a.UserID, &a.Skill, &a.Score, &a.SessionID, &a.AssessedAt); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// BestScoresByUser returns the user's best score per skill.
func (r *SkillAssessmentRepository) BestScoresByUser(ctx context.Context, userID uuid.UUID) (map[string]int, error) {
	const query = `
	SELECT skill, MAX(score)
	FROM skill_assessments
	WHERE user_id = $1
	GROUP BY skill
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make(map[string]int)
	for rows.Next() {
		var skill string
		var score int
		if err := rows.Scan(&skill, &score); err != nil {
			return nil, err
		}
		scores[skill] = score
	}
	return scores, rows.Err()
}
