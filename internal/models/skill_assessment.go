package models

import (
	"time"

	"github.com/google/uuid"
)

type SkillAssessment struct {
	ID     uuid.UUID `db:"id"`
	UserID uuid.UUID `db:"user_id"`

	Skill string `db:"skill"`
	Score int    `db:"score"` // 0-100

	SessionID  *uuid.UUID `db:"session_id"` // optional originating session
	AssessedAt time.Time  `db:"assessed_at"`
}
