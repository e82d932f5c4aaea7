package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is created once per (session, user) after the session completes.
// Private reviews still count toward the mentor's aggregate rating; IsPublic
// only gates comment visibility in listings.
type Review struct {
	ID        uuid.UUID `db:"id"`
	SessionID uuid.UUID `db:"session_id"`
	MentorID  uuid.UUID `db:"mentor_id"`
	UserID    uuid.UUID `db:"user_id"`

	Rating   int    `db:"rating"` // 1-5
	Comment  string `db:"comment"`
	IsPublic bool   `db:"is_public"`

	CreatedAt time.Time `db:"created_at"`
}
