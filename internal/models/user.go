package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleCandidate UserRole = "candidate"
	UserRoleMentor    UserRole = "mentor"
	UserRoleAdmin     UserRole = "admin"
)

type User struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	Role         UserRole  `db:"role"`
	PasswordHash string    `db:"password_hash"`
	Avatar       string    `db:"avatar"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
