package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/kuldeep27396/prime-backend/internal/apperrors"
	"github.com/kuldeep27396/prime-backend/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user row.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	const query = `
	INSERT INTO users (id, email, name, role, password_hash, avatar, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.Name,
		user.Role,
		user.PasswordHash,
		user.Avatar,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if isPqError(err, pqUniqueViolation) {
		return apperrors.ErrEmailExists
	}
	return err
}

const userColumns = `id, email, name, role, password_hash, avatar, created_at, updated_at`

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Role,
		&user.PasswordHash,
		&user.Avatar,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID returns a user by primary key.
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

// FindByEmail returns a user by unique email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

// UpdateProfile patches mutable profile fields.
func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, name, avatar *string) (*models.User, error) {
	const query = `
	UPDATE users
	SET name = COALESCE($1, name),
	    avatar = COALESCE($2, avatar),
	    updated_at = NOW()
	WHERE id = $3
	RETURNING ` + userColumns

	var user models.User
	err := r.db.QueryRowContext(ctx, query, name, avatar, id).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Role,
		&user.PasswordHash,
		&user.Avatar,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// PromoteToMentor flips the user's role when a mentor profile is created.
func (r *UserRepository) PromoteToMentor(ctx context.Context, id uuid.UUID) error {
	const query = `UPDATE users SET role = 'mentor', updated_at = NOW() WHERE id = $1 AND role = 'candidate'`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
