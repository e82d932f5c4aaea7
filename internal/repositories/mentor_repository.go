package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/kuldeep27396/prime-backend/internal/apperrors"
	"github.com/kuldeep27396/prime-backend/internal/dtos"
	"github.com/kuldeep27396/prime-backend/internal/models"
)

type MentorRepository struct {
	db *sql.DB
}

func NewMentorRepository(db *sql.DB) *MentorRepository {
	return &MentorRepository{db: db}
}

const mentorColumns = `
	id, user_id, name, title, current_company, previous_companies, avatar, bio,
	specialties, skills, languages, experience, rating, review_count,
	hourly_rate, response_time, timezone, availability, is_active,
	created_at, updated_at`

func scanMentor(scanner interface{ Scan(...interface{}) error }) (*models.Mentor, error) {
	var m models.Mentor
	err := scanner.Scan(
		&m.ID,
		&m.UserID,
		&m.Name,
		&m.Title,
		&m.CurrentCompany,
		pq.Array(&m.PreviousCompanies),
		&m.Avatar,
		&m.Bio,
		pq.Array(&m.Specialties),
		pq.Array(&m.Skills),
		pq.Array(&m.Languages),
		&m.Experience,
		&m.Rating,
		&m.ReviewCount,
		&m.HourlyRate,
		&m.ResponseTime,
		&m.Timezone,
		&m.Availability,
		&m.IsActive,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrMentorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a mentor profile. One profile per user.
func (r *MentorRepository) Create(ctx context.Context, m *models.Mentor) error {
	const query = `
	INSERT INTO mentors (
		id, user_id, name, title, current_company, previous_companies, avatar, bio,
		specialties, skills, languages, experience, rating, review_count,
		hourly_rate, response_time, timezone, availability, is_active,
		created_at, updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 0, 0, $13, $14, $15, $16, $17, NOW(), NOW())
	RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		m.ID,
		m.UserID,
		m.Name,
		m.Title,
		m.CurrentCompany,
		pq.Array(m.PreviousCompanies),
		m.Avatar,
		m.Bio,
		pq.Array(m.Specialties),
		pq.Array(m.Skills),
		pq.Array(m.Languages),
		m.Experience,
		m.HourlyRate,
		m.ResponseTime,
		m.Timezone,
		m.Availability,
		m.IsActive,
	).Scan(&m.CreatedAt, &m.UpdatedAt)

	if isPqError(err, pqUniqueViolation) {
		return apperrors.ErrProfileExists
	}
	return err
}

// FindByID returns a mentor by primary key.
func (r *MentorRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Mentor, error) {
	const query = `SELECT` + mentorColumns + ` FROM mentors WHERE id = $1`
	return scanMentor(r.db.QueryRowContext(ctx, query, id))
}

// FindByUserID returns the mentor profile owned by a user.
func (r *MentorRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Mentor, error) {
	const query = `SELECT` + mentorColumns + ` FROM mentors WHERE user_id = $1`
	return scanMentor(r.db.QueryRowContext(ctx, query, userID))
}

// List returns active mentors matching the discovery filters, ordered by
// rating then review count, with the total match count for pagination.
func (r *MentorRepository) List(ctx context.Context, f dtos.MentorFilters) ([]*models.Mentor, int, error) {
	where := []string{"is_active = TRUE"}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	for _, skill := range f.Skills {
		where = append(where, fmt.Sprintf("%s = ANY(skills)", arg(skill)))
	}
	for _, lang := range f.Languages {
		where = append(where, fmt.Sprintf("%s = ANY(languages)", arg(lang)))
	}
	if len(f.Companies) > 0 {
		var companyConds []string
		for _, company := range f.Companies {
			p := arg("%" + company + "%")
			q := arg(company)
			companyConds = append(companyConds,
				fmt.Sprintf("current_company ILIKE %s", p),
				fmt.Sprintf("%s = ANY(previous_companies)", q))
		}
		where = append(where, "("+strings.Join(companyConds, " OR ")+")")
	}
	if f.RatingMin != nil {
		where = append(where, fmt.Sprintf("rating >= %s", arg(*f.RatingMin)))
	}
	if f.PriceMin != nil {
		where = append(where, fmt.Sprintf("hourly_rate >= %s", arg(*f.PriceMin)))
	}
	if f.PriceMax != nil {
		where = append(where, fmt.Sprintf("hourly_rate <= %s", arg(*f.PriceMax)))
	}
	if f.ExperienceMin != nil {
		where = append(where, fmt.Sprintf("experience >= %s", arg(*f.ExperienceMin)))
	}
	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		where = append(where, fmt.Sprintf(
			"(name ILIKE %[1]s OR title ILIKE %[1]s OR bio ILIKE %[1]s OR current_company ILIKE %[1]s)", p))
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM mentors WHERE " + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT" + mentorColumns + " FROM mentors WHERE " + whereClause +
		" ORDER BY rating DESC, review_count DESC" +
		fmt.Sprintf(" LIMIT %s OFFSET %s", arg(f.Limit), arg((f.Page-1)*f.Limit))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var mentors []*models.Mentor
	for rows.Next() {
		m, err := scanMentor(rows)
		if err != nil {
			return nil, 0, err
		}
		mentors = append(mentors, m)
	}
	return mentors, total, rows.Err()
}
