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

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `
	id, company_id, title, description, skills, location, employment_type,
	salary_min, salary_max, is_active, created_at, updated_at`

func scanJob(scanner interface{ Scan(...interface{}) error }) (*models.JobPosting, error) {
	var j models.JobPosting
	err := scanner.Scan(
		&j.ID,
		&j.CompanyID,
		&j.Title,
		&j.Description,
		pq.Array(&j.Skills),
		&j.Location,
		&j.EmploymentType,
		&j.SalaryMin,
		&j.SalaryMax,
		&j.IsActive,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// Create inserts a job posting.
func (r *JobRepository) Create(ctx context.Context, j *models.JobPosting) error {
	const query = `
	INSERT INTO job_postings (
		id, company_id, title, description, skills, location, employment_type,
		salary_min, salary_max, is_active, created_at, updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx,
		query,
		j.ID,
		j.CompanyID,
		j.Title,
		j.Description,
		pq.Array(j.Skills),
		j.Location,
		j.EmploymentType,
		j.SalaryMin,
		j.SalaryMax,
		j.IsActive,
	).Scan(&j.CreatedAt, &j.UpdatedAt)

	if isPqError(err, pqForeignKeyViolation) {
		return apperrors.ErrCompanyNotFound
	}
	return err
}

// GetByID returns a job posting by primary key.
func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.JobPosting, error) {
	const query = `SELECT` + jobColumns + ` FROM job_postings WHERE id = $1`
	return scanJob(r.db.QueryRowContext(ctx, query, id))
}

// Update patches a job posting. Nil fields are left untouched; a non-nil
// Skills slice replaces the stored array.
func (r *JobRepository) Update(ctx context.Context, id uuid.UUID, patch dtos.UpdateJobRequest) (*models.JobPosting, error) {
	var skills interface{}
	if patch.Skills != nil {
		skills = pq.Array(patch.Skills)
	}

	const query = `
	UPDATE job_postings
	SET title = COALESCE($1, title),
	    description = COALESCE($2, description),
	    skills = COALESCE($3, skills),
	    location = COALESCE($4, location),
	    employment_type = COALESCE($5, employment_type),
	    salary_min = COALESCE($6, salary_min),
	    salary_max = COALESCE($7, salary_max),
	    is_active = COALESCE($8, is_active),
	    updated_at = NOW()
	WHERE id = $9
	RETURNING` + jobColumns

	return scanJob(r.db.QueryRowContext(
		ctx,
		query,
		patch.Title,
		patch.Description,
		skills,
		patch.Location,
		patch.EmploymentType,
		patch.SalaryMin,
		patch.SalaryMax,
		patch.IsActive,
		id,
	))
}

// List returns job postings matching the filters.
func (r *JobRepository) List(ctx context.Context, f dtos.JobFilters) ([]*models.JobPosting, int, error) {
	where := []string{"TRUE"}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.ActiveOnly {
		where = append(where, "is_active = TRUE")
	}
	if f.CompanyID != "" {
		where = append(where, fmt.Sprintf("company_id = %s", arg(f.CompanyID)))
	}
	for _, skill := range f.Skills {
		where = append(where, fmt.Sprintf("%s = ANY(skills)", arg(skill)))
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM job_postings WHERE " + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT" + jobColumns + " FROM job_postings WHERE " + whereClause +
		" ORDER BY created_at DESC" +
		fmt.Sprintf(" LIMIT %s OFFSET %s", arg(f.Limit), arg((f.Page-1)*f.Limit))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []*models.JobPosting
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, j)
	}
	return jobs, total, rows.Err()
}
