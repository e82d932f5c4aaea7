package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/kuldeep27396/prime-backend/internal/apperrors"
	"github.com/kuldeep27396/prime-backend/internal/models"
)

type CompanyRepository struct {
	db *sql.DB
}

func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

const companyColumns = `id, name, industry, size, location, logo, description, created_at, updated_at`

func scanCompany(scanner interface{ Scan(...interface{}) error }) (*models.Company, error) {
	var c models.Company
	err := scanner.Scan(
		&c.ID,
		&c.Name,
		&c.Industry,
		&c.Size,
		&c.Location,
		&c.Logo,
		&c.Description,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrCompanyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a company. Names are unique.
func (r *CompanyRepository) Create(ctx context.Context, c *models.Company) error {
	const query = `
	INSERT INTO companies (id, name, industry, size, location, logo, description, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx,
		query,
		c.ID,
		c.Name,
		c.Industry,
		c.Size,
		c.Location,
		c.Logo,
		c.Description,
	).Scan(&c.CreatedAt, &c.UpdatedAt)

	if isPqError(err, pqUniqueViolation) {
		return apperrors.Validation("name", "company already exists")
	}
	return err
}

// GetByID returns a company by primary key.
func (r *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	const query = `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	return scanCompany(r.db.QueryRowContext(ctx, query, id))
}

// List returns companies alphabetically with the total count.
func (r *CompanyRepository) List(ctx context.Context, page, limit int) ([]*models.Company, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM companies`).Scan(&total); err != nil {
		return nil, 0, err
	}

	const query = `SELECT ` + companyColumns + ` FROM companies ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var companies []*models.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, 0, err
		}
		companies = append(companies, c)
	}
	return companies, total, rows.Err()
}
