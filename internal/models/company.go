package models

import (
	"time"

	"github.com/google/uuid"
)

type Company struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Industry    string    `db:"industry"`
	Size        string    `db:"size"`
	Location    string    `db:"location"`
	Logo        string    `db:"logo"`
	Description string    `db:"description"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type JobPosting struct {
	ID        uuid.UUID `db:"id"`
	CompanyID uuid.UUID `db:"company_id"`

	Title          string   `db:"title"`
	Description    string   `db:"description"`
	Skills         []string `db:"skills"`
	Location       string   `db:"location"`
	EmploymentType string   `db:"employment_type"`
	SalaryMin      *float64 `db:"salary_min"`
	SalaryMax      *float64 `db:"salary_max"`
	IsActive       bool     `db:"is_active"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
