package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/kuldeep27396/prime-backend/internal/models"
)

type CreateCompanyRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Industry    string `json:"industry" binding:"max=255"`
	Size        string `json:"size" binding:"max=50"`
	Location    string `json:"location" binding:"max=255"`
	Logo        string `json:"logo" binding:"omitempty,url"`
	Description string `json:"description" binding:"max=5000"`
}

type CompanyResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Industry    string    `json:"industry,omitempty"`
	Size        string    `json:"size,omitempty"`
	Location    string    `json:"location,omitempty"`
	Logo        string    `json:"logo,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewCompanyResponse(c *models.Company) CompanyResponse {
	return CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		Industry:    c.Industry,
		Size:        c.Size,
		Location:    c.Location,
		Logo:        c.Logo,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type CompanyListResponse struct {
	Companies  []CompanyResponse `json:"companies"`
	Pagination Pagination        `json:"pagination"`
}

type CreateJobRequest struct {
	CompanyID      string   `json:"companyId" binding:"required,uuid"`
	Title          string   `json:"title" binding:"required,max=255"`
	Description    string   `json:"description" binding:"max=10000"`
	Skills         []string `json:"skills"`
	Location       string   `json:"location" binding:"max=255"`
	EmploymentType string   `json:"employmentType" binding:"omitempty,oneof=full-time part-time contract internship"`
	SalaryMin      *float64 `json:"salaryMin" binding:"omitempty,min=0"`
	SalaryMax      *float64 `json:"salaryMax" binding:"omitempty,min=0"`
}

type UpdateJobRequest struct {
	Title          *string  `json:"title" binding:"omitempty,max=255"`
	Description    *string  `json:"description" binding:"omitempty,max=10000"`
	Skills         []string `json:"skills"`
	Location       *string  `json:"location" binding:"omitempty,max=255"`
	EmploymentType *string  `json:"employmentType" binding:"omitempty,oneof=full-time part-time contract internship"`
	SalaryMin      *float64 `json:"salaryMin" binding:"omitempty,min=0"`
	SalaryMax      *float64 `json:"salaryMax" binding:"omitempty,min=0"`
	IsActive       *bool    `json:"isActive"`
}

type JobFilters struct {
	CompanyID  string   `form:"company_id" binding:"omitempty,uuid"`
	Skills     []string `form:"-"`
	ActiveOnly bool     `form:"active_only,default=true"`
	Page       int      `form:"page,default=1" binding:"min=1"`
	Limit      int      `form:"limit,default=20" binding:"min=1,max=100"`
}

type JobResponse struct {
	ID             uuid.UUID `json:"id"`
	CompanyID      uuid.UUID `json:"companyId"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Skills         []string  `json:"skills"`
	Location       string    `json:"location,omitempty"`
	EmploymentType string    `json:"employmentType,omitempty"`
	SalaryMin      *float64  `json:"salaryMin,omitempty"`
	SalaryMax      *float64  `json:"salaryMax,omitempty"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func NewJobResponse(j *models.JobPosting) JobResponse {
	return JobResponse{
		ID:             j.ID,
		CompanyID:      j.CompanyID,
		Title:          j.Title,
		Description:    j.Description,
		Skills:         orEmpty(j.Skills),
		Location:       j.Location,
		EmploymentType: j.EmploymentType,
		SalaryMin:      j.SalaryMin,
		SalaryMax:      j.SalaryMax,
		IsActive:       j.IsActive,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
	}
}

type JobListResponse struct {
	Jobs       []JobResponse `json:"jobs"`
	Pagination Pagination    `json:"pagination"`
}
