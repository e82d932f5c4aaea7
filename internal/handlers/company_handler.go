package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kuldeep27396/prime-backend/internal/apperrors"
	"github.com/kuldeep27396/prime-backend/internal/dtos"
	"github.com/kuldeep27396/prime-backend/internal/models"
	"github.com/kuldeep27396/prime-backend/internal/repositories"
)

// CompanyHandler serves the company and job-posting catalog straight off
// the repositories.
type CompanyHandler struct {
	companies *repositories.CompanyRepository
	jobs      *repositories.JobRepository
}

func NewCompanyHandler(companies *repositories.CompanyRepository, jobs *repositories.JobRepository) *CompanyHandler {
	return &CompanyHandler{companies: companies, jobs: jobs}
}

// CreateCompany handles POST /api/companies (admin).
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	var req dtos.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)
		return
	}

	company := &models.Company{
		ID:          uuid.New(),
		Name:        req.Name,
		Industry:    req.Industry,
		Size:        req.Size,
		Location:    req.Location,
		Logo:        req.Logo,
		Description: req.Description,
	}
	if err := h.companies.Create(c.Request.Context(), company); err != nil {
		dtos.FailFromError(c, err)
		return
	}
	dtos.OK(c, http.StatusCreated, dtos.NewCompanyResponse(company))
}

// GetCompany handles GET /api/companies/:id.
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	company, err := h.companies.GetByID(c.Request.Context(), id)
	if err != nil {
		dtos.FailFromError(c, err)
		return
	}
	dtos.OK(c, http.StatusOK, dtos.NewCompanyResponse(company))
}

// ListCompanies handles GET /api/companies.
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	var page struct {
		Page  int `form:"page,default=1" binding:"min=1"`
		Limit int `form:"limit,default=20" binding:"min=1,max=100"`
	}
	if err := c.ShouldBindQuery(&page); err != nil {
		bindFail(c, err)
		return
	}

	companies, total, err := h.companies.List(c.Request.Context(), page.Page, page.Limit)
	if err != nil {
		dtos.FailFromError(c, err)
		return
	}

	out := make([]dtos.CompanyResponse, 0, len(companies))
	for _, company := range companies {
		out = append(out, dtos.NewCompanyResponse(company))
	}
	dtos.OK(c, http.StatusOK, dtos.CompanyListResponse{
		Companies:  out,
		Pagination: dtos.NewPagination(page.Page, page.Limit, total),
	})
}

// CreateJob handles POST /api/jobs (admin).
func (h *CompanyHandler) CreateJob(c *gin.Context) {
	var req dtos.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)
		return
	}

	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		dtos.FailFromError(c, apperrors.Validation("companyId", "invalid company id"))
		return
	}
	if _, err := h.companies.GetByID(c.Request.Context(), companyID); err != nil {
		dtos.FailFromError(c, err)
		return
	}

	job := &models.JobPosting{
		ID:             uuid.New(),
		CompanyID:      companyID,
		Title:          req.Title,
		Description:    req.Description,
		Skills:         req.Skills,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		IsActive:       true,
	}
	if err := h.jobs.Create(c.Request.Context(), job); err != nil {
		dtos.FailFromError(c, err)
		return
	}
	dtos.OK(c, http.StatusCreated, dtos.NewJobResponse(job))
}

// GetJob handles GET /api/jobs/:id.
func (h *CompanyHandler) GetJob(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	job, err := h.jobs.GetByID(c.Request.Context(), id)
	if err != nil {
		dtos.FailFromError(c, err)
		return
	}
	dtos.OK(c, http.StatusOK, dtos.NewJobResponse(job))
}

// ListJobs handles GET /api/jobs.
func (h *CompanyHandler) ListJobs(c *gin.Context) {
	var f dtos.JobFilters
	if err := c.ShouldBindQuery(&f); err != nil {
		bindFail(c, err)
		return
	}
	f.Skills = csvQuery(c, "skills")

	jobs, total, err := h.jobs.List(c.Request.Context(), f)
	if err != nil {
		dtos.FailFromError(c, err)
		return
	}

	out := make([]dtos.JobResponse, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, dtos.NewJobResponse(job))
	}
	dtos.OK(c, http.StatusOK, dtos.JobListResponse{
		Jobs:       out,
		Pagination: dtos.NewPagination(f.Page, f.Limit, total),
	})
}

// UpdateJob handles PATCH /api/jobs/:id (admin).
func (h *CompanyHandler) UpdateJob(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req dtos.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)
		return
	}

	job, err := h.jobs.Update(c.Request.Context(), id, req)
	if err != nil {
		dtos.FailFromError(c, err)
		return
	}
	dtos.OK(c, http.StatusOK, dtos.NewJobResponse(job))
}
