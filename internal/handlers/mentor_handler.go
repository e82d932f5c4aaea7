package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kuldeep27396/prime-backend/internal/dtos"
	"github.com/kuldeep27396/prime-backend/internal/middlewares"
	"github.com/kuldeep27396/prime-backend/internal/services"
)

type MentorHandler struct {
	mentors *services.MentorService
	reviews *services.ReviewService
}

func NewMentorHandler(mentors *services.MentorService, reviews *services.ReviewService) *MentorHandler {
	return &MentorHandler{mentors: mentors, reviews: reviews}
}

// CreateProfile handles POST /api/mentor/profile.
func (h *MentorHandler) CreateProfile(c *gin.Context) {
	callerID, _ := middlewares.CallerID(c)

	var req dtos.CreateMentorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)
		return
	}

	mentor, err := h.mentors.CreateProfile(c.Request.Context(), callerID, req)
	if err != nil {
		dtos.FailFromError(c, err)
		return
	}
	dtos.OK(c, http.StatusCreated, dtos.NewMentorResponse(mentor))
}

// GetMentor handles GET /api/mentors/:id.
func (h *MentorHandler) GetMentor(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	mentor, err := h.mentors.GetMentor(c.Request.Context(), id)
	if err != nil {
		dtos.FailFromError(c, err)
		return
	}
	dtos.OK(c, http.StatusOK, dtos.NewMentorResponse(mentor))
}

// ListMentors handles GET /api/mentors with discovery filters.
func (h *MentorHandler) ListMentors(c *gin.Context) {
	var f dtos.MentorFilters
	if err := c.ShouldBindQuery(&f); err != nil {
		bindFail(c, err)
		return
	}
	f.Skills = csvQuery(c, "skills")
	f.Companies = csvQuery(c, "companies")
	f.Languages = csvQuery(c, "languages")

	resp, err := h.mentors.ListMentors(c.Request.Context(), f)
	if err != nil {
		dtos.FailFromError(c, err)
		return
	}
	dtos.OK(c, http.StatusOK, resp)
}

// ListReviews handles GET /api/mentors/:id/reviews.
func (h *MentorHandler) ListReviews(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var page struct {
		Page  int `form:"page,default=1" binding:"min=1"`
		Limit int `form:"limit,default=20" binding:"min=1,max=100"`
	}
	if err := c.ShouldBindQuery(&page); err != nil {
		bindFail(c, err)
		return
	}

	resp, err := h.reviews.ListMentorReviews(c.Request.Context(), id, page.Page, page.Limit)
	if err != nil {
		dtos.FailFromError(c, err)
		return
	}
	dtos.OK(c, http.StatusOK, resp)
}
