package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kuldeep27396/prime-backend/internal/apperrors"
	"github.com/kuldeep27396/prime-backend/internal/dtos"
	"github.com/kuldeep27396/prime-backend/internal/middlewares"
	"github.com/kuldeep27396/prime-backend/internal/models"
	"github.com/kuldeep27396/prime-backend/internal/repositories"
)

// UserHandler serves profile, skill, and analytics endpoints straight off
// the repositories; there is no business logic between them.
type UserHandler struct {
	users     *repositories.UserRepository
	skills    *repositories.SkillAssessmentRepository
	analytics *repositories.AnalyticsRepository
}

func NewUserHandler(
	users *repositories.UserRepository,
	skills *repositories.SkillAssessmentRepository,
	analytics *repositories.AnalyticsRepository,
) *UserHandler {
	return &UserHandler{users: users, skills: skills, analytics: analytics}
}

// GetUser handles GET /api/users/:id.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), id)
	if err != nil {
		dtos.FailFromError(c, err)
		return
	}
	dtos.OK(c, http.StatusOK, dtos.NewUserResponse(user))
}

// UpdateProfile handles PATCH /api/users/me/profile.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	callerID, _ := middlewares.CallerID(c)

	var req dtos.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), callerID, req.Name, req.Avatar)
	if err != nil {
		dtos.FailFromError(c, err)
		return
	}
	dtos.OK(c, http.StatusOK, dtos.NewUserResponse(user))
}

// RecordSkill handles POST /api/users/me/skills.
func (h *UserHandler) RecordSkill(c *gin.Context) {
	callerID, _ := middlewares.CallerID(c)

	var req dtos.SkillAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)
		return
	}

	assessment := &models.SkillAssessment{
		ID:     uuid.New(),
		UserID: callerID,
		Skill:  req.Skill,
		Score:  req.Score,
	}
	if req.SessionID != nil {
		sessionID, err := uuid.Parse(*req.SessionID)
		if err == nil {
			assessment.SessionID = &sessionID
		}
	}

	if err := h.skills.Create(c.Request.Context(), assessment); err != nil {
		dtos.FailFromError(c, err)
		return
	}
	dtos.OK(c, http.StatusCreated, dtos.NewSkillAssessmentResponse(assessment))
}

// ListSkills handles GET /api/users/me/skills.
func (h *UserHandler) ListSkills(c *gin.Context) {
	callerID, _ := middlewares.CallerID(c)

	assessments, err := h.skills.ListByUser(c.Request.Context(), callerID)
	if err != nil {
		dtos.FailFromError(c, err)
		return
	}

	out := make([]dtos.SkillAssessmentResponse, 0, len(assessments))
	for _, a := range assessments {
		out = append(out, dtos.NewSkillAssessmentResponse(a))
	}
	dtos.OK(c, http.StatusOK, out)
}

// GetAnalytics handles GET /api/users/:id/analytics. Users see their own
// dashboard; admins see anyone's.
func (h *UserHandler) GetAnalytics(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	callerID, _ := middlewares.CallerID(c)
	if callerID != id && middlewares.CallerRole(c) != models.UserRoleAdmin {
		dtos.FailFromError(c, apperrors.ErrForbidden)
		return
	}

	analytics, err := h.analytics.UserAnalytics(c.Request.Context(), id)
	if err != nil {
		dtos.FailFromError(c, err)
		return
	}

	best, err := h.skills.BestScoresByUser(c.Request.Context(), id)
	if err != nil {
		dtos.FailFromError(c, err)
		return
	}
	analytics.SkillScores = best

	dtos.OK(c, http.StatusOK, analytics)
}
