package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kuldeep27396/prime-backend/internal/dtos"
	"github.com/kuldeep27396/prime-backend/internal/middlewares"
	"github.com/kuldeep27396/prime-backend/internal/services"
)

type ReviewHandler struct {
	reviews *services.ReviewService
}

func NewReviewHandler(reviews *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// CreateReview handles POST /api/reviews.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	callerID, _ := middlewares.CallerID(c)

	var req dtos.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)
		return
	}

	review, err := h.reviews.CreateReview(c.Request.Context(), callerID, req)
	if err != nil {
		dtos.FailFromError(c, err)
		return
	}
	dtos.OK(c, http.StatusCreated, dtos.NewReviewResponse(review))
}
