package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kuldeep27396/prime-backend/internal/apperrors"
	"github.com/kuldeep27396/prime-backend/internal/dtos"
	"github.com/kuldeep27396/prime-backend/internal/middlewares"
	"github.com/kuldeep27396/prime-backend/internal/services"
)

type PaymentHandler struct {
	payments *services.PaymentService
}

func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// CreatePayment handles POST /api/payments.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	callerID, _ := middlewares.CallerID(c)

	var req dtos.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)
		return
	}

	payment, err := h.payments.CreateOrder(c.Request.Context(), callerID, req)
	if err != nil {
		dtos.FailFromError(c, err)
		return
	}
	dtos.OK(c, http.StatusCreated, dtos.NewPaymentResponse(payment))
}

// RazorpayWebhook handles POST /api/webhooks/razorpay. The raw body is
// needed for signature verification, so no binding here.
func (h *PaymentHandler) RazorpayWebhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		dtos.Fail(c, http.StatusBadRequest, apperrors.CodeValidation, "unreadable body", nil)
		return
	}

	signature := c.GetHeader("X-Razorpay-Signature")
	if err := h.payments.HandleWebhook(c.Request.Context(), body, signature); err != nil {
		dtos.FailFromError(c, err)
		return
	}
	dtos.OK(c, http.StatusOK, gin.H{"received": true})
}
