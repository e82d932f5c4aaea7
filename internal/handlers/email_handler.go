package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kuldeep27396/prime-backend/internal/apperrors"
	"github.com/kuldeep27396/prime-backend/internal/clients"
	"github.com/kuldeep27396/prime-backend/internal/dtos"
)

// EmailHandler relays one-off messages to the transactional provider.
type EmailHandler struct {
	email clients.EmailSender
}

func NewEmailHandler(email clients.EmailSender) *EmailHandler {
	return &EmailHandler{email: email}
}

// SendEmail handles POST /api/send-email. Unlike the lifecycle
// notifications this relay is synchronous: the caller wants to know the
// provider accepted the message.
func (h *EmailHandler) SendEmail(c *gin.Context) {
	var req dtos.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFail(c, err)
		return
	}

	if !h.email.IsConfigured() {
		dtos.FailFromError(c, apperrors.External("email", errNotConfigured))
		return
	}

	if err := h.email.Send(c.Request.Context(), req.To, req.ToName, req.Subject, req.HTML); err != nil {
		dtos.FailFromError(c, apperrors.External("email", err))
		return
	}
	dtos.OK(c, http.StatusOK, dtos.SendEmailResponse{Sent: true})
}
