package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/kuldeep27396/prime-backend/internal/models"
)

type CreatePaymentRequest struct {
	SessionID string `json:"sessionId" binding:"required,uuid"`
}

type PaymentResponse struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"sessionId"`
	OrderID   string    `json:"orderId"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewPaymentResponse(p *models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		SessionID: p.SessionID,
		OrderID:   p.OrderID,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
	}
}
