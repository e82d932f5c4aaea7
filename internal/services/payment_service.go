package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
	rzputils "github.com/razorpay/razorpay-go/utils"
	"github.com/rs/zerolog/log"

	"github.com/kuldeep27396/prime-backend/internal/apperrors"
	"github.com/kuldeep27396/prime-backend/internal/dtos"
	"github.com/kuldeep27396/prime-backend/internal/models"
)

// PaymentService creates Razorpay orders for sessions and applies webhook
// outcomes. Payment state never drives the session state machine:
// confirmation remains an explicit mentor or admin action.
type PaymentService struct {
	payments      PaymentStore
	sessions      SessionStore
	mentors       MentorStore
	client        *razorpay.Client
	webhookSecret string
}

func NewPaymentService(payments PaymentStore, sessions SessionStore, mentors MentorStore, keyID, keySecret, webhookSecret string) *PaymentService {
	var client *razorpay.Client
	if keyID != "" && keySecret != "" {
		client = razorpay.NewClient(keyID, keySecret)
	}
	return &PaymentService{
		payments:      payments,
		sessions:      sessions,
		mentors:       mentors,
		client:        client,
		webhookSecret: webhookSecret,
	}
}

// CreateOrder mints a provider order for a pending or confirmed session
// owned by the caller. The amount is the mentor's hourly rate prorated to
// the booked duration, in the smallest currency unit.
func (s *PaymentService) CreateOrder(ctx context.Context, userID uuid.UUID, req dtos.CreatePaymentRequest) (*models.Payment, error) {
	if s.client == nil {
		return nil, apperrors.External("payment", fmt.Errorf("provider not configured"))
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return nil, apperrors.Validation("sessionId", "invalid session id")
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	if session.Status == models.SessionStatusCancelled || session.Status == models.SessionStatusCompleted {
		return nil, apperrors.Validation("sessionId", "session is no longer payable")
	}

	mentor, err := s.mentors.FindByID(ctx, session.MentorID)
	if err != nil {
		return nil, err
	}

	amount := int64(mentor.HourlyRate * float64(session.Duration) / 60 * 100)
	if amount <= 0 {
		return nil, apperrors.Validation("sessionId", "session has no payable amount")
	}

	order, err := s.client.Order.Create(map[string]interface{}{
		"amount":   amount,
		"currency": "INR",
		"receipt":  session.ID.String(),
	}, nil)
	if err != nil {
		return nil, apperrors.External("payment", err)
	}

	orderID, _ := order["id"].(string)
	if orderID == "" {
		return nil, apperrors.External("payment", fmt.Errorf("order response missing id"))
	}

	payment := &models.Payment{
		ID:        uuid.New(),
		SessionID: session.ID,
		OrderID:   orderID,
		Amount:    amount,
		Currency:  "INR",
		Status:    models.PaymentStatusCreated,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	return payment, nil
}

type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// HandleWebhook verifies the provider signature and applies the event to
// the matching payment. Events for unknown orders and event types we do
// not track are acknowledged and dropped.
func (s *PaymentService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	if !rzputils.VerifyWebhookSignature(string(body), signature, s.webhookSecret) {
		return apperrors.ErrUnauthorized
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return apperrors.Validation("body", "malformed webhook payload")
	}

	var status models.PaymentStatus
	switch event.Event {
	case "payment.captured":
		status = models.PaymentStatusCaptured
	case "payment.failed":
		status = models.PaymentStatusFailed
	default:
		return nil
	}

	orderID := event.Payload.Payment.Entity.OrderID
	if orderID == "" {
		return nil
	}

	// Providers redeliver webhooks; a repeat of the same outcome is a no-op.
	if existing, err := s.payments.GetByOrderID(ctx, orderID); err == nil && existing.Status == status {
		return nil
	}

	if err := s.payments.SetStatus(ctx, orderID, status); err != nil {
		log.Warn().Err(err).Str("order_id", orderID).Str("event", event.Event).Msg("applying payment webhook")
	}
	return nil
}
