package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/kuldeep27396/prime-backend/internal/apperrors"
	"github.com/kuldeep27396/prime-backend/internal/dtos"
	"github.com/kuldeep27396/prime-backend/internal/models"
)

const webhookSecret = "whsec_test"

func signWebhook(body string) string {
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}

func capturedBody(orderID string) string {
	return fmt.Sprintf(`{"event":"payment.captured","payload":{"payment":{"entity":{"order_id":%q}}}}`, orderID)
}

func newWebhookFixture(t *testing.T) (*PaymentService, *fakePaymentStore) {
	t.Helper()
	payments := newFakePaymentStore()
	svc := NewPaymentService(payments, newFakeSessionStore(), newFakeMentorStore(), "", "", webhookSecret)
	return svc, payments
}

func TestHandleWebhook_AppliesOutcome(t *testing.T) {
	tests := []struct {
		event string
		want  models.PaymentStatus
	}{
		{event: "payment.captured", want: models.PaymentStatusCaptured},
		{event: "payment.failed", want: models.PaymentStatusFailed},
	}

	for _, test := range tests {
		t.Run(test.event, func(t *testing.T) {
			svc, payments := newWebhookFixture(t)
			payment := &models.Payment{
				ID:        uuid.New(),
				SessionID: uuid.New(),
				OrderID:   "order_abc",
				Amount:    150000,
				Currency:  "INR",
				Status:    models.PaymentStatusCreated,
			}
			if err := payments.Create(context.Background(), payment); err != nil {
				t.Fatalf("Create() error = %v", err)
			}

			body := fmt.Sprintf(`{"event":%q,"payload":{"payment":{"entity":{"order_id":"order_abc"}}}}`, test.event)
			if err := svc.HandleWebhook(context.Background(), []byte(body), signWebhook(body)); err != nil {
				t.Fatalf("HandleWebhook() error = %v", err)
			}

			got, err := payments.GetByOrderID(context.Background(), "order_abc")
			if err != nil {
				t.Fatalf("GetByOrderID() error = %v", err)
			}
			if got.Status != test.want {
				t.Errorf("Status = %s, want %s", got.Status, test.want)
			}
		})
	}
}

func TestHandleWebhook_RejectsBadSignature(t *testing.T) {
	svc, payments := newWebhookFixture(t)

	body := capturedBody("order_abc")
	err := svc.HandleWebhook(context.Background(), []byte(body), "deadbeef")
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("HandleWebhook() error = %v, want ErrUnauthorized", err)
	}
	if payments.setCalls != 0 {
		t.Error("payment status changed despite bad signature")
	}
}

func TestHandleWebhook_UnknownEventAcknowledged(t *testing.T) {
	svc, payments := newWebhookFixture(t)

	body := `{"event":"payment.authorized","payload":{"payment":{"entity":{"order_id":"order_abc"}}}}`
	if err := svc.HandleWebhook(context.Background(), []byte(body), signWebhook(body)); err != nil {
		t.Fatalf("HandleWebhook() error = %v", err)
	}
	if payments.setCalls != 0 {
		t.Error("untracked event mutated payment state")
	}
}

func TestHandleWebhook_UnknownOrderAcknowledged(t *testing.T) {
	svc, _ := newWebhookFixture(t)

	body := capturedBody("order_never_seen")
	if err := svc.HandleWebhook(context.Background(), []byte(body), signWebhook(body)); err != nil {
		t.Fatalf("HandleWebhook() error = %v", err)
	}
}

// A redelivered webhook for an already-applied outcome must not touch the store.
func TestHandleWebhook_RedeliveryIsNoOp(t *testing.T) {
	svc, payments := newWebhookFixture(t)
	payment := &models.Payment{
		ID:        uuid.New(),
		SessionID: uuid.New(),
		OrderID:   "order_abc",
		Amount:    150000,
		Currency:  "INR",
		Status:    models.PaymentStatusCreated,
	}
	if err := payments.Create(context.Background(), payment); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	body := capturedBody("order_abc")
	for i := 0; i < 2; i++ {
		if err := svc.HandleWebhook(context.Background(), []byte(body), signWebhook(body)); err != nil {
			t.Fatalf("HandleWebhook() call %d error = %v", i+1, err)
		}
	}
	if payments.setCalls != 1 {
		t.Errorf("SetStatus called %d times, want 1", payments.setCalls)
	}
}

func TestHandleWebhook_MalformedBody(t *testing.T) {
	svc, _ := newWebhookFixture(t)

	body := `{"event":`
	err := svc.HandleWebhook(context.Background(), []byte(body), signWebhook(body))
	var verr *apperrors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("HandleWebhook() error = %v, want ValidationError", err)
	}
}

func TestCreateOrder_ProviderNotConfigured(t *testing.T) {
	svc, _ := newWebhookFixture(t)

	_, err := svc.CreateOrder(context.Background(), uuid.New(), dtos.CreatePaymentRequest{SessionID: uuid.New().String()})
	var eerr *apperrors.ExternalServiceError
	if !errors.As(err, &eerr) {
		t.Fatalf("CreateOrder() error = %v, want ExternalServiceError", err)
	}
}
