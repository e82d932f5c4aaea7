package models

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusCreated  PaymentStatus = "created"
	PaymentStatusCaptured PaymentStatus = "captured"
	PaymentStatusFailed   PaymentStatus = "failed"
)

// Payment tracks a Razorpay order for a session. Payments never drive the
// session state machine; confirmation stays an explicit mentor/admin action.
type Payment struct {
	ID        uuid.UUID `db:"id"`
	SessionID uuid.UUID `db:"session_id"`

	OrderID  string        `db:"order_id"` // provider order id
	Amount   int64         `db:"amount"`   // smallest currency unit
	Currency string        `db:"currency"`
	Status   PaymentStatus `db:"status"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
