package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/kuldeep27396/prime-backend/internal/apperrors"
	"github.com/kuldeep27396/prime-backend/internal/models"
)

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts a payment record for a provider order.
func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	const query = `
	INSERT INTO payments (id, session_id, order_id, amount, currency, status, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx,
		query,
		p.ID,
		p.SessionID,
		p.OrderID,
		p.Amount,
		p.Currency,
		p.Status,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

// GetByOrderID returns a payment by its provider order id.
func (r *PaymentRepository) GetByOrderID(ctx context.Context, orderID string) (*models.Payment, error) {
	const query = `
	SELECT id, session_id, order_id, amount, currency, status, created_at, updated_at
	FROM payments
	WHERE order_id = $1
	`
	var p models.Payment
	err := r.db.QueryRowContext(ctx, query, orderID).Scan(
		&p.ID,
		&p.SessionID,
		&p.OrderID,
		&p.Amount,
		&p.Currency,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SetStatus updates a payment's lifecycle status.
func (r *PaymentRepository) SetStatus(ctx context.Context, orderID string, status models.PaymentStatus) error {
	const query = `UPDATE payments SET status = $1, updated_at = NOW() WHERE order_id = $2`
	_, err := r.db.ExecContext(ctx, query, status, orderID)
	return err
}
