package repository

import (
	"context"

	"github.com/CaptainFAHIM/uni-ride/internal/domain"
)

// PaymentRepository defines the persistence operations for payments.
// Payment records are append-only; there is no update or delete.
type PaymentRepository interface {
	// Create persists a new payment.
	Create(ctx context.Context, payment *domain.Payment) error

	// ListByUser retrieves all payments for a user, newest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Payment, error)
}
