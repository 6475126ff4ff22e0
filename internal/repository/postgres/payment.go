package postgres

import (
	"context"
	"database/sql"

	"github.com/CaptainFAHIM/uni-ride/internal/domain"
)

// PaymentRepository is a PostgreSQL implementation of repository.PaymentRepository.
type PaymentRepository struct {
	q Querier
}

// NewPaymentRepository creates a new PostgreSQL payment repository.
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{q: db}
}

// NewPaymentRepositoryWithTx creates a payment repository using a transaction.
func NewPaymentRepositoryWithTx(tx *sql.Tx) *PaymentRepository {
	return &PaymentRepository{q: tx}
}

// Create persists a new payment.
func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (id, user_id, amount, membership_type, payment_date, membership_start, membership_end, transaction_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.q.ExecContext(ctx, query,
		payment.ID,
		payment.UserID,
		payment.Amount,
		payment.MembershipType,
		payment.PaymentDate,
		payment.MembershipStart,
		payment.MembershipEnd,
		payment.TransactionID,
	)

	return err
}

// ListByUser retrieves all payments for a user, newest first.
func (r *PaymentRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Payment, error) {
	query := `
		SELECT id, user_id, amount, membership_type, payment_date, membership_start, membership_end, transaction_id
		FROM payments WHERE user_id = $1 ORDER BY payment_date DESC
	`

	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		var payment domain.Payment
		if err := rows.Scan(
			&payment.ID,
			&payment.UserID,
			&payment.Amount,
			&payment.MembershipType,
			&payment.PaymentDate,
			&payment.MembershipStart,
			&payment.MembershipEnd,
			&payment.TransactionID,
		); err != nil {
			return nil, err
		}
		payments = append(payments, &payment)
	}
	return payments, rows.Err()
}
