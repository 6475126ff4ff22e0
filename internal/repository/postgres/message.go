package postgres

import (
	"context"
	"database/sql"

	"github.com/CaptainFAHIM/uni-ride/internal/domain"
)

// MessageRepository is a PostgreSQL implementation of repository.MessageRepository.
type MessageRepository struct {
	q Querier
}

// NewMessageRepository creates a new PostgreSQL message repository.
func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{q: db}
}

// Create persists a new message.
func (r *MessageRepository) Create(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO messages (id, sender_id, receiver_id, ride_id, content, sent_at, read)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.q.ExecContext(ctx, query,
		message.ID,
		message.SenderID,
		message.ReceiverID,
		message.RideID,
		message.Content,
		message.SentAt,
		message.Read,
	)

	return err
}

// GetThread retrieves all messages between two users about one ride, in
// either direction, ordered by send time ascending.
func (r *MessageRepository) GetThread(ctx context.Context, userA, userB, rideID string) ([]*domain.Message, error) {
	query := `
		SELECT id, sender_id, receiver_id, ride_id, content, sent_at, read
		FROM messages
		WHERE ride_id = $3
		  AND ((sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1))
		ORDER BY sent_at ASC
	`

	rows, err := r.q.QueryContext(ctx, query, userA, userB, rideID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows)
}

// MarkRead flips the read flag on every unread message from sender to
// receiver within one ride, as a single batch.
func (r *MessageRepository) MarkRead(ctx context.Context, senderID, receiverID, rideID string) error {
	query := `
		UPDATE messages SET read = TRUE
		WHERE sender_id = $1 AND receiver_id = $2 AND ride_id = $3 AND read = FALSE
	`

	_, err := r.q.ExecContext(ctx, query, senderID, receiverID, rideID)
	return err
}

// ListByUser retrieves every message sent or received by a user, newest first.
func (r *MessageRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Message, error) {
	query := `
		SELECT id, sender_id, receiver_id, ride_id, content, sent_at, read
		FROM messages
		WHERE sender_id = $1 OR receiver_id = $1
		ORDER BY sent_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows)
}

func scanMessages(rows *sql.Rows) ([]*domain.Message, error) {
	var messages []*domain.Message
	for rows.Next() {
		var message domain.Message
		if err := rows.Scan(
			&message.ID,
			&message.SenderID,
			&message.ReceiverID,
			&message.RideID,
			&message.Content,
			&message.SentAt,
			&message.Read,
		); err != nil {
			return nil, err
		}
		messages = append(messages, &message)
	}
	return messages, rows.Err()
}
