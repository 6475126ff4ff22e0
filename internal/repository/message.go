package repository

import (
	"context"

	"github.com/CaptainFAHIM/uni-ride/internal/domain"
)

// MessageRepository defines the persistence operations for messages.
type MessageRepository interface {
	// Create persists a new message.
	Create(ctx context.Context, message *domain.Message) error

	// GetThread retrieves all messages between two users about one ride,
	// in either direction, ordered by send time ascending.
	GetThread(ctx context.Context, userA, userB, rideID string) ([]*domain.Message, error)

	// MarkRead flips the read flag on every unread message from sender to
	// receiver within one ride, as a single batch.
	MarkRead(ctx context.Context, senderID, receiverID, rideID string) error

	// ListByUser retrieves every message sent or received by a user,
	// ordered by send time descending.
	ListByUser(ctx context.Context, userID string) ([]*domain.Message, error)
}
