package repository

import (
	"context"
	"time"

	"github.com/CaptainFAHIM/uni-ride/internal/domain"
)

// UserRepository defines the persistence operations for users.
type UserRepository interface {
	// Create adds a new user. Returns ErrDuplicate if the email is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdateMembership overwrites the membership window of a user.
	UpdateMembership(ctx context.Context, id string, active bool, expiry time.Time) error
}
