package repository

import (
	"context"

	"github.com/CaptainFAHIM/uni-ride/internal/domain"
)

// RideFilter narrows a ride search. Zero-value fields are ignored.
type RideFilter struct {
	// University must match exactly (case-sensitive) when set.
	University string

	// StartLocation matches as a case-insensitive substring when set.
	StartLocation string
}

// RideRepository defines the persistence operations for rides.
type RideRepository interface {
	// Create persists a new ride.
	Create(ctx context.Context, ride *domain.Ride) error

	// GetByID retrieves a ride by ID.
	GetByID(ctx context.Context, id string) (*domain.Ride, error)

	// GetByIDWithRider retrieves a ride joined with its owner's identity.
	GetByIDWithRider(ctx context.Context, id string) (*domain.RideWithRider, error)

	// ListByRider retrieves all rides owned by a rider, departure time ascending.
	ListByRider(ctx context.Context, riderID string) ([]*domain.Ride, error)

	// Search retrieves active rides matching the filter, joined with rider
	// identity, departure time ascending.
	Search(ctx context.Context, filter RideFilter) ([]*domain.RideWithRider, error)

	// UpdateStatus updates the status of a ride.
	UpdateStatus(ctx context.Context, id string, status domain.RideStatus) error

	// Delete removes a ride.
	Delete(ctx context.Context, id string) error
}
