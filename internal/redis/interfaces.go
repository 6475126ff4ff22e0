package redis

import "context"

// SessionStoreInterface defines the interface for server-side sessions.
type SessionStoreInterface interface {
	Create(ctx context.Context, userID string) (string, error)
	Get(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}

// RideCacheInterface defines the interface for the ride read cache.
type RideCacheInterface interface {
	GetRide(ctx context.Context, rideID string) (*CachedRide, error)
	SetRide(ctx context.Context, ride *CachedRide) error
	InvalidateRide(ctx context.Context, rideID string) error
}

// Ensure concrete types implement interfaces.
var (
	_ SessionStoreInterface = (*SessionStore)(nil)
	_ RideCacheInterface    = (*CacheStore)(nil)
)
