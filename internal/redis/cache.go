package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore handles entity caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// RideCacheTTL bounds how stale a cached ride detail can be. Ride status
// changes on completion or deletion, both of which invalidate explicitly.
const RideCacheTTL = 10 * time.Second

const rideCachePrefix = "cache:ride:"

// CachedRide is the read-model projection of a ride stored in cache,
// including the rider identity fields the detail view joins in.
type CachedRide struct {
	ID             string    `json:"id"`
	RiderID        string    `json:"rider_id"`
	RiderName      string    `json:"rider_name"`
	RiderEmail     string    `json:"rider_email"`
	RiderPhone     string    `json:"rider_phone"`
	University     string    `json:"university"`
	StartLocation  string    `json:"start_location"`
	DepartureTime  time.Time `json:"departure_time"`
	AvailableSeats int       `json:"available_seats"`
	Fare           float64   `json:"fare"`
	Status         string    `json:"status"`
	Description    string    `json:"description"`
}

// GetRide retrieves a ride from cache. Returns nil on a miss.
func (s *CacheStore) GetRide(ctx context.Context, rideID string) (*CachedRide, error) {
	data, err := s.client.Get(ctx, rideCachePrefix+rideID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var ride CachedRide
	if err := json.Unmarshal(data, &ride); err != nil {
		return nil, err
	}
	return &ride, nil
}

// SetRide stores a ride in cache.
func (s *CacheStore) SetRide(ctx context.Context, ride *CachedRide) error {
	data, err := json.Marshal(ride)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, rideCachePrefix+ride.ID, data, RideCacheTTL).Err()
}

// InvalidateRide removes a ride from cache.
func (s *CacheStore) InvalidateRide(ctx context.Context, rideID string) error {
	return s.client.Del(ctx, rideCachePrefix+rideID).Err()
}
