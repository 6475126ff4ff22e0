package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// SessionStore holds server-side sessions in Redis: an opaque random token
// maps to the user id it was issued for. The cookie only ever carries the
// token, so a forged cookie cannot impersonate another user.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a new SessionStore. Sessions expire after ttl.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// Create issues a new session token bound to the given user id.
func (s *SessionStore) Create(ctx context.Context, userID string) (string, error) {
	token := uuid.New().String()

	if err := s.client.Set(ctx, sessionKeyPrefix+token, userID, s.ttl).Err(); err != nil {
		return "", err
	}

	return token, nil
}

// Get resolves a session token to the user id it was issued for.
// Returns an empty string for unknown or expired tokens.
func (s *SessionStore) Get(ctx context.Context, token string) (string, error) {
	userID, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}
	return userID, nil
}

// Delete removes a session. Deleting an unknown token is not an error.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKeyPrefix+token).Err()
}
