package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zahrafashion/storefront/internal/checkout/domain"
	apperrors "github.com/zahrafashion/storefront/pkg/errors"
)

const keyPrefix = "checkout:"

// SessionRepository implements repository.SessionRepository using Redis.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository creates a Redis-backed checkout session repository.
func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves the user's checkout session from Redis.
func (r *SessionRepository) Get(ctx context.Context, userID string) (*domain.Session, error) {
	key := keyPrefix + userID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("checkout session", userID)
		}
		return nil, fmt.Errorf("redis get checkout session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal checkout session: %w", err)
	}

	return &session, nil
}

// Save persists a checkout session to Redis with the configured TTL.
func (r *SessionRepository) Save(ctx context.Context, session *domain.Session) error {
	key := keyPrefix + session.UserID

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal checkout session: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set checkout session: %w", err)
	}

	return nil
}

// Delete removes the user's checkout session from Redis.
func (r *SessionRepository) Delete(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, keyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("redis del checkout session: %w", err)
	}
	return nil
}
