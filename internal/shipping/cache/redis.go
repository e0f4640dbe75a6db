package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zahrafashion/storefront/internal/shipping/domain"
)

// envelope is the stored form of a cache entry. The write timestamp travels
// with the data so freshness can be judged on read even if the key outlives
// its Redis expiry (e.g. after a restore from an RDB snapshot).
type envelope struct {
	Data      []domain.Quote `json:"data"`
	Timestamp int64          `json:"timestamp"`
}

// RedisStore is the durable cache tier. Entries carry their write time and
// are judged against the TTL on every read; stale or unreadable entries are
// deleted rather than served.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// NewRedisStore creates a Redis-backed rate cache with the given TTL.
func NewRedisStore(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Get returns the cached quotes for key. Entries past their TTL and entries
// that fail to decode are evicted and reported as misses.
func (s *RedisStore) Get(ctx context.Context, key Key) ([]domain.Quote, bool, error) {
	k := key.String()

	data, err := s.client.Get(ctx, k).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get rate: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		s.logger.WarnContext(ctx, "evicting corrupt rate cache entry",
			slog.String("key", k),
			slog.String("error", err.Error()))
		if delErr := s.client.Del(ctx, k).Err(); delErr != nil {
			return nil, false, fmt.Errorf("redis del corrupt rate: %w", delErr)
		}
		return nil, false, nil
	}

	// A negative age means the entry was written by a clock ahead of ours,
	// e.g. a restore from another host. Treat it as expired rather than
	// serving it fresh forever.
	age := s.now().Sub(time.UnixMilli(env.Timestamp))
	if age < 0 || age >= s.ttl {
		if delErr := s.client.Del(ctx, k).Err(); delErr != nil {
			return nil, false, fmt.Errorf("redis del expired rate: %w", delErr)
		}
		return nil, false, nil
	}

	return env.Data, true, nil
}

// Put stores quotes for key with the current write time. The Redis expiry is
// set to the same TTL so abandoned keys reclaim themselves.
func (s *RedisStore) Put(ctx context.Context, key Key, quotes []domain.Quote) error {
	env := envelope{Data: quotes, Timestamp: s.now().UnixMilli()}

	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal rate entry: %w", err)
	}

	if err := s.client.Set(ctx, key.String(), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set rate: %w", err)
	}

	return nil
}

// Evict removes the entry for key if present.
func (s *RedisStore) Evict(ctx context.Context, key Key) error {
	if err := s.client.Del(ctx, key.String()).Err(); err != nil {
		return fmt.Errorf("redis del rate: %w", err)
	}
	return nil
}
