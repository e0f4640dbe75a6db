package cache

import (
	"context"
	"log/slog"

	"github.com/zahrafashion/storefront/internal/shipping/domain"
)

// TieredStore layers the in-process cache over the durable one. Reads try
// memory first and fall through to Redis, warming memory on a durable hit.
// A failing durable tier degrades to a miss instead of failing the lookup:
// the rate oracle remains reachable either way.
type TieredStore struct {
	memory  Store
	durable Store
	logger  *slog.Logger
}

// NewTieredStore composes the memory and durable cache tiers.
func NewTieredStore(memory, durable Store, logger *slog.Logger) *TieredStore {
	return &TieredStore{
		memory:  memory,
		durable: durable,
		logger:  logger,
	}
}

// Get looks up key in memory, then in the durable tier.
func (s *TieredStore) Get(ctx context.Context, key Key) ([]domain.Quote, bool, error) {
	quotes, ok, err := s.memory.Get(ctx, key)
	if err == nil && ok {
		return quotes, true, nil
	}

	quotes, ok, err = s.durable.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "durable rate cache unavailable, treating as miss",
			slog.String("key", key.String()),
			slog.String("error", err.Error()))
		return nil, false, nil
	}
	if !ok {
		return nil, false, nil
	}

	if err := s.memory.Put(ctx, key, quotes); err != nil {
		s.logger.WarnContext(ctx, "failed to warm memory rate cache",
			slog.String("key", key.String()),
			slog.String("error", err.Error()))
	}

	return quotes, true, nil
}

// Put writes quotes to both tiers. A durable write failure is surfaced so the
// caller knows the entry will not outlive the process.
func (s *TieredStore) Put(ctx context.Context, key Key, quotes []domain.Quote) error {
	if err := s.memory.Put(ctx, key, quotes); err != nil {
		return err
	}
	return s.durable.Put(ctx, key, quotes)
}

// Evict removes key from both tiers.
func (s *TieredStore) Evict(ctx context.Context, key Key) error {
	if err := s.memory.Evict(ctx, key); err != nil {
		return err
	}
	return s.durable.Evict(ctx, key)
}
