// Package service resolves shipping costs for checkout.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/zahrafashion/storefront/internal/shipping/cache"
	"github.com/zahrafashion/storefront/internal/shipping/domain"
	apperrors "github.com/zahrafashion/storefront/pkg/errors"
)

// RateFetcher fetches rates from the external oracle.
type RateFetcher interface {
	FetchRates(ctx context.Context, courier, destinationID string, weightGrams int) ([]domain.Quote, error)
}

// Resolution is the outcome of a successful shipping cost lookup.
type Resolution struct {
	Courier        string           `json:"courier"`
	ActualWeight   int              `json:"actual_weight"`
	BillableWeight int              `json:"billable_weight"`
	Destination    domain.Candidate `json:"destination"`
	Quotes         []domain.Quote   `json:"quotes"`
	Selected       domain.Quote     `json:"selected"`
	FromCache      bool             `json:"from_cache"`
}

// Resolver orchestrates a shipping cost lookup: billable weight, destination
// candidates, cache, then the oracle.
type Resolver struct {
	cache  cache.Store
	oracle RateFetcher
	logger *slog.Logger
}

// NewResolver creates a shipping cost resolver.
func NewResolver(cacheStore cache.Store, oracle RateFetcher, logger *slog.Logger) *Resolver {
	return &Resolver{
		cache:  cacheStore,
		oracle: oracle,
		logger: logger,
	}
}

// Resolve finds the cheapest shipping option for the courier and destination.
// Candidates are tried in order of precision; the first one the oracle can
// rate wins. When every candidate fails the destination is unreachable for
// this courier; the caller should suggest switching courier or address.
func (r *Resolver) Resolve(ctx context.Context, courier string, dest domain.Destination, actualWeightGrams int) (*Resolution, error) {
	if !domain.IsSupportedCourier(courier) {
		return nil, apperrors.InvalidInput("unsupported courier: " + courier)
	}

	candidates := dest.Candidates()
	if len(candidates) == 0 {
		return nil, apperrors.IncompleteAddress()
	}

	billable := domain.BillableWeight(actualWeightGrams)

	var failures []error
	for _, candidate := range candidates {
		key := cache.Key{Courier: courier, DestinationID: candidate.ID, WeightGrams: billable}

		quotes, hit, err := r.cache.Get(ctx, key)
		if err != nil {
			r.logger.WarnContext(ctx, "rate cache lookup failed",
				slog.String("key", key.String()),
				slog.String("error", err.Error()))
			hit = false
		}

		// An entry without quotes cannot answer the lookup. Drop it and ask
		// the oracle again.
		if hit && len(quotes) == 0 {
			r.logger.WarnContext(ctx, "evicting empty rate cache entry",
				slog.String("key", key.String()))
			if evictErr := r.cache.Evict(ctx, key); evictErr != nil {
				r.logger.WarnContext(ctx, "failed to evict empty rate cache entry",
					slog.String("key", key.String()),
					slog.String("error", evictErr.Error()))
			}
			hit = false
		}

		if !hit {
			quotes, err = r.oracle.FetchRates(ctx, courier, candidate.ID, billable)
			if err != nil {
				r.logger.InfoContext(ctx, "rate lookup failed for candidate",
					slog.String("courier", courier),
					slog.String("destination_id", candidate.ID),
					slog.String("label", candidate.Label),
					slog.String("error", err.Error()))
				failures = append(failures, err)
				continue
			}

			if cacheErr := r.cache.Put(ctx, key, quotes); cacheErr != nil {
				r.logger.WarnContext(ctx, "failed to cache rates",
					slog.String("key", key.String()),
					slog.String("error", cacheErr.Error()))
			}
		}

		sorted := make([]domain.Quote, len(quotes))
		copy(sorted, quotes)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Cost < sorted[j].Cost })

		r.logger.InfoContext(ctx, "shipping cost resolved",
			slog.String("courier", courier),
			slog.String("destination_id", candidate.ID),
			slog.Int("billable_weight", billable),
			slog.Int64("cost", sorted[0].Cost),
			slog.Bool("from_cache", hit))

		return &Resolution{
			Courier:        courier,
			ActualWeight:   actualWeightGrams,
			BillableWeight: billable,
			Destination:    candidate,
			Quotes:         sorted,
			Selected:       sorted[0],
			FromCache:      hit,
		}, nil
	}

	return nil, apperrors.DestinationUnreachable(errors.Join(failures...))
}
