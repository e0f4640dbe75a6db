package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zahrafashion/storefront/internal/shipping/cache"
	"github.com/zahrafashion/storefront/internal/shipping/domain"
	apperrors "github.com/zahrafashion/storefront/pkg/errors"
)

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key cache.Key) ([]domain.Quote, bool, error) {
	args := m.Called(ctx, key)
	var quotes []domain.Quote
	if args.Get(0) != nil {
		quotes = args.Get(0).([]domain.Quote)
	}
	return quotes, args.Bool(1), args.Error(2)
}

func (m *mockCache) Put(ctx context.Context, key cache.Key, quotes []domain.Quote) error {
	args := m.Called(ctx, key, quotes)
	return args.Error(0)
}

func (m *mockCache) Evict(ctx context.Context, key cache.Key) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type mockOracle struct {
	mock.Mock
}

func (m *mockOracle) FetchRates(ctx context.Context, courier, destinationID string, weightGrams int) ([]domain.Quote, error) {
	args := m.Called(ctx, courier, destinationID, weightGrams)
	var quotes []domain.Quote
	if args.Get(0) != nil {
		quotes = args.Get(0).([]domain.Quote)
	}
	return quotes, args.Error(1)
}

func newResolver(c *mockCache, o *mockOracle) *Resolver {
	return NewResolver(c, o, slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func TestResolver_Resolve_CacheHitSkipsOracle(t *testing.T) {
	c := new(mockCache)
	o := new(mockOracle)
	resolver := newResolver(c, o)

	key := cache.Key{Courier: "jnt", DestinationID: "123", WeightGrams: 3000}
	quotes := []domain.Quote{{Courier: "jnt", Service: "REG", Cost: 18000, ETD: "2-3"}}
	c.On("Get", mock.Anything, key).Return(quotes, true, nil)

	dest := domain.Destination{SubdistrictID: "123", DistrictID: "456"}
	res, err := resolver.Resolve(context.Background(), "jnt", dest, 2600)
	require.NoError(t, err)

	assert.Equal(t, 2600, res.ActualWeight)
	assert.Equal(t, 3000, res.BillableWeight)
	assert.Equal(t, "123", res.Destination.ID)
	assert.Equal(t, int64(18000), res.Selected.Cost)
	assert.Equal(t, "REG", res.Selected.Service)
	assert.Equal(t, "2-3", res.Selected.ETD)
	assert.True(t, res.FromCache)

	o.AssertNotCalled(t, "FetchRates", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	c.AssertExpectations(t)
}

func TestResolver_Resolve_MissFetchesAndCaches(t *testing.T) {
	c := new(mockCache)
	o := new(mockOracle)
	resolver := newResolver(c, o)

	key := cache.Key{Courier: "jnt", DestinationID: "123", WeightGrams: 1000}
	quotes := []domain.Quote{
		{Courier: "jnt", Service: "EZ", Cost: 15000, ETD: "2-3"},
		{Courier: "jnt", Service: "REG", Cost: 12000, ETD: "1-2"},
		{Courier: "jnt", Service: "JTR", Cost: 20000, ETD: "3-4"},
	}
	c.On("Get", mock.Anything, key).Return(nil, false, nil)
	o.On("FetchRates", mock.Anything, "jnt", "123", 1000).Return(quotes, nil)
	c.On("Put", mock.Anything, key, quotes).Return(nil)

	res, err := resolver.Resolve(context.Background(), "jnt", domain.Destination{SubdistrictID: "123"}, 800)
	require.NoError(t, err)

	// Cheapest quote wins, full list stays available sorted by cost.
	assert.Equal(t, int64(12000), res.Selected.Cost)
	require.Len(t, res.Quotes, 3)
	assert.Equal(t, int64(12000), res.Quotes[0].Cost)
	assert.Equal(t, int64(15000), res.Quotes[1].Cost)
	assert.Equal(t, int64(20000), res.Quotes[2].Cost)
	assert.False(t, res.FromCache)

	c.AssertExpectations(t)
	o.AssertExpectations(t)
}

func TestResolver_Resolve_EmptyCacheHitFallsThroughToOracle(t *testing.T) {
	c := new(mockCache)
	o := new(mockOracle)
	resolver := newResolver(c, o)

	key := cache.Key{Courier: "jnt", DestinationID: "123", WeightGrams: 1000}
	quotes := []domain.Quote{{Courier: "jnt", Service: "REG", Cost: 11000, ETD: "1-2"}}

	// A stored envelope without quotes decodes to a hit with an empty list.
	c.On("Get", mock.Anything, key).Return([]domain.Quote{}, true, nil)
	c.On("Evict", mock.Anything, key).Return(nil)
	o.On("FetchRates", mock.Anything, "jnt", "123", 1000).Return(quotes, nil)
	c.On("Put", mock.Anything, key, quotes).Return(nil)

	res, err := resolver.Resolve(context.Background(), "jnt", domain.Destination{SubdistrictID: "123"}, 900)
	require.NoError(t, err)

	assert.Equal(t, int64(11000), res.Selected.Cost)
	assert.False(t, res.FromCache)

	c.AssertExpectations(t)
	o.AssertExpectations(t)
}

func TestResolver_Resolve_EmptyCacheHitThenOracleFailureTriesNextCandidate(t *testing.T) {
	c := new(mockCache)
	o := new(mockOracle)
	resolver := newResolver(c, o)

	subKey := cache.Key{Courier: "jnt", DestinationID: "123", WeightGrams: 1000}
	distKey := cache.Key{Courier: "jnt", DestinationID: "456", WeightGrams: 1000}
	quotes := []domain.Quote{{Courier: "jnt", Service: "REG", Cost: 14000, ETD: "2-3"}}

	c.On("Get", mock.Anything, subKey).Return(nil, true, nil)
	c.On("Evict", mock.Anything, subKey).Return(nil)
	o.On("FetchRates", mock.Anything, "jnt", "123", 1000).Return(nil, errors.New("no services"))
	c.On("Get", mock.Anything, distKey).Return(nil, false, nil)
	o.On("FetchRates", mock.Anything, "jnt", "456", 1000).Return(quotes, nil)
	c.On("Put", mock.Anything, distKey, quotes).Return(nil)

	dest := domain.Destination{SubdistrictID: "123", DistrictID: "456"}
	res, err := resolver.Resolve(context.Background(), "jnt", dest, 1000)
	require.NoError(t, err)

	assert.Equal(t, "456", res.Destination.ID)
	assert.Equal(t, int64(14000), res.Selected.Cost)

	c.AssertExpectations(t)
	o.AssertExpectations(t)
}

func TestResolver_Resolve_FallsBackToDistrict(t *testing.T) {
	c := new(mockCache)
	o := new(mockOracle)
	resolver := newResolver(c, o)

	subKey := cache.Key{Courier: "jne", DestinationID: "123", WeightGrams: 2000}
	distKey := cache.Key{Courier: "jne", DestinationID: "456", WeightGrams: 2000}
	quotes := []domain.Quote{{Courier: "jne", Service: "REG", Cost: 22000, ETD: "2-4"}}

	c.On("Get", mock.Anything, subKey).Return(nil, false, nil)
	o.On("FetchRates", mock.Anything, "jne", "123", 2000).Return(nil, errors.New("no services"))
	c.On("Get", mock.Anything, distKey).Return(nil, false, nil)
	o.On("FetchRates", mock.Anything, "jne", "456", 2000).Return(quotes, nil)
	c.On("Put", mock.Anything, distKey, quotes).Return(nil)

	dest := domain.Destination{SubdistrictID: "123", DistrictID: "456"}
	res, err := resolver.Resolve(context.Background(), "jne", dest, 1800)
	require.NoError(t, err)

	assert.Equal(t, "456", res.Destination.ID)
	assert.Equal(t, "Kecamatan", res.Destination.Label)
	assert.Equal(t, int64(22000), res.Selected.Cost)

	c.AssertExpectations(t)
	o.AssertExpectations(t)
}

func TestResolver_Resolve_AllCandidatesFail(t *testing.T) {
	c := new(mockCache)
	o := new(mockOracle)
	resolver := newResolver(c, o)

	c.On("Get", mock.Anything, mock.Anything).Return(nil, false, nil)
	o.On("FetchRates", mock.Anything, "jnt", "123", 1000).Return(nil, errors.New("no services"))
	o.On("FetchRates", mock.Anything, "jnt", "456", 1000).Return(nil, errors.New("no services"))

	dest := domain.Destination{SubdistrictID: "123", DistrictID: "456"}
	_, err := resolver.Resolve(context.Background(), "jnt", dest, 500)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDestinationUnreachable)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "DESTINATION_UNREACHABLE", appErr.Code)
}

func TestResolver_Resolve_EmptyDestination(t *testing.T) {
	c := new(mockCache)
	o := new(mockOracle)
	resolver := newResolver(c, o)

	_, err := resolver.Resolve(context.Background(), "jnt", domain.Destination{}, 1000)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrIncompleteAddress)
	c.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	o.AssertNotCalled(t, "FetchRates", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolver_Resolve_UnsupportedCourier(t *testing.T) {
	resolver := newResolver(new(mockCache), new(mockOracle))

	_, err := resolver.Resolve(context.Background(), "gojek", domain.Destination{SubdistrictID: "1"}, 1000)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_INPUT", appErr.Code)
}

func TestResolver_Resolve_QuotelessDurableEntryRefetched(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	store := cache.NewRedisStore(client, cache.DefaultTTL, slog.New(slog.NewJSONHandler(io.Discard, nil)))

	o := new(mockOracle)
	resolver := NewResolver(store, o, slog.New(slog.NewJSONHandler(io.Discard, nil)))

	// A fresh envelope that never carried quotes.
	key := cache.Key{Courier: "jnt", DestinationID: "123", WeightGrams: 1000}
	require.NoError(t, mr.Set(key.String(), fmt.Sprintf(`{"timestamp":%d}`, time.Now().UnixMilli())))

	quotes := []domain.Quote{{Courier: "jnt", Service: "REG", Cost: 13000, ETD: "1-2"}}
	o.On("FetchRates", mock.Anything, "jnt", "123", 1000).Return(quotes, nil)

	res, err := resolver.Resolve(context.Background(), "jnt", domain.Destination{SubdistrictID: "123"}, 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(13000), res.Selected.Cost)
	assert.False(t, res.FromCache)

	// The entry was rewritten with the fetched quotes.
	cached, ok, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, quotes, cached)
	o.AssertExpectations(t)
}

func TestResolver_Resolve_CacheErrorFallsThroughToOracle(t *testing.T) {
	c := new(mockCache)
	o := new(mockOracle)
	resolver := newResolver(c, o)

	key := cache.Key{Courier: "jnt", DestinationID: "123", WeightGrams: 1000}
	quotes := []domain.Quote{{Courier: "jnt", Service: "REG", Cost: 9000, ETD: "1-2"}}

	c.On("Get", mock.Anything, key).Return(nil, false, errors.New("redis down"))
	o.On("FetchRates", mock.Anything, "jnt", "123", 1000).Return(quotes, nil)
	c.On("Put", mock.Anything, key, quotes).Return(nil)

	res, err := resolver.Resolve(context.Background(), "jnt", domain.Destination{SubdistrictID: "123"}, 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(9000), res.Selected.Cost)
}
