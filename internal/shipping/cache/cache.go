// Package cache stores resolved shipping rates so repeated checkouts for the
// same courier, destination and billable weight skip the rate oracle.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/zahrafashion/storefront/internal/shipping/domain"
)

// DefaultTTL is how long a cached rate stays valid. Carrier tariffs change
// rarely, so a month-old quote is still trustworthy.
const DefaultTTL = 30 * 24 * time.Hour

// Key identifies one cached rate lookup.
type Key struct {
	Courier       string
	DestinationID string
	WeightGrams   int
}

// String renders the key in its storage form, e.g. "ongkir:jnt:123:3000".
func (k Key) String() string {
	return fmt.Sprintf("ongkir:%s:%s:%d", k.Courier, k.DestinationID, k.WeightGrams)
}

// Store is a rate cache tier. Get returns ok=false on a miss; expired and
// unreadable entries are evicted during the lookup and reported as misses.
type Store interface {
	Get(ctx context.Context, key Key) (quotes []domain.Quote, ok bool, err error)
	Put(ctx context.Context, key Key, quotes []domain.Quote) error
	Evict(ctx context.Context, key Key) error
}
