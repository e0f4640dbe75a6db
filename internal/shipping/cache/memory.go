package cache

import (
	"context"
	"sync"
	"time"

	"github.com/zahrafashion/storefront/internal/shipping/domain"
)

type memoryEntry struct {
	quotes   []domain.Quote
	storedAt time.Time
}

// MemoryStore is the in-process cache tier. It survives for the lifetime of
// the server and answers without touching the network.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates an in-process rate cache with the given TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached quotes for key, deleting the entry when it has
// outlived the TTL.
func (s *MemoryStore) Get(_ context.Context, key Key) ([]domain.Quote, bool, error) {
	k := key.String()

	s.mu.RLock()
	entry, ok := s.entries[k]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	if s.now().Sub(entry.storedAt) >= s.ttl {
		s.mu.Lock()
		delete(s.entries, k)
		s.mu.Unlock()
		return nil, false, nil
	}

	return entry.quotes, true, nil
}

// Put stores quotes for key, replacing any previous entry.
func (s *MemoryStore) Put(_ context.Context, key Key, quotes []domain.Quote) error {
	s.mu.Lock()
	s.entries[key.String()] = memoryEntry{quotes: quotes, storedAt: s.now()}
	s.mu.Unlock()
	return nil
}

// Evict removes the entry for key if present.
func (s *MemoryStore) Evict(_ context.Context, key Key) error {
	s.mu.Lock()
	delete(s.entries, key.String())
	s.mu.Unlock()
	return nil
}
