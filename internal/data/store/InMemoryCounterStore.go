package store

import (
	"context"
	"sync"
	"time"

	"github.com/akolanti/ClaimAPI/internal/config"
	"github.com/akolanti/ClaimAPI/internal/domain/claimModel"
)

type counterEntry struct {
	count     int64
	expiresAt time.Time
}

// InMemoryCounterStore is the single-process fallback for the rate limit counter.
type InMemoryCounterStore struct {
	mu        sync.Mutex
	counters  map[string]counterEntry
	now       func() time.Time
	lastSweep time.Time
}

func InitInMemoryCounterStore() *InMemoryCounterStore {
	return NewInMemoryCounterStore(time.Now)
}

func NewInMemoryCounterStore(now func() time.Time) *InMemoryCounterStore {
	return &InMemoryCounterStore{
		counters: make(map[string]counterEntry),
		now:      now,
	}
}

func (s *InMemoryCounterStore) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, found := s.counters[key]
	if !found || !now.Before(entry.expiresAt) {
		entry = counterEntry{expiresAt: now.Add(window)}
		if now.Sub(s.lastSweep) >= config.CounterSweepInterval {
			s.sweep(now)
		}
	}
	entry.count++
	s.counters[key] = entry
	return entry.count, nil
}

// sweep drops expired keys so the map does not grow with every client ever seen.
// It runs at most once per CounterSweepInterval.
func (s *InMemoryCounterStore) sweep(now time.Time) {
	s.lastSweep = now
	for k, e := range s.counters {
		if !now.Before(e.expiresAt) {
			delete(s.counters, k)
		}
	}
}

// UnavailableCounterStore stands in when Redis is down and the in-memory fallback is
// disabled. Every increment fails so the limiter applies its fail-open or fail-closed rule.
type UnavailableCounterStore struct{}

func (UnavailableCounterStore) Increment(context.Context, string, time.Duration) (int64, error) {
	return 0, claimModel.ErrStoreUnavailable
}
