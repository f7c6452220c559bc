package store

import (
	"context"
	"testing"
	"time"
)

func TestInMemoryCounterStore_SweepInterval(t *testing.T) {
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	now := start
	counters := NewInMemoryCounterStore(func() time.Time { return now })
	ctx := context.Background()

	_, _ = counters.Increment(ctx, "a", time.Minute)

	now = start.Add(30 * time.Second)
	_, _ = counters.Increment(ctx, "b", time.Minute)
	if got := len(counters.counters); got != 2 {
		t.Fatalf("keys after second client got %d, want 2", got)
	}

	// a expired at start+60s, b is still inside its window
	now = start.Add(61 * time.Second)
	_, _ = counters.Increment(ctx, "c", time.Minute)
	if _, found := counters.counters["a"]; found {
		t.Error("expired key a should have been swept")
	}
	if _, found := counters.counters["b"]; !found {
		t.Error("live key b should survive the sweep")
	}

	// a new key inside the interval does not trigger another scan
	now = start.Add(200 * time.Second)
	counters.lastSweep = now.Add(-time.Second)
	_, _ = counters.Increment(ctx, "d", time.Minute)
	if _, found := counters.counters["b"]; !found {
		t.Error("sweep ran again inside the interval")
	}
}
