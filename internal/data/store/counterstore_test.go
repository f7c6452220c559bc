package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/akolanti/ClaimAPI/internal/config"
	"github.com/akolanti/ClaimAPI/internal/data/redisStore"
	"github.com/akolanti/ClaimAPI/internal/data/store"
	"github.com/akolanti/ClaimAPI/internal/domain/claimModel"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRedisCounterStore_Window(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	internalStore := redisStore.NewTestStore(client)
	counters := store.NewRedisCounterStore(internalStore)

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
	key := "ratelimit:10.0.0.1"

	t.Run("Counts within one window", func(t *testing.T) {
		for want := int64(1); want <= 3; want++ {
			got, err := counters.Increment(ctx, key, time.Minute)
			if err != nil {
				t.Fatalf("Increment failed: %v", err)
			}
			if got != want {
				t.Errorf("count got %d, want %d", got, want)
			}
		}
	})

	t.Run("Expiry set once on first hit", func(t *testing.T) {
		ttl, err := internalStore.TTL(ctx, key)
		if err != nil {
			t.Fatalf("TTL failed: %v", err)
		}
		if ttl <= 0 || ttl > time.Minute {
			t.Errorf("unexpected ttl %v", ttl)
		}
	})

	t.Run("Window expires", func(t *testing.T) {
		mr.FastForward(61 * time.Second)
		got, err := counters.Increment(ctx, key, time.Minute)
		if err != nil {
			t.Fatalf("Increment failed: %v", err)
		}
		if got != 1 {
			t.Errorf("count after expiry got %d, want 1", got)
		}
	})

	t.Run("Keys are independent", func(t *testing.T) {
		got, err := counters.Increment(ctx, "ratelimit:10.0.0.2", time.Minute)
		if err != nil {
			t.Fatalf("Increment failed: %v", err)
		}
		if got != 1 {
			t.Errorf("count for new key got %d, want 1", got)
		}
	})

	t.Run("Store offline", func(t *testing.T) {
		mr.SetError("ERR injected failure")
		defer mr.SetError("")
		_, err := counters.Increment(ctx, key, time.Minute)
		if !errors.Is(err, claimModel.ErrStoreUnavailable) {
			t.Errorf("expected ErrStoreUnavailable, got %v", err)
		}
	})
}

func TestRedisCounterStore_Concurrent(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	counters := store.NewRedisCounterStore(redisStore.NewTestStore(client))

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = counters.Increment(context.Background(), "race", time.Minute)
		}()
	}
	wg.Wait()

	val, err := mr.Get("race")
	if err != nil {
		t.Fatalf("key missing: %v", err)
	}
	if val != "20" {
		t.Errorf("concurrent increments got %s, want 20", val)
	}
}

func TestInMemoryCounterStore(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	counters := store.NewInMemoryCounterStore(func() time.Time { return now })
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _ = counters.Increment(ctx, "a", time.Minute)
	}
	if got, _ := counters.Increment(ctx, "a", time.Minute); got != 6 {
		t.Errorf("count got %d, want 6", got)
	}

	now = now.Add(time.Minute)
	if got, _ := counters.Increment(ctx, "a", time.Minute); got != 1 {
		t.Errorf("count after window got %d, want 1", got)
	}
}

func TestUnavailableCounterStore(t *testing.T) {
	_, err := store.UnavailableCounterStore{}.Increment(context.Background(), "a", time.Minute)
	if !errors.Is(err, claimModel.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}
