package ratelimit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akolanti/ClaimAPI/internal/data/redisStore"
	"github.com/akolanti/ClaimAPI/internal/data/store"
	"github.com/akolanti/ClaimAPI/internal/domain/claimModel"
	"github.com/akolanti/ClaimAPI/internal/ratelimit"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type mockCounterStore struct {
	OnIncrement func(ctx context.Context, key string, window time.Duration) (int64, error)
}

func (m *mockCounterStore) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	return m.OnIncrement(ctx, key, window)
}

func TestAdmit_FixedWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	limiter := ratelimit.NewLimiter(store.NewRedisCounterStore(redisStore.NewTestStore(client)), time.Minute, 5, false)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		verdict, err := limiter.Admit(ctx, "203.0.113.7")
		if err != nil || verdict != ratelimit.Allow {
			t.Fatalf("attempt %d: got %v (%v), want allow", i, verdict, err)
		}
	}

	verdict, err := limiter.Admit(ctx, "203.0.113.7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict != ratelimit.Deny {
		t.Errorf("6th attempt got %v, want deny", verdict)
	}

	if v, _ := limiter.Admit(ctx, "198.51.100.1"); v != ratelimit.Allow {
		t.Errorf("other client got %v, want allow", v)
	}

	mr.FastForward(61 * time.Second)
	if v, _ := limiter.Admit(ctx, "203.0.113.7"); v != ratelimit.Allow {
		t.Errorf("first attempt in new window got %v, want allow", v)
	}
}

func TestAdmit_StoreFailure(t *testing.T) {
	failing := &mockCounterStore{
		OnIncrement: func(ctx context.Context, key string, window time.Duration) (int64, error) {
			return 0, claimModel.ErrStoreUnavailable
		},
	}

	tests := []struct {
		name     string
		failOpen bool
		want     ratelimit.Verdict
	}{
		{"fail closed", false, ratelimit.Deny},
		{"fail open", true, ratelimit.Allow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := ratelimit.NewLimiter(failing, time.Minute, 5, tt.failOpen)
			verdict, err := limiter.Admit(context.Background(), "client")
			if verdict != tt.want {
				t.Errorf("verdict got %v, want %v", verdict, tt.want)
			}
			if !errors.Is(err, claimModel.ErrStoreUnavailable) {
				t.Errorf("store error must be surfaced, got %v", err)
			}
		})
	}
}

func TestAdmit_KeyPrefix(t *testing.T) {
	var gotKey string
	var gotWindow time.Duration
	s := &mockCounterStore{
		OnIncrement: func(ctx context.Context, key string, window time.Duration) (int64, error) {
			gotKey, gotWindow = key, window
			return 1, nil
		},
	}
	limiter := ratelimit.NewLimiter(s, 60*time.Second, 5, false)
	_, _ = limiter.Admit(context.Background(), "1.2.3.4")
	if gotKey != "ratelimit:1.2.3.4" || gotWindow != 60*time.Second {
		t.Errorf("got key %q window %v", gotKey, gotWindow)
	}
}
