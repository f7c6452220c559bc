package store

import (
	"context"
	"fmt"
	"time"

	"github.com/akolanti/ClaimAPI/internal/config"
	"github.com/akolanti/ClaimAPI/internal/data/redisStore"
	"github.com/akolanti/ClaimAPI/internal/domain/claimModel"
	"github.com/akolanti/ClaimAPI/pkg/logger_i"
)

type RedisCounterStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

// GetRedisCounterStore returns nil when redis cannot be reached.
func GetRedisCounterStore(ctx context.Context, settings config.Settings) *RedisCounterStore {
	s := redisStore.GetRedisStore(ctx, config.RedisRateLimitStore, redisStore.Options{
		Addr:     settings.RedisAddr,
		Password: settings.RedisPassword,
	})
	if s == nil {
		return nil
	}
	return NewRedisCounterStore(s)
}

func NewRedisCounterStore(s *redisStore.Store) *RedisCounterStore {
	return &RedisCounterStore{
		store:  s,
		logger: logger_i.NewLogger("CounterStore"),
	}
}

func (s *RedisCounterStore) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := s.store.IncrementWindow(ctx, key, window)
	if err != nil {
		s.logger.FromContext(ctx).Error("counter increment failed", "key", key, "error", err)
		return 0, fmt.Errorf("%w: %v", claimModel.ErrStoreUnavailable, err)
	}
	return count, nil
}
