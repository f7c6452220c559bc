// Package ratelimit gates claim intake with a fixed window counter per client.
package ratelimit

import (
	"context"
	"time"

	"github.com/akolanti/ClaimAPI/internal/config"
	"github.com/akolanti/ClaimAPI/internal/domain/claimModel"
	"github.com/akolanti/ClaimAPI/internal/metrics"
	"github.com/akolanti/ClaimAPI/pkg/logger_i"
)

type Verdict int

const (
	Deny Verdict = iota
	Allow
)

func (v Verdict) String() string {
	if v == Allow {
		return "allow"
	}
	return "deny"
}

type Limiter struct {
	store    claimModel.CounterStore
	window   time.Duration
	max      int64
	failOpen bool
	logger   *logger_i.Logger
}

func NewLimiter(store claimModel.CounterStore, window time.Duration, max int64, failOpen bool) *Limiter {
	return &Limiter{
		store:    store,
		window:   window,
		max:      max,
		failOpen: failOpen,
		logger:   logger_i.NewLogger("RateLimiter"),
	}
}

// Admit counts one attempt for clientKey. When the counter store fails, the configured
// fail-open or fail-closed verdict is returned together with the store error.
func (l *Limiter) Admit(ctx context.Context, clientKey string) (Verdict, error) {
	log := l.logger.FromContext(ctx).With("client", clientKey)

	count, err := l.store.Increment(ctx, config.RateLimitKeyPrefix+clientKey, l.window)
	if err != nil {
		verdict := Deny
		if l.failOpen {
			verdict = Allow
		}
		log.Error("rate limit store unavailable", "verdict", verdict.String(), "error", err)
		metrics.CountRateLimit("store_error_" + verdict.String())
		return verdict, err
	}

	if count > l.max {
		log.Warn("rate limit exceeded", "count", count, "max", l.max)
		metrics.CountRateLimit("deny")
		return Deny, nil
	}
	metrics.CountRateLimit("allow")
	return Allow, nil
}
