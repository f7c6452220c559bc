package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akolanti/ClaimAPI/internal/config"
	"github.com/akolanti/ClaimAPI/internal/domain/claimModel"
	"github.com/akolanti/ClaimAPI/pkg/logger_i"
	"golang.org/x/time/rate"
)

// Router sends each call to the first provider in priority order that can serve it.
// Calls are never retried; outbound traffic is throttled by a shared token bucket.
type Router struct {
	providers   []Provider
	limiter     *rate.Limiter
	callTimeout time.Duration
	logger      *logger_i.Logger
}

// NewRouter keeps nil providers out, so callers can pass whatever failed to initialise.
func NewRouter(limiter *rate.Limiter, providers ...Provider) *Router {
	var usable []Provider
	for _, p := range providers {
		if p != nil {
			usable = append(usable, p)
		}
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Limit(config.LLMRequestsPerSec), config.LLMBurst)
	}
	return &Router{
		providers:   usable,
		limiter:     limiter,
		callTimeout: config.LLMCallTimeout,
		logger:      logger_i.NewLogger("LLMRouter"),
	}
}

func (r *Router) Providers() []string {
	names := make([]string, 0, len(r.providers))
	for _, p := range r.providers {
		names = append(names, p.Name())
	}
	return names
}

func (r *Router) GenerateJSON(ctx context.Context, req Request) (string, error) {
	if len(r.providers) == 0 {
		return "", claimModel.ErrNoProvider
	}
	p := r.providers[0]
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("llm throttle: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()
	out, err := p.GenerateJSON(callCtx, req)
	if err != nil {
		r.logger.FromContext(ctx).Warn("generation failed", "provider", p.Name(), "error", err)
		return "", err
	}
	return out, nil
}

// Vision skips providers that cannot read images and uses the first one that can.
func (r *Router) Vision(ctx context.Context, prompt string, data []byte, mimeType string) (string, error) {
	log := r.logger.FromContext(ctx)
	for _, p := range r.providers {
		if err := r.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("llm throttle: %w", err)
		}
		callCtx, cancel := context.WithTimeout(ctx, r.callTimeout)
		out, err := p.Vision(callCtx, prompt, data, mimeType)
		cancel()
		if errors.Is(err, claimModel.ErrUnsupportedVision) {
			log.Debug("provider has no vision, trying next", "provider", p.Name())
			continue
		}
		if err != nil {
			log.Warn("vision call failed", "provider", p.Name(), "error", err)
			return "", err
		}
		return out, nil
	}
	return "", claimModel.ErrUnsupportedVision
}
