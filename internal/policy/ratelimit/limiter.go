// Package ratelimit paces outbound API calls with a token bucket.
package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Config holds rate limiter configuration. RPS <= 0 disables pacing.
type Config struct {
	RPS   float64
	Burst int
}

// Limiter spaces scrape requests so the remote API is never hammered.
// All requests share one bucket; the driver loop is sequential anyway.
type Limiter struct {
	limiter *rate.Limiter
}

// New creates a Limiter from cfg.
func New(cfg Config) *Limiter {
	r := rate.Limit(cfg.RPS)
	if cfg.RPS <= 0 {
		r = rate.Inf
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{
		limiter: rate.NewLimiter(r, burst),
	}
}

// Wait blocks until a token is available or the context ends.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return nil
}
