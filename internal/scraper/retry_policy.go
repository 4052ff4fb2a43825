package scraper

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"firescrape/internal/firecrawl"
)

// BackoffPolicy retries transient scrape failures with jittered exponential
// backoff, up to a fixed attempt budget.
type BackoffPolicy struct {
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
}

// NewBackoffPolicy builds a policy. maxAttempts counts the first try, so a
// value of 3 allows two retries. Out-of-range inputs are clamped to sane
// minimums.
func NewBackoffPolicy(maxAttempts int, baseDelay, maxDelay time.Duration) *BackoffPolicy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if baseDelay <= 0 {
		baseDelay = 250 * time.Millisecond
	}
	if maxDelay < baseDelay {
		maxDelay = baseDelay
	}
	return &BackoffPolicy{
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		maxDelay:    maxDelay,
	}
}

// ShouldRetry reports whether the attempt-th try (1-based) may be followed
// by another. Cancellation and fatal API errors are never retried.
func (p *BackoffPolicy) ShouldRetry(err error, attempt int) bool {
	if err == nil || attempt >= p.maxAttempts {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return firecrawl.IsRetryable(err)
}

// Backoff returns the pause before the next try after attempt failures.
// The delay doubles per attempt, is capped at the configured maximum, and
// carries up to 50% random jitter to avoid thundering retries.
func (p *BackoffPolicy) Backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := p.baseDelay << (attempt - 1)
	if delay > p.maxDelay || delay <= 0 {
		delay = p.maxDelay
	}
	jitter := time.Duration(rand.Int63n(int64(delay)/2 + 1))
	return delay + jitter
}

// MaxAttempts returns the total attempt budget per page.
func (p *BackoffPolicy) MaxAttempts() int {
	return p.maxAttempts
}
