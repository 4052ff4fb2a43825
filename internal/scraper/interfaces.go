package scraper

import (
	"context"
	"time"
)

// Client fetches one page through the remote scraping API.
type Client interface {
	ScrapePage(ctx context.Context, url string) (Page, error)
}

// PageSink persists a scraped page and returns the written path.
type PageSink interface {
	WritePage(ctx context.Context, page Page) (string, error)
}

// RetryPolicy decides whether a failed scrape is attempted again and how
// long to wait before the next attempt.
type RetryPolicy interface {
	ShouldRetry(err error, attempt int) bool
	Backoff(attempt int) time.Duration
}

// Waiter paces outbound requests.
type Waiter interface {
	Wait(ctx context.Context) error
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}
