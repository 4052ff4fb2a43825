package scraper

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"firescrape/internal/progress"
)

// Engine drives a scrape run: it dequeues pages one at a time, fetches them
// with bounded retries, hands successes to the sink, and feeds in-scope
// discovered links back into the frontier. Pages never run concurrently.
type Engine struct {
	client  Client
	sink    PageSink
	policy  *LinkPolicy
	retry   RetryPolicy
	limiter Waiter
	clock   Clock
	hub     *progress.Hub
	logger  *zap.Logger
	runID   string
}

// Params wires an Engine's collaborators. All fields except Hub are
// required; a nil Hub disables progress reporting.
type Params struct {
	Client  Client
	Sink    PageSink
	Policy  *LinkPolicy
	Retry   RetryPolicy
	Limiter Waiter
	Clock   Clock
	Hub     *progress.Hub
	Logger  *zap.Logger
	RunID   string
}

// NewEngine validates p and builds an Engine.
func NewEngine(p Params) (*Engine, error) {
	switch {
	case p.Client == nil:
		return nil, fmt.Errorf("engine: client is required")
	case p.Sink == nil:
		return nil, fmt.Errorf("engine: sink is required")
	case p.Policy == nil:
		return nil, fmt.Errorf("engine: link policy is required")
	case p.Retry == nil:
		return nil, fmt.Errorf("engine: retry policy is required")
	case p.Limiter == nil:
		return nil, fmt.Errorf("engine: limiter is required")
	case p.Clock == nil:
		return nil, fmt.Errorf("engine: clock is required")
	case p.Logger == nil:
		return nil, fmt.Errorf("engine: logger is required")
	case p.RunID == "":
		return nil, fmt.Errorf("engine: run id is required")
	}
	return &Engine{
		client:  p.Client,
		sink:    p.Sink,
		policy:  p.Policy,
		retry:   p.Retry,
		limiter: p.Limiter,
		clock:   p.Clock,
		hub:     p.Hub,
		logger:  p.Logger,
		runID:   p.RunID,
	}, nil
}

// Run scrapes startURL and everything reachable from it under the link
// policy, until the frontier drains or ctx is canceled. Per-page failures
// are counted in the summary, not returned; the only error is cancellation.
func (e *Engine) Run(ctx context.Context, startURL string) (Summary, error) {
	start, err := NormalizeURL(startURL)
	if err != nil {
		return Summary{}, fmt.Errorf("start url: %w", err)
	}
	if !e.policy.Allows(start) {
		return Summary{}, fmt.Errorf("start url %s is outside the link policy", start)
	}

	began := e.clock.Now()
	frontier := NewFrontier()
	frontier.Add(start)

	e.emit(ctx, progress.Event{Stage: progress.StageRunStart, Note: start})
	e.emit(ctx, progress.Event{Stage: progress.StagePageQueued, URL: start})
	e.logger.Info("run started",
		zap.String("run_id", e.runID),
		zap.String("start_url", start),
	)

	var summary Summary
	for {
		if err := ctx.Err(); err != nil {
			e.finish(ctx, &summary, began, "canceled")
			return summary, fmt.Errorf("run canceled: %w", err)
		}
		url, ok := frontier.Next()
		if !ok {
			break
		}

		page, attempts, err := e.scrapeWithRetry(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				summary.Failed++
				e.finish(ctx, &summary, began, "canceled")
				return summary, fmt.Errorf("run canceled: %w", ctx.Err())
			}
			summary.Failed++
			e.emit(ctx, progress.Event{
				Stage:   progress.StagePageFailed,
				URL:     url,
				Attempt: attempts,
				Note:    err.Error(),
			})
			continue
		}

		path, werr := e.sink.WritePage(ctx, page)
		if werr != nil {
			summary.Failed++
			e.logger.Error("write page", zap.String("url", url), zap.Error(werr))
			e.emit(ctx, progress.Event{
				Stage:   progress.StagePageFailed,
				URL:     url,
				Attempt: attempts,
				Note:    werr.Error(),
			})
			continue
		}

		summary.Written++
		e.logger.Debug("page written",
			zap.String("url", url),
			zap.String("path", path),
			zap.Int("status", page.StatusCode),
			zap.Int("attempts", attempts),
			zap.Int("links", len(page.Links)),
		)
		e.emit(ctx, progress.Event{
			Stage:   progress.StagePageWritten,
			URL:     url,
			Path:    path,
			Attempt: attempts,
		})

		for _, link := range e.policy.Filter(url, page.Links) {
			if frontier.Add(link) {
				e.emit(ctx, progress.Event{Stage: progress.StagePageQueued, URL: link})
			}
		}
	}

	e.finish(ctx, &summary, began, "drained")
	return summary, nil
}

// scrapeWithRetry fetches url, retrying transient failures per the retry
// policy. It returns the number of attempts made alongside the result.
func (e *Engine) scrapeWithRetry(ctx context.Context, url string) (Page, int, error) {
	attempt := 0
	for {
		attempt++
		if err := e.limiter.Wait(ctx); err != nil {
			return Page{}, attempt, err
		}

		e.emit(ctx, progress.Event{Stage: progress.StagePageStart, URL: url, Attempt: attempt})
		started := e.clock.Now()
		page, err := e.client.ScrapePage(ctx, url)
		if err == nil {
			return page, attempt, nil
		}

		if !e.retry.ShouldRetry(err, attempt) {
			return Page{}, attempt, err
		}

		backoff := e.retry.Backoff(attempt)
		e.logger.Warn("scrape failed, retrying",
			zap.String("url", url),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Duration("elapsed", e.clock.Now().Sub(started)),
			zap.Error(err),
		)
		e.emit(ctx, progress.Event{
			Stage:   progress.StagePageRetry,
			URL:     url,
			Attempt: attempt,
			Dur:     backoff,
			Note:    err.Error(),
		})

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Page{}, attempt, ctx.Err()
		case <-timer.C:
		}
	}
}

func (e *Engine) finish(ctx context.Context, summary *Summary, began time.Time, reason string) {
	summary.Duration = e.clock.Now().Sub(began)
	e.emit(ctx, progress.Event{
		Stage: progress.StageRunDone,
		Dur:   summary.Duration,
		Note:  reason,
	})
	e.logger.Info("run finished",
		zap.String("run_id", e.runID),
		zap.String("reason", reason),
		zap.Int("written", summary.Written),
		zap.Int("failed", summary.Failed),
		zap.Duration("duration", summary.Duration),
	)
}

func (e *Engine) emit(ctx context.Context, evt progress.Event) {
	evt.RunID = e.runID
	evt.TS = e.clock.Now()
	e.hub.Emit(ctx, evt)
}
