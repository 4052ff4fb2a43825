package sinks

import (
	"context"
	"time"

	"firescrape/internal/progress"
)

// Totals summarizes a finished run.
type Totals struct {
	Queued   int
	Written  int
	Failed   int
	Retries  int
	Duration time.Duration
}

// StatsSink accumulates run totals for the end-of-run summary.
type StatsSink struct {
	totals  Totals
	started time.Time
}

// NewStatsSink constructs an empty StatsSink.
func NewStatsSink() *StatsSink {
	return &StatsSink{}
}

// Observe updates the counters for evt.
func (s *StatsSink) Observe(_ context.Context, evt progress.Event) error {
	switch evt.Stage {
	case progress.StageRunStart:
		s.started = evt.TS
	case progress.StageRunDone:
		if !s.started.IsZero() {
			s.totals.Duration = evt.TS.Sub(s.started)
		}
	case progress.StagePageQueued:
		s.totals.Queued++
	case progress.StagePageWritten:
		s.totals.Written++
	case progress.StagePageFailed:
		s.totals.Failed++
	case progress.StagePageRetry:
		s.totals.Retries++
	}
	return nil
}

// Close implements the Sink interface; it performs no action.
func (s *StatsSink) Close(context.Context) error {
	return nil
}

// Totals returns the accumulated counters.
func (s *StatsSink) Totals() Totals {
	return s.totals
}
