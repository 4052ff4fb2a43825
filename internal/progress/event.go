// Package progress defines the lifecycle events emitted by the driver loop.
package progress

import (
	"errors"
	"fmt"
	"time"
)

// Stage denotes the type of milestone represented by an Event.
type Stage string

// Supported progress stages. Pages move Queued -> Start -> Written|Failed.
const (
	StageRunStart    Stage = "RUN_START"
	StageRunDone     Stage = "RUN_DONE"
	StagePageQueued  Stage = "PAGE_QUEUED"
	StagePageStart   Stage = "PAGE_START"
	StagePageWritten Stage = "PAGE_WRITTEN"
	StagePageFailed  Stage = "PAGE_FAILED"
	StagePageRetry   Stage = "PAGE_RETRY"
)

// Event captures a single milestone of a scrape run.
type Event struct {
	// RunID identifies the run the event belongs to.
	RunID string
	// TS is the UTC timestamp recorded by the emitter.
	TS time.Time
	// Stage denotes which milestone occurred.
	Stage Stage
	// URL is the page the event refers to; empty for run-level stages.
	URL string
	// Path is the output file for PAGE_WRITTEN events.
	Path string
	// Attempt counts scrape attempts for retry and failure events.
	Attempt int
	// Dur captures how long the stage took, where meaningful.
	Dur time.Duration
	// Note carries low-volume context such as error text.
	Note string
}

// Validate performs coarse validation on Event payloads.
func (e Event) Validate() error {
	if e.RunID == "" {
		return errors.New("run id is required")
	}
	if e.TS.IsZero() {
		return errors.New("timestamp is required")
	}
	switch e.Stage {
	case StageRunStart, StageRunDone:
	case StagePageQueued, StagePageStart, StagePageWritten, StagePageFailed, StagePageRetry:
		if e.URL == "" {
			return fmt.Errorf("%s requires a url", e.Stage)
		}
	default:
		return fmt.Errorf("unknown stage %q", e.Stage)
	}
	if e.Dur < 0 {
		return errors.New("duration must be >= 0")
	}
	return nil
}
