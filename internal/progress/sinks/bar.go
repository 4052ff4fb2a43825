package sinks

import (
	"context"

	"github.com/schollz/progressbar/v3"

	"firescrape/internal/progress"
)

// BarSink renders a terminal progress bar. The maximum grows as link
// discovery enqueues new pages, so the bar tracks the live frontier.
type BarSink struct {
	bar *progressbar.ProgressBar
	max int
}

// NewBarSink constructs a BarSink with an empty bar.
func NewBarSink() *BarSink {
	return &BarSink{
		bar: progressbar.NewOptions(0,
			progressbar.OptionSetDescription("scraping"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		),
	}
}

// Observe advances the bar for finished pages and widens it for queued ones.
func (s *BarSink) Observe(_ context.Context, evt progress.Event) error {
	switch evt.Stage {
	case progress.StagePageQueued:
		s.max++
		s.bar.ChangeMax(s.max)
	case progress.StagePageWritten, progress.StagePageFailed:
		if err := s.bar.Add(1); err != nil {
			return err
		}
	}
	return nil
}

// Close finishes the bar so the cursor ends on a clean line.
func (s *BarSink) Close(context.Context) error {
	return s.bar.Finish()
}
