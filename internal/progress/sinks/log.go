// Package sinks provides progress.Sink implementations.
package sinks

import (
	"context"

	"go.uber.org/zap"

	"firescrape/internal/progress"
)

// LogSink emits structured logs for each progress event.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink wires a zap logger to the sink interface.
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

// Observe logs the event using structured fields.
func (s *LogSink) Observe(_ context.Context, evt progress.Event) error {
	fields := []zap.Field{
		zap.String("run_id", evt.RunID),
		zap.String("stage", string(evt.Stage)),
	}
	if evt.URL != "" {
		fields = append(fields, zap.String("url", evt.URL))
	}
	if evt.Path != "" {
		fields = append(fields, zap.String("path", evt.Path))
	}
	if evt.Attempt > 0 {
		fields = append(fields, zap.Int("attempt", evt.Attempt))
	}
	if evt.Dur > 0 {
		fields = append(fields, zap.Duration("dur", evt.Dur))
	}
	if evt.Note != "" {
		fields = append(fields, zap.String("note", evt.Note))
	}

	switch evt.Stage {
	case progress.StagePageFailed:
		s.logger.Error("page failed", fields...)
	case progress.StagePageRetry:
		s.logger.Warn("page retry", fields...)
	case progress.StagePageQueued, progress.StagePageStart:
		s.logger.Debug("progress event", fields...)
	default:
		s.logger.Info("progress event", fields...)
	}
	return nil
}

// Close implements the Sink interface; it performs no action.
func (s *LogSink) Close(context.Context) error {
	return nil
}
