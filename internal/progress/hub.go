package progress

import (
	"context"

	"go.uber.org/zap"
)

// Hub fans events out to its sinks. The driver loop is strictly
// sequential, so delivery is synchronous; a misbehaving sink is logged
// and skipped rather than failing the run.
type Hub struct {
	sinks  []Sink
	logger *zap.Logger
}

// NewHub builds a Hub over the supplied sinks. A nil Hub is valid and
// drops every event, which keeps call sites unconditional.
func NewHub(logger *zap.Logger, sinks ...Sink) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		sinks:  append([]Sink(nil), sinks...),
		logger: logger,
	}
}

// Emit validates evt and delivers it to each sink in order.
func (h *Hub) Emit(ctx context.Context, evt Event) {
	if h == nil {
		return
	}
	if err := evt.Validate(); err != nil {
		h.logger.Debug("discarding invalid progress event", zap.Error(err))
		return
	}
	for _, sink := range h.sinks {
		if sink == nil {
			continue
		}
		if err := sink.Observe(ctx, evt); err != nil {
			h.logger.Warn("progress sink observe failed", zap.Error(err))
		}
	}
}

// Close closes every sink, reporting the first error encountered.
func (h *Hub) Close(ctx context.Context) error {
	if h == nil {
		return nil
	}
	var first error
	for _, sink := range h.sinks {
		if sink == nil {
			continue
		}
		if err := sink.Close(ctx); err != nil {
			h.logger.Warn("progress sink close failed", zap.Error(err))
			if first == nil {
				first = err
			}
		}
	}
	return first
}
