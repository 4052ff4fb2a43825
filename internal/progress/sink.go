package progress

import "context"

// Sink receives events from the Hub. Implementations must tolerate being
// called from the single driver goroutine only.
type Sink interface {
	// Observe handles one event.
	Observe(ctx context.Context, evt Event) error
	// Close releases any resources held by the sink.
	Close(ctx context.Context) error
}
