package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firescrape/internal/policy/ratelimit"
)

func TestWait_UnlimitedNeverBlocks(t *testing.T) {
	t.Parallel()

	l := ratelimit.New(ratelimit.Config{RPS: 0})
	start := time.Now()
	for i := 0; i < 100; i++ {
		require.NoError(t, l.Wait(context.Background()))
	}
	assert.Less(t, time.Since(start), time.Second)
}

func TestWait_PacesRequests(t *testing.T) {
	t.Parallel()

	l := ratelimit.New(ratelimit.Config{RPS: 50, Burst: 1})
	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, l.Wait(context.Background()))
	}
	// Two waits of ~20ms each after the initial token.
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestWait_CanceledContext(t *testing.T) {
	t.Parallel()

	l := ratelimit.New(ratelimit.Config{RPS: 0.001, Burst: 1})
	require.NoError(t, l.Wait(context.Background())) // consume the burst

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, l.Wait(ctx))
}
