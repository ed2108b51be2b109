package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetry_SuccessFirstAttempt(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), 3, func(attempt int) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_RecoversAfterFailure(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), 3, func(attempt int) error {
		calls++
		if attempt == 0 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithRetry_ExhaustsAttempts(t *testing.T) {
	boom := errors.New("permanent")
	calls := 0
	// Single attempt keeps the test fast: no backoff sleep is taken.
	err := withRetry(context.Background(), 1, func(attempt int) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestBRPopRetryDelay(t *testing.T) {
	// Normal poll timeout and shutdown loop straight back to BRPOP.
	assert.Zero(t, brpopRetryDelay(redis.Nil))
	assert.Zero(t, brpopRetryDelay(context.Canceled))
	assert.Zero(t, brpopRetryDelay(context.DeadlineExceeded))

	// A failing redis (refused connection, protocol error) must pause the
	// worker so it does not spin.
	assert.Equal(t, time.Second, brpopRetryDelay(errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")))
}

func TestWithRetry_CanceledContextStopsBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := withRetry(ctx, 3, func(attempt int) error {
		return errors.New("transient")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}
