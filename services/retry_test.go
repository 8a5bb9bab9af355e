package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rateLimitErr() error {
	return &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests, Message: "rate limited"}
}

func testPolicy(slept *[]time.Duration) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 4,
		BaseDelay:   2 * time.Second,
		sleep: func(_ context.Context, d time.Duration) error {
			*slept = append(*slept, d)
			return nil
		},
	}
}

func TestRetryExhaustsOnPersistentRateLimit(t *testing.T) {
	var slept []time.Duration
	p := testPolicy(&slept)

	calls := 0
	err := p.Do(context.Background(), func(context.Context) error {
		calls++
		return rateLimitErr()
	})

	require.Error(t, err)
	assert.True(t, IsRetryable(err))
	assert.Equal(t, p.MaxAttempts, calls)

	// Backoff doubles per attempt; no sleep after the last failure.
	require.Len(t, slept, p.MaxAttempts-1)
	for i, d := range slept {
		assert.GreaterOrEqual(t, d, p.BaseDelay<<uint(i), "sleep %d", i)
	}
}

func TestRetryJitterAddsAtMostOneSecond(t *testing.T) {
	var slept []time.Duration
	p := testPolicy(&slept)
	p.Jitter = time.Second

	_ = p.Do(context.Background(), func(context.Context) error {
		return rateLimitErr()
	})

	for i, d := range slept {
		floor := p.BaseDelay << uint(i)
		assert.GreaterOrEqual(t, d, floor)
		assert.Less(t, d, floor+time.Second)
	}
}

func TestRetrySucceedsMidway(t *testing.T) {
	var slept []time.Duration
	p := testPolicy(&slept)

	calls := 0
	err := p.Do(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return rateLimitErr()
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Len(t, slept, 2)
}

func TestRetryDoesNotRetryHardFailures(t *testing.T) {
	var slept []time.Duration
	p := testPolicy(&slept)

	hardErr := &openai.APIError{HTTPStatusCode: http.StatusBadRequest, Message: "bad request"}
	calls := 0
	err := p.Do(context.Background(), func(context.Context) error {
		calls++
		return hardErr
	})

	assert.ErrorIs(t, err, hardErr)
	assert.Equal(t, 1, calls)
	assert.Empty(t, slept)
}

func TestRetryStopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := RetryPolicy{
		MaxAttempts: 4,
		BaseDelay:   2 * time.Second,
		sleep: func(ctx context.Context, _ time.Duration) error {
			cancel()
			return ctx.Err()
		},
	}

	calls := 0
	err := p.Do(ctx, func(context.Context) error {
		calls++
		return rateLimitErr()
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(&openai.APIError{HTTPStatusCode: http.StatusTooManyRequests}))
	assert.True(t, IsRetryable(&openai.APIError{HTTPStatusCode: http.StatusServiceUnavailable}))
	assert.True(t, IsRetryable(&openai.RequestError{HTTPStatusCode: http.StatusTooManyRequests}))
	assert.False(t, IsRetryable(&openai.APIError{HTTPStatusCode: http.StatusInternalServerError}))
	assert.False(t, IsRetryable(&openai.APIError{HTTPStatusCode: http.StatusBadRequest}))
	assert.False(t, IsRetryable(errors.New("plain failure")))
	assert.False(t, IsRetryable(nil))
}
