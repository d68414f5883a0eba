package github

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_UpdateFromResponse(t *testing.T) {
	limiter := NewRateLimiter()

	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set(headerRateRemaining, "42")
	resp.Header.Set(headerRateLimit, "5000")
	resp.Header.Set(headerRateReset, "1700000000")

	limiter.UpdateFromResponse(resp)

	assert.Equal(t, 42, limiter.Remaining())
	assert.Equal(t, 5000, limiter.Limit())
	assert.Equal(t, time.Unix(1700000000, 0), limiter.ResetTime())
}

func TestRateLimiter_IgnoresMissingHeaders(t *testing.T) {
	limiter := NewRateLimiter()

	limiter.UpdateFromResponse(&http.Response{Header: http.Header{}})

	assert.Equal(t, authenticatedRateLimit, limiter.Remaining())
	assert.Equal(t, authenticatedRateLimit, limiter.Limit())
}

func TestRateLimiter_IgnoresNilResponse(t *testing.T) {
	limiter := NewRateLimiter()

	limiter.UpdateFromResponse(nil)

	assert.Equal(t, authenticatedRateLimit, limiter.Remaining())
}

func TestRateLimiter_WaitWithQuota(t *testing.T) {
	limiter := NewRateLimiter()

	// Full quota: only the token bucket applies, which allows the first
	// request immediately.
	start := time.Now()
	err := limiter.Wait(context.Background())

	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRateLimiter_WaitRespectsContext(t *testing.T) {
	limiter := NewRateLimiter()

	// Exhausted quota with a far-off reset: Wait must give up when the
	// context is cancelled instead of sleeping until the reset.
	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set(headerRateRemaining, "0")
	resp.Header.Set(headerRateReset, strconv.FormatInt(time.Now().Add(time.Hour).Unix(), 10))
	limiter.UpdateFromResponse(resp)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
