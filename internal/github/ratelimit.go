package github

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/ghsearch-cli/internal/logger"
)

const (
	// authenticatedRateLimit is the authenticated core limit (5000/hour).
	authenticatedRateLimit = 5000

	// proactiveRate is the proactive throttle rate (~1.2 req/sec).
	proactiveRate = 1.2

	headerRateLimit     = "X-RateLimit-Limit"
	headerRateRemaining = "X-RateLimit-Remaining"
	headerRateReset     = "X-RateLimit-Reset"
)

// RateLimiter throttles outgoing requests proactively and tracks the
// server-reported quota from response headers. Quota budgeting across a
// whole search is the orchestrator's job; the limiter only keeps a single
// run from hammering the API or calling into an exhausted quota.
type RateLimiter struct {
	mu        sync.Mutex
	remaining int
	limit     int
	resetTime time.Time
	bucket    *rate.Limiter
}

// NewRateLimiter creates a rate limiter assuming a full quota until the
// first response headers arrive.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		remaining: authenticatedRateLimit,
		limit:     authenticatedRateLimit,
		bucket:    rate.NewLimiter(rate.Limit(proactiveRate), 1),
	}
}

// Wait blocks until it is safe to issue the next request. When the server
// reports the quota exhausted it waits for the reset.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	remaining := r.remaining
	resetTime := r.resetTime
	r.mu.Unlock()

	if remaining == 0 && time.Now().Before(resetTime) {
		logger.Debug("rate limit exhausted, waiting until %s", resetTime.Format(time.RFC3339))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(resetTime)):
		}
	}

	return nil
}

// UpdateFromResponse records quota state from response headers.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if v := resp.Header.Get(headerRateRemaining); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			r.remaining = n
		}
	}
	if v := resp.Header.Get(headerRateLimit); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			r.limit = n
		}
	}
	if v := resp.Header.Get(headerRateReset); v != "" {
		if ts, err := strconv.ParseInt(v, 10, 64); err == nil {
			r.resetTime = time.Unix(ts, 0)
		}
	}
}

// Remaining returns the last server-reported remaining request count.
func (r *RateLimiter) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining
}

// Limit returns the last server-reported request limit.
func (r *RateLimiter) Limit() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.limit
}

// ResetTime returns the last server-reported quota reset time.
func (r *RateLimiter) ResetTime() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resetTime
}
