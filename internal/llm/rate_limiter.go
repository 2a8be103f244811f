package llm

import (
	"context"
	"time"
)

// RateLimiter smooths outgoing calls to a fixed rate using a ticker
// feeding a non-blocking token channel.
type RateLimiter struct {
	ticker   *time.Ticker
	requests chan struct{}
}

// NewRateLimiter builds a limiter admitting requestsPerSecond calls/s.
func NewRateLimiter(requestsPerSecond float64) *RateLimiter {
	interval := time.Duration(float64(time.Second) / requestsPerSecond)

	rl := &RateLimiter{
		ticker:   time.NewTicker(interval),
		requests: make(chan struct{}),
	}

	go func() {
		for range rl.ticker.C {
			select {
			case rl.requests <- struct{}{}:
			default:
			}
		}
	}()

	return rl
}

// Wait blocks until the rate limiter admits the next request or ctx is
// canceled.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	select {
	case <-rl.requests:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop releases the underlying ticker.
func (rl *RateLimiter) Stop() {
	rl.ticker.Stop()
	close(rl.requests)
}
