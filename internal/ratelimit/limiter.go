// Package ratelimit provides the blocking request-rate limiter shared by
// everything that talks to the Battle.net API.
//
// The upstream quota is per-credential, not per-goroutine, so one
// Limiter instance is created at startup and passed explicitly to every
// component that issues requests.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Limiter admits at most n acquisitions per window. Permits are spread
// evenly across the window (one every window/n), which is stricter than
// a fixed window: no window-length interval ever sees more than n
// completed acquisitions, regardless of how many goroutines share the
// instance.
type Limiter struct {
	lim *rate.Limiter
}

// New creates a Limiter allowing n acquisitions per window.
func New(n int, window time.Duration) *Limiter {
	if n < 1 {
		n = 1
	}
	if window <= 0 {
		window = time.Second
	}

	return &Limiter{
		lim: rate.NewLimiter(rate.Every(window/time.Duration(n)), 1),
	}
}

// Acquire blocks until a permit is available or ctx is done. It is safe
// for concurrent use; waiters are served in roughly FIFO order with no
// stronger fairness guarantee.
func (l *Limiter) Acquire(ctx context.Context) error {
	if err := l.lim.Wait(ctx); err != nil {
		return fmt.Errorf("wait for permit: %w", err)
	}
	return nil
}
