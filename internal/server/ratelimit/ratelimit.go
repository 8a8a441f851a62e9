// Package ratelimit implements fixed-window attempt counters keyed by an
// arbitrary string, typically a client IP.
package ratelimit

import (
	"context"
	"time"
)

// Limiter decides whether one more attempt under key fits in the current
// window. When it does not, retryAfter is the time left in the window.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// windowStart returns the start of the fixed window containing now.
func windowStart(now time.Time, window time.Duration) time.Time {
	return now.Truncate(window)
}
