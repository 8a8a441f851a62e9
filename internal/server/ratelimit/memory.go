package ratelimit

import (
	"context"
	"sync"
	"time"
)

type counter struct {
	start time.Time
	count int
}

// MemoryLimiter keeps counters in process memory. Counters are lost on
// restart and are not shared between replicas.
type MemoryLimiter struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	counters  map[string]*counter
	lastSweep time.Time
	now       func() time.Time
}

func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:    limit,
		window:   window,
		counters: make(map[string]*counter),
		now:      time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	start := windowStart(now, l.window)

	if start.After(l.lastSweep) {
		l.sweep(start)
		l.lastSweep = start
	}

	c, ok := l.counters[key]
	if !ok || c.start.Before(start) {
		c = &counter{start: start}
		l.counters[key] = c
	}

	if c.count >= l.limit {
		return false, start.Add(l.window).Sub(now), nil
	}

	c.count++
	return true, 0, nil
}

// sweep drops counters from earlier windows.
func (l *MemoryLimiter) sweep(start time.Time) {
	for k, c := range l.counters {
		if c.start.Before(start) {
			delete(l.counters, k)
		}
	}
}
