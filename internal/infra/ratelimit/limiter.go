package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter is a sliding-window rate limiter: at most maxCalls within any
// rolling window. The window is shared by every caller of the limited
// action. Allow has no side effect when it rejects.
type Limiter struct {
	mu       sync.Mutex
	maxCalls int
	window   time.Duration
	calls    []time.Time

	now func() time.Time // overridable in tests
}

func NewLimiter(maxCalls int, window time.Duration) *Limiter {
	if maxCalls <= 0 {
		maxCalls = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Limiter{maxCalls: maxCalls, window: window, now: time.Now}
}

// Allow reports whether one more call fits in the current window and, if so,
// records it.
func (l *Limiter) Allow(ctx context.Context) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	cutoff := now.Add(-l.window)
	kept := l.calls[:0]
	for _, t := range l.calls {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	l.calls = kept
	if len(l.calls) >= l.maxCalls {
		return false, nil
	}
	l.calls = append(l.calls, now)
	return true, nil
}
