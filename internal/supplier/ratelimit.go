package supplier

import (
	"sync"
	"time"
)

// RateLimiter throttles outbound supplier calls to a fixed per-second quota.
// It is cooperative: when the current second's quota is spent the caller
// sleeps out the remainder of the window instead of being rejected.
//
// The clock and sleep functions are injectable so tests can drive the window
// deterministically.
type RateLimiter struct {
	mu    sync.Mutex
	limit int

	windowStart time.Time
	count       int

	now   func() time.Time
	sleep func(time.Duration)
}

// NewRateLimiter creates a limiter allowing limit calls per wall-clock second.
// A limit <= 0 disables throttling.
func NewRateLimiter(limit int) *RateLimiter {
	return &RateLimiter{
		limit: limit,
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// Wait blocks until the caller may issue the next request.
func (l *RateLimiter) Wait() {
	if l == nil || l.limit <= 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	window := now.Truncate(time.Second)

	if !window.Equal(l.windowStart) {
		l.windowStart = window
		l.count = 0
	}

	if l.count >= l.limit {
		remainder := l.windowStart.Add(time.Second).Sub(now)
		if remainder > 0 {
			l.sleep(remainder)
		}
		l.windowStart = l.now().Truncate(time.Second)
		l.count = 0
	}

	l.count++
}
