package supplier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock advances only when the limiter sleeps, so window rollover is
// fully deterministic.
type fakeClock struct {
	current time.Time
	slept   []time.Duration
}

func (c *fakeClock) now() time.Time { return c.current }

func (c *fakeClock) sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.current = c.current.Add(d)
}

func newTestLimiter(limit int) (*RateLimiter, *fakeClock) {
	clk := &fakeClock{current: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	l := NewRateLimiter(limit)
	l.now = clk.now
	l.sleep = clk.sleep
	return l, clk
}

func TestRateLimiterWithinQuota(t *testing.T) {
	l, clk := newTestLimiter(4)

	for i := 0; i < 4; i++ {
		l.Wait()
	}

	assert.Empty(t, clk.slept, "requests within quota must not sleep")
}

func TestRateLimiterDelaysExcessRequest(t *testing.T) {
	l, clk := newTestLimiter(4)

	// Quota + 1 requests inside the same second: the 5th is delayed into
	// the next window, never rejected.
	clk.current = clk.current.Add(250 * time.Millisecond)
	for i := 0; i < 5; i++ {
		l.Wait()
	}

	assert.Len(t, clk.slept, 1)
	assert.Equal(t, 750*time.Millisecond, clk.slept[0])
}

func TestRateLimiterWindowReset(t *testing.T) {
	l, clk := newTestLimiter(2)

	l.Wait()
	l.Wait()

	// A fresh second resets the quota without sleeping.
	clk.current = clk.current.Add(time.Second)
	l.Wait()

	assert.Empty(t, clk.slept)
}

func TestRateLimiterDisabled(t *testing.T) {
	l, clk := newTestLimiter(0)

	for i := 0; i < 100; i++ {
		l.Wait()
	}

	assert.Empty(t, clk.slept)
}
