package sync

import (
	"sync"
	"time"

	"github.com/supplyline/catsync/internal/domain"
)

// DefaultLockTTL bounds how long a crashed run can block the next one.
const DefaultLockTTL = 10 * time.Minute

// Lock is the single-flight run lock. Acquire fails fast when a run is
// active; there is no queueing. The TTL is a safety net: an expired lock is
// treated as free.
type Lock struct {
	mu        sync.Mutex
	heldUntil time.Time

	ttl time.Duration
	now func() time.Time
}

func NewLock(ttl time.Duration) *Lock {
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	return &Lock{ttl: ttl, now: time.Now}
}

// Acquire takes the lock or returns ErrLockHeld immediately.
func (l *Lock) Acquire() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Before(l.heldUntil) {
		return domain.ErrLockHeld
	}
	l.heldUntil = now.Add(l.ttl)
	return nil
}

// Release frees the lock. Safe to call when not held.
func (l *Lock) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.heldUntil = time.Time{}
}

// Held reports whether an unexpired acquisition exists.
func (l *Lock) Held() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.now().Before(l.heldUntil)
}
