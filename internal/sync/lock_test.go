package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supplyline/catsync/internal/domain"
)

func TestLockAcquireRelease(t *testing.T) {
	l := NewLock(DefaultLockTTL)

	require.NoError(t, l.Acquire())
	assert.True(t, l.Held())

	assert.ErrorIs(t, l.Acquire(), domain.ErrLockHeld, "second acquire is rejected, not queued")

	l.Release()
	assert.False(t, l.Held())
	assert.NoError(t, l.Acquire())
}

func TestLockTTLExpiry(t *testing.T) {
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l := NewLock(10 * time.Minute)
	l.now = func() time.Time { return current }

	require.NoError(t, l.Acquire())

	current = current.Add(9 * time.Minute)
	assert.ErrorIs(t, l.Acquire(), domain.ErrLockHeld)

	// A crashed run's lock expires after the TTL.
	current = current.Add(2 * time.Minute)
	assert.False(t, l.Held())
	assert.NoError(t, l.Acquire())
}

func TestLockReleaseWhenNotHeld(t *testing.T) {
	l := NewLock(DefaultLockTTL)
	l.Release()
	assert.False(t, l.Held())
}
