package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supplyline/catsync/internal/domain"
	"github.com/supplyline/catsync/internal/reporter"
	"github.com/supplyline/catsync/internal/repository"
	"github.com/supplyline/catsync/internal/supplier"
	"github.com/supplyline/catsync/internal/sync"
)

type noopClient struct{}

func (noopClient) GetCategories(context.Context) ([]domain.RemoteCategory, error) {
	return nil, nil
}

func (noopClient) GetProducts(context.Context, supplier.ProductsQuery) (*supplier.ProductsPage, error) {
	return &supplier.ProductsPage{}, nil
}

type countingMapper struct {
	calls int
}

func (m *countingMapper) MapProduct(context.Context, *domain.RemoteProduct, domain.SyncSettings) (domain.MapResult, error) {
	m.calls++
	return domain.MapResult{}, nil
}

type noopCategories struct{}

func (noopCategories) SyncTree(context.Context, []domain.RemoteCategory, uint64) int { return 0 }

func newTestScheduler(t *testing.T) (*Scheduler, *sync.Lock) {
	t.Helper()

	repo := repository.NewMemory()
	lock := sync.NewLock(sync.DefaultLockTTL)
	service := sync.NewService(noopClient{}, &countingMapper{}, noopCategories{}, repo, reporter.New(repo), lock)

	sched, err := New(service)
	require.NoError(t, err)
	return sched, lock
}

func TestNewRegistersBothJobs(t *testing.T) {
	sched, _ := newTestScheduler(t)

	assert.Len(t, sched.cron.Entries(), 2)
}

func TestTriggerRunsSync(t *testing.T) {
	sched, lock := newTestScheduler(t)

	sched.trigger(false, true)

	// Lock must be free again once the run completes
	assert.False(t, lock.Held())
}

func TestTriggerSkipsWhenLockHeld(t *testing.T) {
	sched, lock := newTestScheduler(t)
	require.NoError(t, lock.Acquire())

	// Must not panic or block; the held lock means a run is in flight
	sched.trigger(false, true)

	assert.True(t, lock.Held())
}
