package reporter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supplyline/catsync/internal/domain"
	"github.com/supplyline/catsync/internal/repository"
)

var testNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func newTestReporter(t *testing.T) (*Service, *repository.Memory) {
	t.Helper()

	repo := repository.NewMemory()
	s := New(repo)
	s.now = func() time.Time { return testNow }
	return s, repo
}

func record(t *testing.T, s *Service, daysAgo, created, updated, errs int) {
	t.Helper()
	recordAt(t, s, testNow.AddDate(0, 0, -daysAgo), created, updated, errs)
}

func recordAt(t *testing.T, s *Service, at time.Time, created, updated, errs int) {
	t.Helper()

	err := s.Record(context.Background(), &domain.StatRecord{
		StatDate:        at,
		CreatedProducts: created,
		UpdatedProducts: updated,
		ErrorCount:      errs,
		DurationSeconds: 10,
	})
	require.NoError(t, err)
}

func TestGetStatsDailyReturnsRawRuns(t *testing.T) {
	s, _ := newTestReporter(t)

	record(t, s, 0, 5, 10, 1)
	recordAt(t, s, testNow.Add(-2*time.Hour), 2, 3, 0) // same day, earlier run
	record(t, s, 1, 7, 0, 0)
	record(t, s, 20, 99, 99, 99) // outside the 14-day window

	buckets, err := s.GetStats(context.Background(), domain.StatRangeDaily)
	require.NoError(t, err)
	require.Len(t, buckets, 3)

	// Two runs on the same day stay separate rows, most recent first.
	assert.Equal(t, "2026-03-15", buckets[0].Period)
	assert.Equal(t, 5, buckets[0].CreatedProducts)
	assert.Equal(t, 10, buckets[0].UpdatedProducts)
	assert.Equal(t, 1, buckets[0].ErrorCount)
	assert.Equal(t, 10, buckets[0].DurationSeconds)

	assert.Equal(t, "2026-03-15", buckets[1].Period)
	assert.Equal(t, 2, buckets[1].CreatedProducts)
	assert.Equal(t, 3, buckets[1].UpdatedProducts)

	assert.Equal(t, "2026-03-14", buckets[2].Period)
	assert.Equal(t, 7, buckets[2].CreatedProducts)
}

func TestGetStatsWeeklySumsAcrossDays(t *testing.T) {
	s, _ := newTestReporter(t)

	// Three runs inside the same ISO week (Mar 9-15 2026 is week 11).
	record(t, s, 0, 2, 0, 0)
	record(t, s, 2, 1, 0, 0)
	record(t, s, 4, 3, 0, 0)
	// One run the week before.
	record(t, s, 8, 10, 0, 0)

	buckets, err := s.GetStats(context.Background(), domain.StatRangeWeekly)
	require.NoError(t, err)
	require.Len(t, buckets, 2)

	assert.Equal(t, "2026-W11", buckets[0].Period)
	assert.Equal(t, 6, buckets[0].CreatedProducts, "per-day counts sum into the week bucket")
	assert.Equal(t, "2026-W10", buckets[1].Period)
	assert.Equal(t, 10, buckets[1].CreatedProducts)
}

func TestGetStatsMonthly(t *testing.T) {
	s, _ := newTestReporter(t)

	record(t, s, 1, 4, 0, 0)
	record(t, s, 40, 6, 0, 0) // early February

	buckets, err := s.GetStats(context.Background(), domain.StatRangeMonthly)
	require.NoError(t, err)
	require.Len(t, buckets, 2)
	assert.Equal(t, "2026-03", buckets[0].Period)
	assert.Equal(t, "2026-02", buckets[1].Period)
}

func TestGetStatsOrderedMostRecentFirst(t *testing.T) {
	s, _ := newTestReporter(t)

	record(t, s, 3, 1, 0, 0)
	record(t, s, 1, 1, 0, 0)
	record(t, s, 2, 1, 0, 0)

	buckets, err := s.GetStats(context.Background(), domain.StatRangeDaily)
	require.NoError(t, err)
	require.Len(t, buckets, 3)
	assert.Equal(t, "2026-03-14", buckets[0].Period)
	assert.Equal(t, "2026-03-13", buckets[1].Period)
	assert.Equal(t, "2026-03-12", buckets[2].Period)
}

func TestGetStatsDailyCap(t *testing.T) {
	s, _ := newTestReporter(t)

	// More runs inside the window than one response may return.
	for i := 0; i < DailyBucketCap+5; i++ {
		recordAt(t, s, testNow.Add(-time.Duration(i)*time.Hour), 1, 0, 0)
	}

	buckets, err := s.GetStats(context.Background(), domain.StatRangeDaily)
	require.NoError(t, err)
	assert.Len(t, buckets, DailyBucketCap)
}

func TestPrune(t *testing.T) {
	s, repo := newTestReporter(t)

	record(t, s, 1, 1, 0, 0)
	err := s.Record(context.Background(), &domain.StatRecord{
		StatDate: testNow.AddDate(-2, 0, 0), CreatedProducts: 1,
	})
	require.NoError(t, err)

	pruned, err := s.Prune(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, pruned)

	remaining, err := repo.GetRunsSince(context.Background(), time.Time{})
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestRecordDefaults(t *testing.T) {
	s, repo := newTestReporter(t)

	require.NoError(t, s.Record(context.Background(), &domain.StatRecord{CreatedProducts: 1}))

	rows, err := repo.GetRunsSince(context.Background(), time.Time{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, testNow, rows[0].StatDate)
	assert.Equal(t, domain.StatRangeDaily, rows[0].RangeType)
}
