// Package reporter aggregates raw sync run records into the reporting
// buckets the status endpoints and CLI serve.
package reporter

import (
	"context"
	"fmt"
	"time"

	"github.com/supplyline/catsync/internal/domain"
	"github.com/supplyline/catsync/internal/repository"
)

// Window and cap per reporting range. Raw rows are kept per run; the caps
// bound what one stats response returns.
const (
	DailyWindowDays    = 14
	DailyBucketCap     = 30
	WeeklyWindowMonths = 3
	WeeklyBucketCap    = 12
	MonthlyWindowBack  = 12
	MonthlyBucketCap   = 12
)

// Service records finished runs and serves aggregated stats.
type Service struct {
	stats repository.Stats

	now func() time.Time
}

func New(stats repository.Stats) *Service {
	return &Service{stats: stats, now: time.Now}
}

// Record appends one row for a finished sync run.
func (s *Service) Record(ctx context.Context, record *domain.StatRecord) error {
	if record.StatDate.IsZero() {
		record.StatDate = s.now()
	}
	if record.RangeType == "" {
		record.RangeType = domain.StatRangeDaily
	}
	if err := s.stats.RecordRun(ctx, record); err != nil {
		return fmt.Errorf("recording run stats: %w", err)
	}
	return nil
}

// GetStats serves the requested range's reporting rows, most recent first.
// The daily range returns raw per-run rows untouched; weekly rolls runs up
// by ISO year-week and monthly by year-month.
func (s *Service) GetStats(ctx context.Context, statRange domain.StatRange) ([]domain.StatBucket, error) {
	now := s.now()

	var since time.Time
	var bucketCap int
	switch statRange {
	case domain.StatRangeWeekly:
		since = now.AddDate(0, -WeeklyWindowMonths, 0)
		bucketCap = WeeklyBucketCap
	case domain.StatRangeMonthly:
		since = now.AddDate(0, -MonthlyWindowBack, 0)
		bucketCap = MonthlyBucketCap
	default:
		since = now.AddDate(0, 0, -DailyWindowDays)
		bucketCap = DailyBucketCap
	}

	records, err := s.stats.GetRunsSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("loading run stats: %w", err)
	}

	// Records arrive most recent first; buckets keep that order.
	var buckets []domain.StatBucket
	if statRange != domain.StatRangeWeekly && statRange != domain.StatRangeMonthly {
		// Daily is per-run granularity: one row per run, no rollup, so two
		// runs on the same day stay distinct.
		for _, rec := range records {
			if len(buckets) >= bucketCap {
				break
			}
			buckets = append(buckets, domain.StatBucket{
				Period:          bucketKey(statRange, rec.StatDate),
				StatDate:        rec.StatDate,
				CreatedProducts: rec.CreatedProducts,
				UpdatedProducts: rec.UpdatedProducts,
				ErrorCount:      rec.ErrorCount,
				DurationSeconds: rec.DurationSeconds,
			})
		}
		return buckets, nil
	}

	index := make(map[string]int)
	for _, rec := range records {
		key := bucketKey(statRange, rec.StatDate)
		i, ok := index[key]
		if !ok {
			if len(buckets) >= bucketCap {
				break
			}
			index[key] = len(buckets)
			buckets = append(buckets, domain.StatBucket{Period: key, StatDate: rec.StatDate})
			i = index[key]
		}
		buckets[i].CreatedProducts += rec.CreatedProducts
		buckets[i].UpdatedProducts += rec.UpdatedProducts
		buckets[i].ErrorCount += rec.ErrorCount
		buckets[i].DurationSeconds += rec.DurationSeconds
	}
	return buckets, nil
}

// Prune drops rows older than the widest reporting window.
func (s *Service) Prune(ctx context.Context) (int, error) {
	cutoff := s.now().AddDate(0, -MonthlyWindowBack, 0)
	return s.stats.PruneRunsBefore(ctx, cutoff)
}

func bucketKey(statRange domain.StatRange, t time.Time) string {
	switch statRange {
	case domain.StatRangeWeekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case domain.StatRangeMonthly:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}
