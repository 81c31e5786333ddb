package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/supplyline/catsync/internal/domain"
	"github.com/supplyline/catsync/internal/repository"
)

type statsRepository struct {
	db *pgxpool.Pool
}

// NewStatsRepository creates a new PostgreSQL sync stats repository
func NewStatsRepository(db *pgxpool.Pool) repository.Stats {
	return &statsRepository{db: db}
}

// RecordRun appends one row for a finished sync run
func (r *statsRepository) RecordRun(ctx context.Context, record *domain.StatRecord) error {
	query := `
		INSERT INTO sync_stats (stat_date, range_type, created_products, updated_products, error_count, duration_seconds)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	statDate := record.StatDate
	if statDate.IsZero() {
		statDate = time.Now()
	}
	rangeType := record.RangeType
	if rangeType == "" {
		rangeType = domain.StatRangeDaily
	}

	_, err := r.db.Exec(ctx, query,
		statDate,
		rangeType,
		record.CreatedProducts,
		record.UpdatedProducts,
		record.ErrorCount,
		record.DurationSeconds,
	)
	if err != nil {
		return fmt.Errorf("%s sync stat: %w", ErrMsgFailedToInsert, err)
	}
	return nil
}

// GetRunsSince returns raw run rows at or after the cutoff, most recent first
func (r *statsRepository) GetRunsSince(ctx context.Context, since time.Time) ([]domain.StatRecord, error) {
	query := `
		SELECT stat_date, range_type, created_products, updated_products, error_count, duration_seconds
		FROM sync_stats
		WHERE stat_date >= $1
		ORDER BY stat_date DESC
	`

	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("%s sync stats: %w", ErrMsgFailedToQuery, err)
	}
	defer rows.Close()

	var records []domain.StatRecord
	for rows.Next() {
		var rec domain.StatRecord
		if err := rows.Scan(&rec.StatDate, &rec.RangeType, &rec.CreatedProducts, &rec.UpdatedProducts, &rec.ErrorCount, &rec.DurationSeconds); err != nil {
			return nil, fmt.Errorf("%s sync stat: %w", ErrMsgFailedToScan, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s sync stats: %w", ErrMsgFailedToQuery, err)
	}
	return records, nil
}

// PruneRunsBefore removes rows older than the cutoff and reports how many
func (r *statsRepository) PruneRunsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM sync_stats WHERE stat_date < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%s sync stats: %w", ErrMsgFailedToDelete, err)
	}
	return int(result.RowsAffected()), nil
}
