package repository

import (
	"context"
	"time"

	"github.com/supplyline/catsync/internal/domain"
)

// Stats defines the interface for sync run statistics persistence
type Stats interface {
	RecordRun(ctx context.Context, record *domain.StatRecord) error
	GetRunsSince(ctx context.Context, since time.Time) ([]domain.StatRecord, error)
	PruneRunsBefore(ctx context.Context, cutoff time.Time) (int, error)
}
