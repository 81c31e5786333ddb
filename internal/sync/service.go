// Package sync holds the run orchestrator: it owns the single-flight lock,
// drives category and paginated product sync, and guarantees stat recording
// and lock release on every exit path.
package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/supplyline/catsync/internal/domain"
	"github.com/supplyline/catsync/internal/logger"
	"github.com/supplyline/catsync/internal/metrics"
	"github.com/supplyline/catsync/internal/reporter"
	"github.com/supplyline/catsync/internal/repository"
	"github.com/supplyline/catsync/internal/supplier"
)

// CatalogueClient is the slice of the supplier API the orchestrator drives.
type CatalogueClient interface {
	GetCategories(ctx context.Context) ([]domain.RemoteCategory, error)
	GetProducts(ctx context.Context, query supplier.ProductsQuery) (*supplier.ProductsPage, error)
}

// ProductMapper upserts one remote product into the local catalogue.
type ProductMapper interface {
	MapProduct(ctx context.Context, remote *domain.RemoteProduct, settings domain.SyncSettings) (domain.MapResult, error)
}

// CategorySyncer mirrors the remote category tree onto local taxonomy.
type CategorySyncer interface {
	SyncTree(ctx context.Context, nodes []domain.RemoteCategory, parentID uint64) int
}

// Service orchestrates sync runs. All triggers (scheduler, HTTP, CLI,
// webhook) funnel into RunManualSync and surface its summary unchanged.
type Service struct {
	client     CatalogueClient
	mapper     ProductMapper
	categories CategorySyncer
	settings   repository.Settings
	reporter   *reporter.Service
	lock       *Lock

	now func() time.Time
}

func NewService(client CatalogueClient, productMapper ProductMapper, categories CategorySyncer, settings repository.Settings, rep *reporter.Service, lock *Lock) *Service {
	return &Service{
		client:     client,
		mapper:     productMapper,
		categories: categories,
		settings:   settings,
		reporter:   rep,
		lock:       lock,
		now:        time.Now,
	}
}

// RunManualSync performs one sync run. It acquires the run lock (failing
// fast with ErrLockHeld), optionally mirrors categories, then walks the
// paginated product listing. Per-product failures are counted, never fatal.
// The lock release, stat record and state markers run on every exit path,
// panics included.
func (s *Service) RunManualSync(ctx context.Context, syncCategories, syncProducts bool) (summary domain.RunSummary, err error) {
	if lockErr := s.lock.Acquire(); lockErr != nil {
		metrics.LockContention.Inc()
		return domain.RunSummary{}, lockErr
	}

	runID := logger.GenerateRunID()
	ctx = logger.WithRunID(ctx, runID)
	log := logger.FromContext(ctx)

	start := s.now()

	defer func() {
		r := recover()
		if r != nil {
			err = fmt.Errorf("sync run panicked: %v", r)
		}
		s.lock.Release()
		s.finishRun(ctx, &summary, start, err)
		if r != nil {
			panic(r)
		}

		if err != nil {
			metrics.SyncRuns.WithLabelValues("failure").Inc()
			log.Error("sync run failed", "error", err.Error())
			return
		}
		metrics.SyncRuns.WithLabelValues("success").Inc()
		log.Info("sync run finished",
			"created", summary.Created,
			"updated", summary.Updated,
			"errors", summary.Errors,
			"processed", summary.Processed,
			"categories", summary.Categories,
		)
	}()

	log.Info("sync run started", "categories", syncCategories, "products", syncProducts)

	summary, err = s.run(ctx, syncCategories, syncProducts)
	return summary, err
}

func (s *Service) run(ctx context.Context, syncCategories, syncProducts bool) (domain.RunSummary, error) {
	var summary domain.RunSummary

	settings := s.loadSettings(ctx)

	if syncCategories && settings.SyncCategories {
		tree, err := s.client.GetCategories(ctx)
		if err != nil {
			return summary, fmt.Errorf("fetching categories: %w", err)
		}
		summary.Categories = s.categories.SyncTree(ctx, tree, 0)
	}

	if syncProducts {
		if err := s.syncProducts(ctx, settings, &summary); err != nil {
			return summary, err
		}
	}

	return summary, nil
}

func (s *Service) syncProducts(ctx context.Context, settings domain.SyncSettings, summary *domain.RunSummary) error {
	log := logger.FromContext(ctx)

	page := 1
	for {
		result, err := s.client.GetProducts(ctx, supplier.ProductsQuery{
			Page:     page,
			PageSize: settings.PageSize,
			Detailed: true,
		})
		if err != nil {
			return fmt.Errorf("fetching products page %d: %w", page, err)
		}

		for i := range result.Data.Items {
			remote := &result.Data.Items[i]
			summary.Processed++

			mapped, err := s.mapper.MapProduct(ctx, remote, settings)
			if err != nil {
				summary.Errors++
				metrics.ProductErrors.Inc()
				log.Error("product sync failed",
					"supplier_product_id", remote.ProductID,
					"product_name", remote.ProductName,
					"error", err.Error(),
				)
				continue
			}
			if mapped.Created {
				summary.Created++
			} else {
				summary.Updated++
			}
		}

		// An empty page stops the walk even if the server claims more;
		// otherwise a miscounting supplier would loop us forever.
		if !result.Data.HasMore || len(result.Data.Items) == 0 {
			return nil
		}
		page++
	}
}

// finishRun records the stat row and state markers. Failures here are logged
// only; they must not mask the run's own outcome.
func (s *Service) finishRun(ctx context.Context, summary *domain.RunSummary, start time.Time, runErr error) {
	log := logger.FromContext(ctx)

	duration := s.now().Sub(start)
	metrics.SyncRunDuration.Observe(duration.Seconds())

	record := domain.StatRecord{
		StatDate:        start,
		RangeType:       domain.StatRangeDaily,
		CreatedProducts: summary.Created,
		UpdatedProducts: summary.Updated,
		ErrorCount:      summary.Errors,
		DurationSeconds: int(duration.Seconds()),
	}
	if runErr != nil {
		record.ErrorCount++
		summary.Errors++
	}
	if err := s.reporter.Record(ctx, &record); err != nil {
		log.Error("failed to record run stats", "error", err.Error())
	}

	// Stat retention rides along with every run instead of needing its own
	// schedule.
	if pruned, err := s.reporter.Prune(ctx); err != nil {
		log.Error("failed to prune run stats", "error", err.Error())
	} else if pruned > 0 {
		log.Info("pruned old run stats", "rows", pruned)
	}

	if runErr != nil {
		if err := s.settings.SetSetting(ctx, domain.SettingLastError, runErr.Error()); err != nil {
			log.Error("failed to persist last-error marker", "error", err.Error())
		}
		return
	}

	if err := s.settings.SetSetting(ctx, domain.SettingLastSync, s.now().UTC().Format(time.RFC3339)); err != nil {
		log.Error("failed to persist last-sync marker", "error", err.Error())
	}
	if err := s.settings.DeleteSetting(ctx, domain.SettingLastError); err != nil {
		log.Error("failed to clear last-error marker", "error", err.Error())
	}
}

// loadSettings reads the operator's sync configuration, falling back to the
// defaults on a missing or corrupt row.
func (s *Service) loadSettings(ctx context.Context) domain.SyncSettings {
	log := logger.FromContext(ctx)

	raw, err := s.settings.GetSetting(ctx, domain.SettingSyncConfig)
	if err != nil {
		if !errors.Is(err, domain.ErrSettingNotFound) {
			log.Warn("failed to load sync settings, using defaults", "error", err.Error())
		}
		return domain.DefaultSyncSettings()
	}

	settings := domain.DefaultSyncSettings()
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		log.Warn("corrupt sync settings, using defaults", "error", err.Error())
		return domain.DefaultSyncSettings()
	}
	if settings.PageSize <= 0 {
		settings.PageSize = supplier.DefaultPageSize
	}
	return settings
}

// SyncProduct maps a single supplier-pushed product update. Used by the
// webhook path; it does not take the run lock since a one-product upsert
// cannot conflict with the paginated walk's identity resolution.
func (s *Service) SyncProduct(ctx context.Context, remote *domain.RemoteProduct) (domain.MapResult, error) {
	ctx = logger.WithRunID(ctx, logger.GenerateRunID())
	return s.mapper.MapProduct(ctx, remote, s.loadSettings(ctx))
}

// Status reports the persisted run markers for the status endpoints.
type Status struct {
	Running   bool   `json:"running"`
	LastSync  string `json:"last_sync,omitempty"`
	LastError string `json:"last_error,omitempty"`
}

// GetStatus returns lock state and the last-run markers.
func (s *Service) GetStatus(ctx context.Context) Status {
	status := Status{Running: s.lock.Held()}

	if v, err := s.settings.GetSetting(ctx, domain.SettingLastSync); err == nil {
		status.LastSync = v
	}
	if v, err := s.settings.GetSetting(ctx, domain.SettingLastError); err == nil {
		status.LastError = v
	}
	return status
}

// ClearLock force-releases a stuck run lock. Operator escape hatch.
func (s *Service) ClearLock() {
	s.lock.Release()
}
