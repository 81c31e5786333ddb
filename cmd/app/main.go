package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/supplyline/catsync/internal/config"
	"github.com/supplyline/catsync/internal/database"
	"github.com/supplyline/catsync/internal/database/postgres"
	"github.com/supplyline/catsync/internal/mapper"
	"github.com/supplyline/catsync/internal/reporter"
	"github.com/supplyline/catsync/internal/scheduler"
	"github.com/supplyline/catsync/internal/server"
	"github.com/supplyline/catsync/internal/supplier"
	"github.com/supplyline/catsync/internal/sync"
)

const (
	dbMaxConnections  = 10
	dbMaxConnIdleTime = 5 * time.Minute
	dbMaxConnLifetime = 30 * time.Minute

	shutdownTimeout = 15 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	if err := database.Migrate(cfg.GetDBConnString()); err != nil {
		slog.Error("Migration failed", "error", err)
		os.Exit(1)
	}

	dbPool, err := database.NewPool(cfg.GetDBConnString(), dbMaxConnections, dbMaxConnIdleTime, dbMaxConnLifetime)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// Supplier API client. Authentication is retried on demand by the sync
	// runs; a failure here only delays the first run, it should not kill
	// the process.
	client := supplier.NewClient(cfg.SupplierBaseURL, cfg.SupplierRegion, cfg.SupplierTimeout, cfg.SupplierRateLimit)
	authCtx, cancelAuth := context.WithTimeout(context.Background(), cfg.SupplierTimeout)
	if _, err := client.Authenticate(authCtx, cfg.SupplierEmail, cfg.SupplierPassword, ""); err != nil {
		slog.Warn("Supplier authentication failed at startup", "error", err)
	}
	cancelAuth()

	// Storage layer
	mappingRepo := postgres.NewMappingRepository(dbPool)
	statsRepo := postgres.NewStatsRepository(dbPool)
	settingsRepo := postgres.NewSettingsRepository(dbPool)
	productStore := postgres.NewProductRepository(dbPool)
	taxonomyStore := postgres.NewTaxonomyRepository(dbPool)
	mediaStore := postgres.NewMediaRepository(dbPool)

	// Mapping pipeline
	resolver := mapper.NewResolver(mappingRepo, productStore)
	categorySyncer := mapper.NewCategorySyncer(taxonomyStore)
	imageSyncer, err := mapper.NewImageSyncer(mediaStore)
	if err != nil {
		slog.Error("Image syncer init failed", "error", err)
		os.Exit(1)
	}
	productMapper := mapper.New(productStore, mappingRepo, resolver, categorySyncer, imageSyncer)

	// Orchestration
	reportService := reporter.New(statsRepo)
	lock := sync.NewLock(sync.DefaultLockTTL)
	syncService := sync.NewService(client, productMapper, categorySyncer, settingsRepo, reportService, lock)

	sched, err := scheduler.New(syncService)
	if err != nil {
		slog.Error("Scheduler init failed", "error", err)
		os.Exit(1)
	}
	if cfg.SchedulerEnabled {
		sched.Start()
		slog.Info("Scheduler started")
	} else {
		slog.Info("Scheduler disabled by configuration")
	}

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, syncService, reportService, client)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		slog.Error("Server failed", "error", err)
	case sig := <-stop:
		slog.Info("Shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if cfg.SchedulerEnabled {
		sched.Stop()
	}
	if err := srv.Stop(ctx); err != nil {
		slog.Error("Server forced shutdown", "error", err)
	}
	slog.Info("Server stopped")
}
