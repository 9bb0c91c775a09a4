package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mini-inventory/internal/config"
	"mini-inventory/internal/database"
	"mini-inventory/internal/handler"
	"mini-inventory/internal/inventory"
	"mini-inventory/internal/journal"
	"mini-inventory/internal/metrics"
	"mini-inventory/internal/report"
	"mini-inventory/internal/repository"
	"mini-inventory/internal/router"
	"mini-inventory/internal/seed"
	"mini-inventory/internal/service"
	"mini-inventory/internal/validation"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting mini-inventory API server")

	shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeout) * time.Second

	var opts []inventory.Option

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector()
		opts = append(opts, inventory.WithObservers(collector))
	}

	manager := inventory.NewManager(inventory.UUIDGenerator{}, opts...)

	// Activity journal (optional)
	var (
		activityService service.ActivityService
		dbPinger        database.Pinger
	)
	if cfg.Journal.Enabled {
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer pool.Close()
		dbPinger = pool

		eventRepo := repository.NewEventRepository(pool, logger)
		if err := eventRepo.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to prepare journal schema: %w", err)
		}

		recorder := journal.NewRecorder(eventRepo, journal.Options{
			BufferSize:    cfg.Journal.BufferSize,
			BatchSize:     cfg.Journal.BatchSize,
			FlushInterval: cfg.Journal.FlushInterval(),
		}, logger)
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = recorder.Close(closeCtx)
		}()
		manager.Subscribe(recorder)

		activityService = service.NewActivityService(eventRepo, logger)
	} else {
		logger.Info().Msg("activity journal disabled")
	}

	// Initialize services
	inventoryService := service.NewInventoryService(manager, validation.NewProductValidator(), cfg.Inventory, logger)

	// Start-up catalogue import (optional)
	if cfg.Seed.Enabled {
		loader := newSeedLoader(ctx, cfg, logger)
		importer := seed.NewImporter(loader, inventoryService, logger)
		if _, err := importer.Import(ctx, cfg.Seed.Files); err != nil {
			return fmt.Errorf("failed to import seed files: %w", err)
		}
	}

	// Scheduled stock report (optional)
	if cfg.Report.Enabled {
		scheduler := report.NewScheduler(inventoryService, cfg.Report.Schedule, logger)
		if err := scheduler.Start(); err != nil {
			return fmt.Errorf("failed to start report scheduler: %w", err)
		}
		defer scheduler.Stop()
	}

	// Initialize HTTP handlers and router
	mux := router.New(router.Handlers{
		Product: handler.NewProductHandler(inventoryService, logger),
		Editing: handler.NewEditingHandler(inventoryService, logger),
		Report:  handler.NewReportHandler(inventoryService, activityService, logger),
		Health:  handler.NewHealthHandler(dbPinger, logger),
		Metrics: collector,
	}, cfg.Auth.APIKey, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info().Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// newSeedLoader builds the S3-with-local-fallback loader, or a local loader
// when S3 is disabled or cannot be initialised.
func newSeedLoader(ctx context.Context, cfg *config.Config, logger zerolog.Logger) seed.Loader {
	fileLoader := seed.NewFileLoader(logger)

	if !cfg.S3.Enabled {
		logger.Info().Msg("using local file system for seed files (S3 disabled)")
		return fileLoader
	}

	s3Loader, err := seed.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 loader, falling back to local file system only")
		return fileLoader
	}

	return seed.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, true, logger)
}
