package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	"github.com/couchcryptid/fbp-service/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/fbp-service/internal/adapter/kafka"
	"github.com/couchcryptid/fbp-service/internal/adapter/mapbox"
	"github.com/couchcryptid/fbp-service/internal/adapter/sqlite"
	"github.com/couchcryptid/fbp-service/internal/config"
	"github.com/couchcryptid/fbp-service/internal/domain"
	"github.com/couchcryptid/fbp-service/internal/observability"
	"github.com/couchcryptid/fbp-service/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	if err := run(cfg, logger, metrics); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) error {
	// Elevation enrichment is feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN.
	var elevation domain.ElevationSource
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		elevation = mapbox.NewCachedElevation(client, cfg.MapboxCacheSize, metrics)
		metrics.ElevationEnabled.Set(1)
		logger.Info("mapbox elevation enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox elevation disabled")
	}

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(elevation, cfg.DefaultFuelTypes, logger)

	loaders := []pipeline.BatchLoader{writer}
	var store httpadapter.PredictionStore
	var archive *sqlite.Archive
	if cfg.ArchiveEnabled() {
		db, err := sqlite.Open(cfg.ArchiveDBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		archive = sqlite.NewArchive(db, metrics)
		loaders = append(loaders, archive)
		store = archive
		logger.Info("prediction archive enabled", "path", cfg.ArchiveDBPath)
	}

	p := pipeline.New(reader, transformer, pipeline.NewFanOutLoader(loaders...), logger, metrics, cfg.BatchSize)

	checks := []sharedobs.ReadinessChecker{p}
	if archive != nil {
		checks = append(checks, archive)
	}
	srv := httpadapter.NewServer(cfg.HTTPAddr, httpadapter.AllReady(checks...), transformer, store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	pipelineDone := make(chan struct{})
	go func() {
		defer close(pipelineDone)
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	// The reader, writer and archive stay open until the in-flight batch finishes.
	if err := awaitPipeline(shutdownCtx, pipelineDone); err != nil {
		logger.Error("pipeline shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}

func awaitPipeline(ctx context.Context, done <-chan struct{}) error {
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for pipeline: %w", ctx.Err())
	}
}
