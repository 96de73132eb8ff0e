// Package bootstrap wires the seo-generator components together and manages
// their lifecycle.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/seo-generator/infrastructure/profiling"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/config"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/database"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/service"
	"github.com/jonesrussell/north-cloud/seo-generator/internal/telemetry"
)

// Serve runs the HTTP service until ctx is cancelled or a shutdown signal
// arrives.
func Serve(ctx context.Context, cfg *config.Config) error {
	// Phase 1: logger and profiling
	log, err := CreateLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	profiler, err := profiling.Start(cfg.Profiling, cfg.Service.Name, cfg.Service.Version, log)
	if err != nil {
		return fmt.Errorf("start profiling: %w", err)
	}
	defer func() {
		if stopErr := profiler.Stop(); stopErr != nil {
			log.Warn("Failed to stop profiler", logger.Error(stopErr))
		}
	}()

	// Phase 2: storage
	db, err := database.NewPostgresConnection(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("Failed to close database", logger.Error(closeErr))
		}
	}()
	repo := database.NewRepository(db)

	// Phase 3: optional side channels
	redisClient := SetupRedis(ctx, cfg, log)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}
	esClient := SetupElasticsearch(ctx, cfg, log)
	indexer := SetupIndexer(ctx, cfg, esClient, log)

	// Phase 4: generation pipeline and service
	tel := telemetry.NewProvider()
	pipeline, err := SetupPipeline(ctx, cfg, tel, log)
	if err != nil {
		return err
	}

	svc := service.New(service.Config{
		SiteURL:    cfg.Site.PublicURL,
		APIBaseURL: cfg.Site.APIBaseURL,
	}, service.Deps{
		Store:     repo,
		Generator: pipeline,
		Events:    SetupEventPublisher(cfg, redisClient, log),
		Indexer:   indexer,
		Pinger:    SetupPinger(cfg, log),
		Metrics:   tel,
		Logger:    log,
	})

	// Phase 5: HTTP server
	server := SetupHTTPServer(cfg, svc, tel, Checks{
		Database:      func() error { return repo.Ping(ctx) },
		Redis:         redisPing(ctx, redisClient),
		Elasticsearch: elasticsearchPing(ctx, esClient),
	}, log)

	if runErr := server.Run(ctx); runErr != nil {
		log.Error("Server error", logger.Error(runErr))
		return runErr
	}

	log.Info("Server exited")
	return nil
}
