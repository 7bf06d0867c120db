package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/brightrock/efficiency-platform/internal/api/http/handlers"
	"github.com/brightrock/efficiency-platform/internal/app"
	"github.com/brightrock/efficiency-platform/internal/config"
	"github.com/brightrock/efficiency-platform/internal/observability"
	"github.com/brightrock/efficiency-platform/internal/persistence"
	"github.com/brightrock/efficiency-platform/internal/repository"
	"github.com/brightrock/efficiency-platform/internal/service"
	"github.com/brightrock/efficiency-platform/internal/storage"
	"github.com/brightrock/efficiency-platform/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.Pool, cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	dependencies := map[string]handlers.Pinger{}
	if pg.Enabled() {
		dependencies["postgres"] = pg
	}

	var store storage.Store
	switch cfg.Storage.Driver {
	case config.StorageDriverRedis:
		redis := persistence.NewRedis(ctx, cfg.Redis, logger)
		defer redis.Close()
		store = storage.NewRedisStore(redis.Client, cfg.Storage.TTL())
		dependencies["redis"] = redis
	default:
		store = storage.NewMemoryStore()
	}

	var repos repository.Repositories
	if pg.Enabled() {
		repos = repository.NewPostgresRepositories(pg.Pool, store, cfg.Storage.MockLatency())
	} else {
		repos = repository.NewStorageRepositories(store, cfg.Storage.MockLatency())
	}

	if cfg.Storage.SeedMockData {
		if err := service.NewSeeder(repos, logger).Seed(ctx); err != nil {
			logger.Fatal("failed to seed mock data", zap.Error(err))
		}
	}

	application := app.New(*cfg, logger, app.Infra{
		Store:        store,
		Repositories: repos,
		Dependencies: dependencies,
	})

	scheduler := worker.NewScheduler(logger)
	job := worker.NewTrainingStatusJob(application.Trainings, logger, cfg.App.RequestTimeout())
	if err := scheduler.Add("training-status", cfg.Jobs.TrainingStatusSpec, job); err != nil {
		logger.Fatal("failed to schedule jobs", zap.Error(err))
	}
	scheduler.Start()

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()))
		if err := application.Server.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	scheduler.Stop(shutdownCtx)
	if err := application.Server.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
