package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/fitness-score-server/internal/api"
	"github.com/fitness-score-server/internal/config"
	"github.com/fitness-score-server/internal/database"
	"github.com/fitness-score-server/internal/history"
	"github.com/fitness-score-server/internal/repository"
	"github.com/fitness-score-server/internal/service"
)

func main() {
	// Load configuration
	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	cfg := configManager.GetConfig()
	logger := newLogger(cfg.Logging.Level, cfg.Logging.Format)

	logger.WithFields(logrus.Fields{
		"host":    cfg.Server.Host,
		"port":    cfg.Server.Port,
		"backend": cfg.History.Backend,
	}).Info("Starting fitness score server")

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, trends, cleanup, err := openHistoryBackend(ctx, configManager, logger)
	if err != nil {
		logger.Fatalf("Failed to open history backend: %v", err)
	}
	defer cleanup()

	cacheSize := 0
	if cfg.Cache.Enabled {
		cacheSize = cfg.Cache.Size
	}
	scorer := service.NewScorer(logger, cacheSize)

	server := api.NewServer(cfg, logger, scorer, store, trends)

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, gracefully shutting down")
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		logger.Fatalf("Server failed: %v", err)
	}

	logger.Info("Server stopped")
}

// openHistoryBackend wires the configured storage backend. SQLite runs
// standalone; postgres additionally runs migrations and opens a pgx pool for
// the trend repository. A circuit breaker wraps the postgres store so a
// failing database degrades cleanly.
func openHistoryBackend(
	ctx context.Context,
	configManager *config.Manager,
	logger *logrus.Logger,
) (history.Store, *repository.TrendRepository, func(), error) {
	cfg := configManager.GetConfig()

	switch cfg.History.Backend {
	case "postgres":
		runner, err := database.NewMigrationRunner(
			configManager.GetDatabaseURL(), cfg.Database.MigrationsPath, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := runner.Up(); err != nil {
			runner.Close()
			return nil, nil, nil, err
		}
		runner.Close()

		store, err := history.NewPostgresStoreFromURL(configManager.GetDatabaseURL())
		if err != nil {
			return nil, nil, nil, err
		}

		pool, err := database.NewConnection(ctx, cfg.Database, logger)
		if err != nil {
			store.Close()
			return nil, nil, nil, err
		}

		trends := repository.NewTrendRepository(pool.Pool, logger)
		wrapped := history.NewBreakerStore(store, logger)
		cleanup := func() {
			pool.Close()
			wrapped.Close()
		}
		return wrapped, trends, cleanup, nil

	default: // sqlite
		store, err := history.NewSQLiteStore(cfg.History.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		return store, nil, func() { store.Close() }, nil
	}
}

func newLogger(level, format string) *logrus.Logger {
	logger := logrus.New()

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)

	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}
