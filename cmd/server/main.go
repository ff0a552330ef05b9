package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/genelingua/pgs-server/internal/api"
	"github.com/genelingua/pgs-server/internal/cache"
	"github.com/genelingua/pgs-server/internal/config"
	"github.com/genelingua/pgs-server/internal/engine"
	"github.com/genelingua/pgs-server/internal/history"
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
	logger := newLogger(cfg.Logging)

	// Report cache: in-process LRU, optionally backed by Redis.
	reportCache, err := buildCache(cfg.Cache, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize cache")
	}
	defer reportCache.Close()

	// Report history store.
	store, err := buildStore(cfg.History)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize history store")
	}
	if store != nil {
		defer store.Close()
	}

	eng := engine.New(logger)
	server := api.NewServer(configManager, eng, reportCache, store, logger)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, gracefully shutting down server...")
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		logger.WithError(err).Fatal("Server failed")
	}

	logger.Info("Server stopped")
}

func newLogger(cfg config.LoggingConfig) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}

func buildCache(cfg config.CacheConfig, logger *logrus.Logger) (cache.ReportCache, error) {
	hot, err := cache.NewMemoryCache(cfg.MemorySize)
	if err != nil {
		return nil, err
	}

	if cfg.RedisURL == "" {
		return hot, nil
	}

	warm, err := cache.NewRedisCache(cfg.RedisURL, cfg.TTL, logger)
	if err != nil {
		// A dead Redis should not keep the server down.
		logger.WithError(err).Warn("Redis unavailable, running with memory cache only")
		return hot, nil
	}

	return cache.NewTiered(hot, warm), nil
}

func buildStore(cfg config.HistoryConfig) (history.Store, error) {
	switch cfg.Backend {
	case "sqlite":
		return history.NewSQLiteStore(cfg.SQLitePath)
	case "postgres":
		return history.NewPostgresStoreFromURL(cfg.PostgresURL)
	default:
		return nil, nil
	}
}
