package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"feedbridge/internal/config"
	walmartconn "feedbridge/internal/connectors/walmart"
	"feedbridge/internal/database"
	"feedbridge/internal/logger"
	"feedbridge/internal/services/shopify"
	"feedbridge/internal/store"
	"feedbridge/internal/syncer"
	"feedbridge/internal/worker"

	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}

	var cache *redis.Client
	if opts, err := redis.ParseURL(cfg.RedisURL); err != nil {
		logger.Warn("Invalid redis URL, running without snapshot cache: %v", err)
	} else {
		cache = redis.NewClient(opts)
	}

	// Wire the pipeline
	snapshots := store.NewSnapshotStore(db.DB, cache, logger)
	mappings := store.NewMappingStore(db.DB)
	exports := store.NewExportLogStore(db.DB)
	sourceClient := func(sourceURL, credential string) syncer.SourceClient {
		return shopify.NewClient(sourceURL, credential, cfg.ShopifyAPIVersion, logger)
	}
	orchestrator := syncer.New(cfg, logger, snapshots, mappings, exports, sourceClient, walmartconn.New(cfg, logger))

	// Initialize worker
	w := worker.New(cfg, logger, orchestrator)

	// Start worker
	logger.Info("Starting worker...")
	go w.Start()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker...")
	w.Stop()
}
