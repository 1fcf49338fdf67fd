package main

import (
	"log"

	"feedbridge/internal/api"
	"feedbridge/internal/config"
	"feedbridge/internal/database"
	"feedbridge/internal/logger"

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

	// Initialize snapshot cache; the API runs fine without it
	var cache *redis.Client
	if opts, err := redis.ParseURL(cfg.RedisURL); err != nil {
		logger.Warn("Invalid redis URL, running without snapshot cache: %v", err)
	} else {
		cache = redis.NewClient(opts)
	}

	// Initialize API server
	server := api.New(cfg, logger, db, cache)

	// Start server
	logger.Info("Starting API server on port " + cfg.APIPort)
	if err := server.Start(); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
