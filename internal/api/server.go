package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"feedbridge/internal/api/handlers"
	"feedbridge/internal/api/middleware"
	"feedbridge/internal/config"
	walmartconn "feedbridge/internal/connectors/walmart"
	"feedbridge/internal/database"
	"feedbridge/internal/events"
	"feedbridge/internal/logger"
	"feedbridge/internal/services/shopify"
	"feedbridge/internal/store"
	"feedbridge/internal/syncer"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	config *config.Config
	logger *logger.Logger
	db     *database.Database
	router *gin.Engine
	server *http.Server
}

func New(cfg *config.Config, logger *logger.Logger, db *database.Database, cache *redis.Client) *Server {
	// Set Gin mode
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	// Stores
	tenants := store.NewTenantStore(db.DB)
	snapshots := store.NewSnapshotStore(db.DB, cache, logger)
	mappings := store.NewMappingStore(db.DB)
	exports := store.NewExportLogStore(db.DB)

	// Pipeline
	sourceClient := func(sourceURL, credential string) syncer.SourceClient {
		return shopify.NewClient(sourceURL, credential, cfg.ShopifyAPIVersion, logger)
	}
	orchestrator := syncer.New(cfg, logger, snapshots, mappings, exports, sourceClient, walmartconn.New(cfg, logger))
	publisher := events.NewPublisher(cfg, logger)

	// Initialize handlers
	tenantHandler := handlers.NewTenantHandler(tenants, cfg, logger)
	syncHandler := handlers.NewSyncHandler(orchestrator, publisher, logger)
	mappingHandler := handlers.NewMappingHandler(mappings, snapshots, logger)
	snapshotHandler := handlers.NewSnapshotHandler(snapshots, logger)
	exportHandler := handlers.NewExportHandler(exports, logger)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/tenants", tenantHandler.Create)

		authed := v1.Group("")
		authed.Use(middleware.TenantAuth(cfg.JWTSecret))
		{
			authed.POST("/sync", syncHandler.Sync)

			authed.GET("/snapshots", snapshotHandler.List)

			mappingsGroup := authed.Group("/mappings")
			{
				mappingsGroup.GET("", mappingHandler.List)
				mappingsGroup.PUT("/:targetProductId", mappingHandler.Save)
				mappingsGroup.POST("/:targetProductId/preview", mappingHandler.Preview)
			}

			authed.GET("/exports", exportHandler.List)
		}
	}

	return &Server{
		config: cfg,
		logger: logger,
		db:     db,
		router: router,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server on " + addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}
