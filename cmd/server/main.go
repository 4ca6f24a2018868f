// backend-go/cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/orderwrapped/backend-go/internal/api"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/cache"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/config"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/ingest"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/repository"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/repository/postgres"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/service"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/storage"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/wrapped"
	"github.com/andresuchdata/orderwrapped/backend-go/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Database is optional; without it the snapshot store carries persistence
	var orderRepo repository.OrderRepository
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Database unavailable, running on snapshot storage only")
	} else {
		defer db.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to apply database schema")
		}
		cancel()
		orderRepo = postgres.NewOrderRepository(db)
	}

	// Snapshot store
	snapshotStore, err := storage.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize snapshot storage: %v", err)
	}

	// Stats cache falls back to noop when redis is unreachable
	statsCache, err := cache.NewStatsCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Stats cache unavailable, continuing without caching")
		statsCache = cache.NewNoopStatsCache()
	}

	// Initialize services
	parser := ingest.NewParser(logger.For("ingest"))
	engine := wrapped.NewEngine(logger.For("wrapped"), cfg.App.Limits)
	wrappedService := service.NewWrappedService(parser, engine, orderRepo, snapshotStore, statsCache, logger.For("service"))

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{
		WrappedService: wrappedService,
		UploadDir:      cfg.App.UploadDir,
	}, cfg.Server.AllowedOrigins)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
