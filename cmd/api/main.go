package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/andresuchdata/orderwrapped/backend-go/internal/cache"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/config"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/drive"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/ingest"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/service"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/storage"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/wrapped"
	"github.com/andresuchdata/orderwrapped/backend-go/pkg/logger"
)

// Standalone Drive bridge: lists and downloads export CSVs from Google Drive
// and pushes them through the wrapped pipeline. Runs separately from the main
// API server because it needs service-account credentials.
func main() {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize Google Drive service
	driveService, err := drive.NewService(os.Getenv("GOOGLE_DRIVE_CREDENTIALS_JSON"))
	if err != nil {
		log.Fatalf("Failed to initialize Google Drive service: %v", err)
	}

	// Snapshot storage carries persistence; no database in this binary
	snapshotStore, err := storage.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize snapshot storage: %v", err)
	}

	parser := ingest.NewParser(logger.For("ingest"))
	engine := wrapped.NewEngine(logger.For("wrapped"), cfg.App.Limits)
	wrappedService := service.NewWrappedService(parser, engine, nil, snapshotStore, cache.NewNoopStatsCache(), logger.For("service"))
	fetchService := drive.NewFetchService(driveService, wrappedService, cfg.App.UploadDir, logger.For("drive"))

	// Create router
	r := mux.NewRouter()

	// Register routes
	driveHandler := drive.NewHandler(driveService, fetchService)
	driveHandler.RegisterRoutes(r)

	// Health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server starting on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
