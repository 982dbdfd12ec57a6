package main

import (
	"context"
	"net/http"
	"os"
	"time"

	gorillahandlers "github.com/gorilla/handlers"

	"github.com/ChadiEch/ambassador-dashboard/internal/api"
	"github.com/ChadiEch/ambassador-dashboard/internal/cache"
	"github.com/ChadiEch/ambassador-dashboard/internal/config"
	"github.com/ChadiEch/ambassador-dashboard/internal/database"
	"github.com/ChadiEch/ambassador-dashboard/internal/handler"
	"github.com/ChadiEch/ambassador-dashboard/internal/logger"
	"github.com/ChadiEch/ambassador-dashboard/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Could not load config: %v", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	db, err := database.ConnectPostgres(cfg)
	if err != nil {
		logger.Error("Database connection failed: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	// Redis cache (optional)
	if err := cache.Connect(cfg); err != nil {
		logger.Error("Redis connection failed, cache disabled: %v", err)
	} else if cache.Client != nil {
		logger.Success("Redis cache connected")
	}

	// Cloudinary (optional, profile photos)
	if cfg.CloudinaryCloudName != "" {
		cld, err := services.NewCloudinaryService(cfg)
		if err != nil {
			logger.Error("Cloudinary init failed, photo uploads disabled: %v", err)
		} else {
			handler.Cloudinary = cld
		}
	}

	// Background roster refresher
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if _, err := handler.RefreshRoster(ctx); err != nil {
		logger.Error("Initial roster fetch failed: %v", err)
	}
	handler.StartRosterRefresher(ctx, time.Duration(cfg.SnapshotRefreshSeconds)*time.Second)

	// Initialize routes
	router := api.SetupRouter()

	// Wrap router with CORS middleware
	corsHandler := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins([]string{cfg.URL}),
		gorillahandlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(router)

	// Start server
	logger.Success("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, corsHandler); err != nil {
		logger.Error("Server failed: %v", err)
		os.Exit(1)
	}
}
