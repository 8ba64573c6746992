package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/team-collab-api/internal/auth"
	"github.com/yukikurage/team-collab-api/internal/config"
	"github.com/yukikurage/team-collab-api/internal/constants"
	"github.com/yukikurage/team-collab-api/internal/database"
	"github.com/yukikurage/team-collab-api/internal/logging"
	"github.com/yukikurage/team-collab-api/internal/router"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		logger.Error(ctx, "invalid configuration", "error", err)
		os.Exit(1)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Error(ctx, "failed to connect to database", "error", err, "driver", cfg.DBDriver)
		os.Exit(1)
	}

	// Run migrations
	if err := database.Migrate(ctx, db, cfg.DBDriver, logger); err != nil {
		logger.Error(ctx, "failed to run migrations", "error", err)
		os.Exit(1)
	}

	handler := router.New(router.Options{
		DB:           db,
		Tokens:       auth.NewTokenManager(cfg.JWTSecret, constants.TokenTTL),
		Logger:       logger,
		CORSOrigins:  cfg.CORSOrigins,
		SecureCookie: cfg.IsProduction(),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server
	logger.Info(ctx, "server starting", "port", cfg.Port, "mode", cfg.GinMode, "driver", cfg.DBDriver)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error(ctx, "server stopped", "error", err)
		os.Exit(1)
	}
}
