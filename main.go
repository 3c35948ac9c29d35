// main.go
package main

import (
	"context"
	"log"
	"strings"

	"github.com/royalnordicfi/royalnordic/cmd"
	"github.com/royalnordicfi/royalnordic/internal/data/repository"
	"github.com/royalnordicfi/royalnordic/internal/notify"
	"github.com/royalnordicfi/royalnordic/internal/usecase"
	"github.com/royalnordicfi/royalnordic/internal/wire"
	"github.com/royalnordicfi/royalnordic/pkg/database"
	"github.com/royalnordicfi/royalnordic/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("db_driver", config.Database.Driver),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Pick the ledger backend
	var repos *repository.Repository
	switch strings.ToLower(config.Database.Driver) {
	case "memory":
		logger.Warn("Using in-memory storage; bookings will not survive a restart")
		repos = repository.NewMemoryRepository(logger)

	default:
		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		if err := database.EnsureSchema(ctx, db); err != nil {
			logger.Fatal("Failed to ensure schema", zap.Error(err))
		}
		logger.Info("Database connected successfully")

		repos = repository.NewRepository(db, logger)
	}

	// Notifier: real emails only when an API key is configured
	var notifier usecase.Notifier
	if config.Email.ResendAPIKey != "" {
		notifier = notify.NewEmailNotifier(config.Email.ResendAPIKey, config.Email.From, logger)
	} else {
		notifier = notify.NewLogNotifier(logger)
	}

	// Wire all dependencies
	app, err := wire.Wiring(repos, config, notifier, logger)
	if err != nil {
		logger.Fatal("Failed to wire application", zap.Error(err))
	}

	// Seed the default catalog on first run
	if err := app.Service.Tour.EnsureDefaults(ctx); err != nil {
		logger.Fatal("Failed to seed default tours", zap.Error(err))
	}

	// Background sweep of stale pending bookings
	go app.Service.Lifecycle.RunSweeper(ctx)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
