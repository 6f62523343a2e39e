// Package main is the entry point for the Budget Planner API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/budget-planner/backend/config"
	"github.com/budget-planner/backend/internal/infra/db"
	"github.com/budget-planner/backend/internal/infra/dependency"
	"github.com/budget-planner/backend/internal/integration/persistence"
	"github.com/budget-planner/backend/internal/integration/persistence/localstore"
	"github.com/budget-planner/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting Budget Planner API",
		"environment", cfg.Server.Environment,
		"storage_driver", cfg.Storage.Driver,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Initialize the persistence backend
	repos, cleanup, err := buildRepositories(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	// Initialize Redis for refresh token storage
	redisClient, err := db.NewRedisClient(&cfg.Redis)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("Failed to close Redis connection", "error", err)
		}
	}()

	// Wire dependencies and set up the router
	injector := dependency.NewInjector(cfg, repos, redisClient)
	engine := injector.Router.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}

// buildRepositories constructs the persistence layer for the configured
// storage driver and returns a cleanup function for shutdown.
func buildRepositories(cfg *config.Config) (dependency.Repositories, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		database, err := db.NewPostgresConnection(&cfg.Database)
		if err != nil {
			return dependency.Repositories{}, nil, fmt.Errorf("postgres connection: %w", err)
		}

		if err := database.AutoMigrate(
			&model.UserModel{},
			&model.CategoryModel{},
			&model.GoalModel{},
			&model.TransactionModel{},
		); err != nil {
			_ = database.Close()
			return dependency.Repositories{}, nil, fmt.Errorf("database migrations: %w", err)
		}
		slog.Info("Database migrations completed successfully")

		cleanup := func() {
			if err := database.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}

		return dependency.Repositories{
			Users:        persistence.NewUserRepository(database.DB()),
			Transactions: persistence.NewTransactionRepository(database.DB()),
			Categories:   persistence.NewCategoryRepository(database.DB()),
			Goals:        persistence.NewGoalRepository(database.DB()),
		}, cleanup, nil

	case config.StorageDriverFile:
		store, err := localstore.Open(cfg.Storage.FilePath)
		if err != nil {
			return dependency.Repositories{}, nil, fmt.Errorf("file store: %w", err)
		}

		return dependency.Repositories{
			Users:        store.UserRepository(),
			Transactions: store.TransactionRepository(),
			Categories:   store.CategoryRepository(),
			Goals:        store.GoalRepository(),
		}, func() {}, nil

	default:
		return dependency.Repositories{}, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
