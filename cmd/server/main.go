package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/emycrochet/storefront-api/internal/api"
	"github.com/emycrochet/storefront-api/internal/catalog"
	"github.com/emycrochet/storefront-api/internal/config"
	"github.com/emycrochet/storefront-api/internal/paypal"
	"github.com/emycrochet/storefront-api/internal/repository"
	"github.com/emycrochet/storefront-api/internal/repository/postgres"
	"github.com/emycrochet/storefront-api/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Event journal is optional; without a database the recorder is a no-op.
	var events repository.EventRecorder = repository.NewNoopRecorder()
	if cfg.Database.Enabled() {
		db, err := postgres.NewConnection(cfg.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := postgres.RunMigrations(db, cfg.Database.MigrationsPath); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
		events = postgres.NewEventRecorder(db, logger)
		logger.Info("Order event journal enabled", zap.String("db", cfg.Database.DBName))
	}
	defer events.Close()

	source := catalog.NewSource(cfg.Catalog, logger)
	provider := paypal.NewClient(cfg.PayPal, logger)
	orders := service.NewOrderService(source, provider, events, cfg.Currency, logger)

	router := api.NewRouter(cfg, orders, source, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Server starting",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.String("paypal_env", cfg.PayPal.Env),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	if cfg.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
	}
	if level, err := zap.ParseAtomicLevel(cfg.LogLevel); err == nil {
		zapCfg.Level = level
	}
	return zapCfg.Build()
}
