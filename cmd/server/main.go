package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sathishthangasamy/healthcare-product-selector/config"
	"github.com/sathishthangasamy/healthcare-product-selector/internal/app"
	httpDelivery "github.com/sathishthangasamy/healthcare-product-selector/internal/delivery/http"
	"github.com/sathishthangasamy/healthcare-product-selector/internal/infrastructure/cache"
	logpkg "github.com/sathishthangasamy/healthcare-product-selector/internal/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logpkg.NewLogger(cfg.Server.Environment, cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting healthcare product selector",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("products", cfg.Catalog.Products),
		zap.String("plans", cfg.Catalog.Plans),
		zap.String("plan_types", cfg.Catalog.PlanTypes),
	)

	// Load catalogs once; failures leave a catalog unavailable rather than stopping the server
	services := app.Build(context.Background(), cfg, logger)

	limiters := cache.NewMemoryCache[*rate.Limiter](cfg.RateLimit.IdleTTL)
	defer limiters.Close()

	handler := httpDelivery.NewHandler(services.Products, services.Plans, services.Store, logger)
	router := httpDelivery.SetupRouter(cfg, handler, logger, limiters)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
