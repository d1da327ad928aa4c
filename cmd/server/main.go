package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/api"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/config"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/database"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/logging"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/repository"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/service"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Logging.Level, cfg.Logging.ToFile, cfg.Logging.FilePath)
	if err != nil {
		logrus.Fatalf("Failed to create logger: %v", err)
	}
	ctx := logging.WithLogger(context.Background(), logger)

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	applied, err := database.Migrate(ctx, db)
	if err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}
	logger.WithFields(logrus.Fields{
		"path":       cfg.Database.Path,
		"migrations": applied,
	}).Info("connected to database")

	// Create repositories
	userRepo := repository.NewUserRepository(db)
	watchlistRepo := repository.NewWatchlistRepository(db)
	holdingRepo := repository.NewHoldingRepository(db)

	previews, err := service.NewPreviewSealer(cfg.Reconcile.PreviewKey, cfg.Reconcile.PreviewTTL)
	if err != nil {
		logger.Fatalf("Failed to load preview key: %v", err)
	}
	if cfg.Reconcile.PreviewKey == "" {
		logger.Warn("PREVIEW_KEY not set, preview tokens will not survive a restart")
	}

	// Create services
	services := api.Services{
		System:  service.NewSystemService(db),
		User:    service.NewUserService(userRepo),
		Holding: service.NewHoldingService(userRepo, holdingRepo),
		Reconcile: service.NewReconcileService(
			userRepo,
			watchlistRepo,
			holdingRepo,
			previews,
			cfg.Reconcile.SnapshotCacheTTL,
			cfg.Reconcile.CommitConcurrency,
		),
	}

	if cfg.Reconcile.AuditSchedule != "" {
		auditor := service.NewAuditService(userRepo, holdingRepo)
		scheduler, err := auditor.Schedule(ctx, cfg.Reconcile.AuditSchedule)
		if err != nil {
			logger.Fatalf("Failed to schedule audit: %v", err)
		}
		defer scheduler.Stop()
	}

	// Create router
	router := api.NewRouter(services, cfg, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.WithFields(logrus.Fields{
			"addr":    cfg.Server.Addr,
			"version": version.Version,
			"commit":  version.Commit,
		}).Info("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
		return
	}

	logger.Info("server exited")
}
