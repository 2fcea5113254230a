package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JJBon/synth-data-service/internal/api"
	"github.com/JJBon/synth-data-service/internal/config"
	"github.com/JJBon/synth-data-service/internal/generator"
	"github.com/JJBon/synth-data-service/internal/guidance"
	"github.com/JJBon/synth-data-service/internal/logger"
	"github.com/JJBon/synth-data-service/internal/scheduler"
	"github.com/JJBon/synth-data-service/internal/service"
	"github.com/JJBon/synth-data-service/internal/store"
)

func main() {
	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal("Failed to load config: %v", err)
	}

	// Initialize logger
	logger.SetDefaultLogger(logger.NewDefault())
	defer logger.Sync()

	// Wire the job pipeline: store -> scheduler -> service
	jobStore := store.NewMemoryStore()
	gen := generator.New()
	sched := scheduler.New(jobStore, gen, scheduler.Delays{
		Start:    cfg.Scheduler.StartDelay,
		Midpoint: cfg.Scheduler.MidpointDelay,
		Complete: cfg.Scheduler.CompleteDelay,
	})
	jobService := service.NewJobService(jobStore, sched)
	classifier := guidance.NewClassifier()

	// Setup router
	router := api.SetupRouter(jobService, classifier, cfg)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		logger.With(logger.Fields{
			"port": cfg.Server.Port,
			"mode": cfg.Server.Mode,
		}).Info(context.Background(), "Starting jobs API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	sched.Stop()

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
