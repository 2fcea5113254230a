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
	"github.com/JJBon/synth-data-service/internal/backend"
	"github.com/JJBon/synth-data-service/internal/config"
	"github.com/JJBon/synth-data-service/internal/dispatch"
	"github.com/JJBon/synth-data-service/internal/generator"
	"github.com/JJBon/synth-data-service/internal/guidance"
	"github.com/JJBon/synth-data-service/internal/logger"
	"github.com/JJBon/synth-data-service/internal/scheduler"
	"github.com/JJBon/synth-data-service/internal/service"
	"github.com/JJBon/synth-data-service/internal/store"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal("Failed to load config: %v", err)
	}

	logger.SetDefaultLogger(logger.NewDefault())
	defer logger.Sync()

	// The base URL setting selects the backend: empty runs the job store
	// in-process, anything else targets a remote jobs API.
	var (
		jobsBackend backend.Backend
		sched       *scheduler.Scheduler
	)
	if cfg.Backend.BaseURL != "" {
		logger.Info("Using remote jobs backend at %s", cfg.Backend.BaseURL)
		jobsBackend = backend.NewREST(&backend.RESTConfig{
			BaseURL: cfg.Backend.BaseURL,
			Timeout: cfg.Backend.Timeout,
		})
	} else {
		logger.Info("Using in-process jobs backend")
		jobStore := store.NewMemoryStore()
		sched = scheduler.New(jobStore, generator.New(), scheduler.Delays{
			Start:    cfg.Scheduler.StartDelay,
			Midpoint: cfg.Scheduler.MidpointDelay,
			Complete: cfg.Scheduler.CompleteDelay,
		})
		jobsBackend = backend.NewLocal(
			cfg.Server.Name,
			service.NewJobService(jobStore, sched),
			guidance.NewClassifier(),
		)
	}

	dispatcher, err := dispatch.New(jobsBackend)
	if err != nil {
		logger.Fatal("Failed to build dispatcher: %v", err)
	}

	router := api.SetupToolRouter(dispatcher, cfg)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.With(logger.Fields{
			"port": cfg.Server.Port,
			"mode": cfg.Server.Mode,
		}).Info(context.Background(), "Starting tool dispatch server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	if sched != nil {
		sched.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
