package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"ticket-monitor-go/internal/classifier"
	"ticket-monitor-go/internal/config"
	"ticket-monitor-go/internal/handlers"
	"ticket-monitor-go/internal/metrics"
	"ticket-monitor-go/internal/monitor"
	"ticket-monitor-go/internal/notifier"
	"ticket-monitor-go/internal/scheduler"
	"ticket-monitor-go/internal/server"
	"ticket-monitor-go/internal/source"
	"ticket-monitor-go/internal/store"
)

// Run initializes and starts the application
func Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	logFile, err := setupLogging(&cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	logrus.Info("Starting Ticket Monitor Service")

	m := metrics.NewMetrics()
	st := store.NewProcessedStore(cfg.Storage.ProcessedFile)
	src := source.NewFreshdeskClient(&cfg.Freshdesk)
	cl := classifier.NewOpenAIClassifier(&cfg.Classifier)
	nt := notifier.NewEmailNotifier(&cfg.Email)

	mon := monitor.NewMonitor(cfg, src, st, cl, nt, m)
	sched := scheduler.NewScheduler(&cfg.Scheduler, mon)

	h := handlers.NewHandlers(st, sched, m)
	router := server.SetupRouter(h)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	// One immediate check before settling into the schedule
	sched.RunOnce()

	go func() {
		logrus.Infof("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := sched.Stop(); err != nil {
		logrus.Errorf("Failed to stop scheduler: %v", err)
	}
	sched.Wait()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("HTTP server shutdown error: %v", err)
	}

	logrus.Info("Server stopped gracefully")
	return nil
}

// setupLogging configures logrus and, when a log file is configured, tees
// every event to an append-only file next to the processed-set file.
func setupLogging(cfg *config.StorageConfig) (*os.File, error) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)

	if cfg.LogFile == "" {
		return nil, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logrus.SetOutput(io.MultiWriter(os.Stdout, f))
	return f, nil
}
