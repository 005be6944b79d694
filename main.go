package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/giygas/prescription-analyzer/config"
	"github.com/giygas/prescription-analyzer/data"
	"github.com/giygas/prescription-analyzer/handlers"
	"github.com/giygas/prescription-analyzer/health"
	"github.com/giygas/prescription-analyzer/logging"
	"github.com/giygas/prescription-analyzer/ocr"
	"github.com/giygas/prescription-analyzer/policy"
	"github.com/giygas/prescription-analyzer/prescriptionparser"
	"github.com/giygas/prescription-analyzer/scheduler"
	"github.com/giygas/prescription-analyzer/server"
	"github.com/giygas/prescription-analyzer/validation"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; environment variables win either way
	if err := godotenv.Load(); err != nil {
		logging.Debug("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.InitLogger("logs", cfg.LogRetentionWeeks, cfg.MaxLogFileSize)

	thresholds, err := policy.LoadFile(cfg.SafetyPolicyFile)
	if err != nil {
		logging.Error("Failed to load safety policy", "error", err)
		os.Exit(1)
	}

	engine, err := ocr.NewFromConfig(cfg)
	if err != nil {
		logging.Error("Failed to configure OCR engine", "error", err)
		os.Exit(1)
	}

	engineName := ""
	if engine != nil {
		engineName = engine.Name()
		logging.Info("OCR engine configured", "engine", engineName)
	} else {
		logging.Warn("No OCR engine configured, image uploads will be rejected")
	}

	statusContainer := data.NewStatusContainer()
	statusContainer.SetServerStartTime(time.Now())

	analyzer := prescriptionparser.NewAnalyzer(thresholds)
	validator := validation.NewUploadValidator()
	healthChecker := health.NewHealthChecker(statusContainer, engineName)

	handler := handlers.NewHTTPHandler(analyzer, validator, engine, statusContainer, healthChecker, cfg.MaxUploadSize)
	srv := server.NewServer(cfg, handler)

	var probeScheduler *scheduler.ProbeScheduler
	if engine != nil {
		probeScheduler = scheduler.NewProbeScheduler(engine, statusContainer,
			time.Duration(cfg.OCRProbeMinutes)*time.Minute)
		if err := probeScheduler.Start(); err != nil {
			logging.Error("Failed to start OCR probe scheduler", "error", err)
			os.Exit(1)
		}
	}

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Block until a signal is received
	<-quit

	if probeScheduler != nil {
		probeScheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Shutdown failed", "error", err)
		os.Exit(1)
	}
}
