package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/BerylCAtieno/yodelstar-api/internal/analyzer"
	"github.com/BerylCAtieno/yodelstar-api/internal/api"
	"github.com/BerylCAtieno/yodelstar-api/internal/config"
	"github.com/BerylCAtieno/yodelstar-api/internal/logging"
	"github.com/BerylCAtieno/yodelstar-api/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log, closeLog, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		logrus.Fatalf("Failed to set up logging: %v", err)
	}
	defer closeLog()

	if !cfg.GeminiConfigured() {
		log.Fatal("GEMINI_API_KEY environment variable is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	geminiClient, err := analyzer.NewGeminiClient(ctx, cfg.GeminiAPIKey, analyzer.GeminiOptions{
		Temperature:     float32(cfg.Temperature),
		TopP:            float32(cfg.TopP),
		MaxOutputTokens: int32(cfg.MaxOutputTokens),
	})
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}
	defer geminiClient.Close()

	rec := metrics.New()
	svc := analyzer.NewService(geminiClient,
		analyzer.WithModel(cfg.Model),
		analyzer.WithLogger(log),
		analyzer.WithMetrics(rec),
	)

	if log.IsLevelEnabled(logrus.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.NewHandler(svc, api.Options{
		Logger:           log,
		Metrics:          rec,
		StaticDir:        cfg.StaticDir,
		GeminiConfigured: cfg.GeminiConfigured(),
	}))

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("Graceful shutdown failed")
		}
	}()

	log.WithFields(logrus.Fields{
		"addr":  cfg.Addr,
		"model": svc.Model(),
	}).Info("Yodelstar API starting")
	log.Infof("Health check available at: http://localhost%s/health", cfg.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed to start: %v", err)
	}
	<-shutdownDone
}
