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

	"github.com/kailas-cloud/livio/internal/app"
	"github.com/kailas-cloud/livio/internal/config"
	logpkg "github.com/kailas-cloud/livio/internal/logger"
	"github.com/kailas-cloud/livio/internal/metrics"
	chiTransport "github.com/kailas-cloud/livio/internal/transport/chi"
	healthuc "github.com/kailas-cloud/livio/internal/usecase/health"
	matchuc "github.com/kailas-cloud/livio/internal/usecase/match"
	profileuc "github.com/kailas-cloud/livio/internal/usecase/profile"
	"github.com/kailas-cloud/livio/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting livio API server",
		append(version.Fields(),
			zap.String("env", env),
			zap.Int("http_port", cfg.HTTP.Port),
			zap.String("dataset", cfg.Dataset.Path),
			zap.String("cache_driver", cfg.Cache.Driver),
		)...,
	)

	// Register matching metrics explicitly (no init())
	metrics.RegisterMatchMetrics()

	ctx := context.Background()
	cache, err := app.OpenMatrixCache(ctx, &cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open matrix cache", zap.Error(err))
	}
	defer cache.Close()

	cat := app.NewCatalog(&cfg, cache, logger)
	if cfg.Dataset.Preload {
		snap, err := cat.Refresh(ctx, false)
		if err != nil {
			logger.Fatal("Failed to preload catalog", zap.Error(err))
		}
		logger.Info("Catalog preloaded",
			zap.Int("profiles", snap.Dataset.Len()),
			zap.Int("features", snap.Matrix.Cols()),
		)
	}

	// Pass nil interface (not typed nil pointer!) when there is no KV cache.
	var cachePinger healthuc.CachePinger
	if cache.KV != nil {
		cachePinger = cache.KV
	}
	healthSvc := healthuc.New(cat, cachePinger)

	server := chiTransport.NewServer(
		matchuc.New(cat),
		profileuc.New(cat),
		cat,
		healthSvc,
		logger,
	).
		WithRanking(cfg.Ranking.DefaultTopN, cfg.Ranking.MaxTopN).
		WithAdminKeys(cfg.Auth.AdminKeys).
		WithCORS(cfg.HTTP.CORSOrigins).
		WithRateLimit(cfg.HTTP.RateLimit, time.Minute)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
