// Command livio-encode builds the feature matrix of the tenant dataset and
// persists it to the configured matrix cache.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/kailas-cloud/livio/internal/app"
	"github.com/kailas-cloud/livio/internal/config"
	"github.com/kailas-cloud/livio/internal/domain"
	"github.com/kailas-cloud/livio/internal/domain/profile"
	logpkg "github.com/kailas-cloud/livio/internal/logger"
	"github.com/kailas-cloud/livio/internal/metrics"
	"github.com/kailas-cloud/livio/internal/repository/dataset"
	"github.com/kailas-cloud/livio/internal/usecase/encoding"
	"github.com/kailas-cloud/livio/internal/version"
)

func main() {
	force := flag.Bool("force", false, "re-encode even if a valid matrix is cached")
	datasetPath := flag.String("dataset", "", "dataset CSV path (overrides config)")
	flag.Parse()

	if err := run(*force, *datasetPath); err != nil {
		fmt.Fprintln(os.Stderr, "livio-encode:", err)
		if errors.Is(err, domain.ErrDataIntegrity) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(force bool, datasetPath string) error {
	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if datasetPath != "" {
		cfg.Dataset.Path = datasetPath
	}
	if cfg.Cache.Driver == config.CacheNone {
		return errors.New("cache.driver is none: nothing to persist the matrix to")
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("Starting livio encoder", version.Fields()...)

	metrics.RegisterMatchMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache, err := app.OpenMatrixCache(ctx, &cfg, logger)
	if err != nil {
		return fmt.Errorf("open matrix cache: %w", err)
	}
	defer cache.Close()

	ds, err := dataset.New(cfg.Dataset.Path, profile.DefaultSchema()).Load(ctx)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	res, err := encoding.New(cache.Store, logger).Ensure(ctx, &ds, force)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if !res.Persisted {
		return errors.New("feature matrix was encoded but could not be persisted")
	}

	logger.Info("Feature matrix ready",
		zap.String("fingerprint", ds.Fingerprint()),
		zap.Bool("cached", res.Cached),
		zap.Int("profiles", res.Matrix.Rows()),
		zap.Int("features", res.Matrix.Cols()),
	)
	return nil
}
