package encoding

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/livio/internal/domain"
	"github.com/kailas-cloud/livio/internal/domain/feature"
	"github.com/kailas-cloud/livio/internal/domain/profile"
	"github.com/kailas-cloud/livio/internal/metrics"
)

// Result is an encoded dataset.
type Result struct {
	Matrix     feature.Matrix
	Vocabulary feature.Vocabulary
	// Cached is true when the matrix came from the store instead of being encoded.
	Cached bool
	// Persisted is true when the matrix is known to be in the store.
	Persisted bool
}

// Service builds the feature matrix of a dataset, reusing the persisted copy when valid.
type Service struct {
	store  MatrixStore
	logger *zap.Logger
}

// New creates an encoding service. store may be nil to always encode in memory.
func New(store MatrixStore, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Ensure returns the matrix of ds. Without force, a stored matrix is reused when
// it was built from the same fingerprint and matches the fitted column layout;
// otherwise the dataset is encoded and persisted. A failed save is logged and
// reported through Result.Persisted: the store is a cache, not the source of truth.
func (s *Service) Ensure(ctx context.Context, ds *profile.Dataset, force bool) (Result, error) {
	start := time.Now()

	if !force && s.store != nil {
		res, ok, err := s.loadCached(ctx, ds)
		if err != nil {
			metrics.EncodingRunsTotal.WithLabelValues("error").Inc()
			return Result{}, err
		}
		if ok {
			metrics.EncodingRunsTotal.WithLabelValues("cached").Inc()
			s.logger.Info("Feature matrix loaded from cache",
				zap.String("fingerprint", ds.Fingerprint()),
				zap.Int("rows", res.Matrix.Rows()),
				zap.Int("cols", res.Matrix.Cols()),
				zap.Duration("duration", time.Since(start)),
			)
			return res, nil
		}
	}

	m, v, err := feature.Encode(ds)
	if err != nil {
		metrics.EncodingRunsTotal.WithLabelValues("error").Inc()
		return Result{}, fmt.Errorf("encode dataset: %w", err)
	}
	res := Result{Matrix: m, Vocabulary: v}

	if s.store != nil {
		if err := s.store.Save(ctx, ds.Fingerprint(), &m); err != nil {
			s.logger.Warn("Failed to persist feature matrix",
				zap.String("fingerprint", ds.Fingerprint()), zap.Error(err))
		} else {
			res.Persisted = true
		}
	}

	metrics.EncodingRunsTotal.WithLabelValues("encoded").Inc()
	s.logger.Info("Feature matrix encoded",
		zap.String("fingerprint", ds.Fingerprint()),
		zap.Bool("forced", force),
		zap.Bool("persisted", res.Persisted),
		zap.Int("rows", m.Rows()),
		zap.Int("cols", m.Cols()),
		zap.Duration("duration", time.Since(start)),
	)
	return res, nil
}

// loadCached returns ok=false on a miss or a stale entry. Only encoder
// failures are returned as errors; store failures degrade to a miss.
func (s *Service) loadCached(ctx context.Context, ds *profile.Dataset) (Result, bool, error) {
	m, err := s.store.Load(ctx, ds.Fingerprint())
	switch {
	case errors.Is(err, domain.ErrMatrixNotFound):
		metrics.MatrixCacheTotal.WithLabelValues("miss").Inc()
		s.logger.Debug("Feature matrix not cached", zap.Error(err))
		return Result{}, false, nil
	case err != nil:
		metrics.MatrixCacheTotal.WithLabelValues("miss").Inc()
		s.logger.Warn("Failed to load cached feature matrix", zap.Error(err))
		return Result{}, false, nil
	}

	v, err := feature.Fit(ds)
	if err != nil {
		return Result{}, false, fmt.Errorf("fit vocabulary: %w", err)
	}
	if m.Rows() != ds.Len() || !slices.Equal(m.Columns(), v.Names()) {
		metrics.MatrixCacheTotal.WithLabelValues("stale").Inc()
		s.logger.Info("Cached feature matrix does not match the dataset layout",
			zap.Int("cached_rows", m.Rows()), zap.Int("rows", ds.Len()),
			zap.Int("cached_cols", m.Cols()), zap.Int("cols", len(v.Columns())),
		)
		return Result{}, false, nil
	}

	metrics.MatrixCacheTotal.WithLabelValues("hit").Inc()
	return Result{Matrix: m, Vocabulary: v, Cached: true, Persisted: true}, true, nil
}
