package catalog

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/livio/internal/domain"
	"github.com/kailas-cloud/livio/internal/domain/feature"
	"github.com/kailas-cloud/livio/internal/domain/profile"
	"github.com/kailas-cloud/livio/internal/metrics"
)

// Snapshot is an immutable dataset with its feature matrix. Row i of Matrix
// encodes profile i+1 of Dataset.
type Snapshot struct {
	Dataset    profile.Dataset
	Matrix     feature.Matrix
	Vocabulary feature.Vocabulary
	Version    uint64
	LoadedAt   time.Time
}

// Service publishes the current snapshot. Readers never block on a refresh:
// a new snapshot is fully built before it replaces the old one.
type Service struct {
	loader  DatasetLoader
	encoder Encoder
	logger  *zap.Logger

	current atomic.Pointer[Snapshot]
	mu      sync.Mutex // serializes builds
	version uint64
	now     func() time.Time
}

// New creates a catalog. Nothing is loaded until Current or Refresh is called.
func New(loader DatasetLoader, encoder Encoder, logger *zap.Logger) *Service {
	return &Service{loader: loader, encoder: encoder, logger: logger, now: time.Now}
}

// Current returns the published snapshot, building it on first use.
func (s *Service) Current(ctx context.Context) (*Snapshot, error) {
	if snap := s.current.Load(); snap != nil {
		return snap, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if snap := s.current.Load(); snap != nil {
		return snap, nil
	}
	return s.build(ctx, false)
}

// Refresh reloads the dataset and swaps in a new snapshot. With force the
// persisted matrix is ignored and regenerated. On failure the previous
// snapshot stays published.
func (s *Service) Refresh(ctx context.Context, force bool) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.build(ctx, force)
}

// Loaded reports whether a snapshot has been published.
func (s *Service) Loaded() bool { return s.current.Load() != nil }

// Check reports catalog availability for health checks.
func (s *Service) Check(ctx context.Context) error {
	_, err := s.Current(ctx)
	return err
}

// build must be called with mu held.
func (s *Service) build(ctx context.Context, force bool) (*Snapshot, error) {
	ds, err := s.loader.Load(ctx)
	if err != nil {
		metrics.CatalogRefreshTotal.WithLabelValues("error").Inc()
		s.logger.Error("Failed to load dataset", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}

	enc, err := s.encoder.Ensure(ctx, &ds, force)
	if err != nil {
		metrics.CatalogRefreshTotal.WithLabelValues("error").Inc()
		s.logger.Error("Failed to encode dataset", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}

	s.version++
	snap := &Snapshot{
		Dataset:    ds,
		Matrix:     enc.Matrix,
		Vocabulary: enc.Vocabulary,
		Version:    s.version,
		LoadedAt:   s.now(),
	}
	s.current.Store(snap)

	metrics.CatalogRefreshTotal.WithLabelValues("ok").Inc()
	metrics.MatrixRows.Set(float64(snap.Matrix.Rows()))
	metrics.MatrixCols.Set(float64(snap.Matrix.Cols()))
	s.logger.Info("Catalog snapshot published",
		zap.Uint64("version", snap.Version),
		zap.String("fingerprint", ds.Fingerprint()),
		zap.Int("profiles", ds.Len()),
		zap.Bool("cached_matrix", enc.Cached),
	)
	return snap, nil
}
