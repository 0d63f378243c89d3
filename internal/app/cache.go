// Package app assembles the components shared by the livio binaries.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/livio/internal/config"
	"github.com/kailas-cloud/livio/internal/db"
	dbRedis "github.com/kailas-cloud/livio/internal/db/redis"
	filematrix "github.com/kailas-cloud/livio/internal/repository/matrix/file"
	kvmatrix "github.com/kailas-cloud/livio/internal/repository/matrix/kv"
	"github.com/kailas-cloud/livio/internal/usecase/encoding"
)

// MatrixCache is the persisted matrix store selected by cache.driver.
// Store and KV are nil for the none driver; KV is only set for redis/valkey.
type MatrixCache struct {
	Store encoding.MatrixStore
	KV    db.Store
}

// Close releases the KV connection, if any.
func (c MatrixCache) Close() {
	if c.KV != nil {
		c.KV.Close()
	}
}

// OpenMatrixCache connects the matrix store for cfg.Cache.Driver. For redis and
// valkey it blocks until the server answers or the readiness timeout expires.
func OpenMatrixCache(ctx context.Context, cfg *config.Config, log *zap.Logger) (MatrixCache, error) {
	switch cfg.Cache.Driver {
	case config.CacheNone:
		log.Info("Matrix cache disabled, encoding in memory")
		return MatrixCache{}, nil
	case config.CacheFile:
		log.Info("Using file matrix cache", zap.String("path", cfg.Cache.Path))
		return MatrixCache{Store: filematrix.New(cfg.Cache.Path)}, nil
	case config.CacheRedis, config.CacheValkey:
		kv, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err != nil {
			return MatrixCache{}, fmt.Errorf("create %s store: %w", cfg.Cache.Driver, err)
		}
		timeout := time.Duration(cfg.Cache.ReadinessTimeout) * time.Second
		if err := kv.WaitForReady(ctx, timeout); err != nil {
			kv.Close()
			return MatrixCache{}, fmt.Errorf("%s not ready: %w", cfg.Cache.Driver, err)
		}
		log.Info("Connected to matrix cache",
			zap.String("driver", cfg.Cache.Driver),
			zap.Strings("addrs", cfg.Cache.Addrs),
		)
		ttl := time.Duration(cfg.Cache.TTLSec) * time.Second
		return MatrixCache{Store: kvmatrix.New(kv, cfg.Storage.KeyPrefix, ttl), KV: kv}, nil
	default:
		return MatrixCache{}, fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}
}
