package app

import (
	"go.uber.org/zap"

	"github.com/kailas-cloud/livio/internal/config"
	"github.com/kailas-cloud/livio/internal/domain/profile"
	"github.com/kailas-cloud/livio/internal/logger"
	"github.com/kailas-cloud/livio/internal/repository/dataset"
	"github.com/kailas-cloud/livio/internal/usecase/catalog"
	"github.com/kailas-cloud/livio/internal/usecase/encoding"
)

// NewCatalog wires the dataset loader and the encoder over the matrix cache.
func NewCatalog(cfg *config.Config, cache MatrixCache, log *zap.Logger) *catalog.Service {
	loader := dataset.New(cfg.Dataset.Path, profile.DefaultSchema())
	encoder := encoding.New(cache.Store, logger.Component(log, "encoding"))
	return catalog.New(loader, encoder, logger.Component(log, "catalog"))
}
