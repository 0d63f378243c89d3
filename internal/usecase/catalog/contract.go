package catalog

import (
	"context"

	"github.com/kailas-cloud/livio/internal/domain/profile"
	"github.com/kailas-cloud/livio/internal/usecase/encoding"
)

// DatasetLoader reads the raw tenant dataset.
type DatasetLoader interface {
	Load(ctx context.Context) (profile.Dataset, error)
}

// Encoder builds or restores the feature matrix of a dataset.
type Encoder interface {
	Ensure(ctx context.Context, ds *profile.Dataset, force bool) (encoding.Result, error)
}
