package match

import (
	"context"

	"github.com/kailas-cloud/livio/internal/usecase/catalog"
)

// Catalog provides the current dataset snapshot.
type Catalog interface {
	Current(ctx context.Context) (*catalog.Snapshot, error)
}
