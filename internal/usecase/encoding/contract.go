package encoding

import (
	"context"

	"github.com/kailas-cloud/livio/internal/domain/feature"
)

// MatrixStore persists encoded matrices keyed by dataset fingerprint.
// A missing or stale entry is domain.ErrMatrixNotFound.
type MatrixStore interface {
	Load(ctx context.Context, fingerprint string) (feature.Matrix, error)
	Save(ctx context.Context, fingerprint string, m *feature.Matrix) error
}
