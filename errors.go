package livio

import "github.com/kailas-cloud/livio/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound           = domain.ErrNotFound
	ErrSeedOutOfRange     = domain.ErrSeedOutOfRange
	ErrEmptySeeds         = domain.ErrEmptySeeds
	ErrTooManySeeds       = domain.ErrTooManySeeds
	ErrInvalidTopN        = domain.ErrInvalidTopN
	ErrNoMatches          = domain.ErrNoMatches
	ErrDataIntegrity      = domain.ErrDataIntegrity
	ErrCatalogUnavailable = domain.ErrCatalogUnavailable
)
