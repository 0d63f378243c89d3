package health

import "context"

// CatalogChecker reports whether the dataset snapshot can be served.
type CatalogChecker interface {
	Check(ctx context.Context) error
}

// CachePinger checks matrix cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}
