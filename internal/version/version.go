// Package version holds build metadata injected via ldflags.
package version

import "go.uber.org/zap"

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Fields returns the build metadata as log fields.
func Fields() []zap.Field {
	return []zap.Field{
		zap.String("version", Version),
		zap.String("commit", Commit),
		zap.String("build_date", Date),
	}
}

// Info returns the build metadata for the health endpoint.
func Info() map[string]string {
	return map[string]string{"version": Version, "commit": Commit, "build_date": Date}
}
