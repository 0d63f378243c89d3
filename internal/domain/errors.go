package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrSeedOutOfRange signals a seed id outside the dense 1..N id range.
	ErrSeedOutOfRange = errors.New("one or more tenant IDs are out of range")
	// ErrEmptySeeds signals a ranking request without seed ids.
	ErrEmptySeeds = errors.New("at least one seed id is required")
	// ErrTooManySeeds signals a ranking request above the seed limit.
	ErrTooManySeeds = errors.New("too many seed ids")
	// ErrInvalidTopN signals a non-positive result count.
	ErrInvalidTopN = errors.New("top_n must be a positive integer")
	// ErrInvalidFilter signals a post-filter on an unknown or non-binary field.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrNoMatches signals that post-filters eliminated every candidate.
	ErrNoMatches = errors.New("no matches found with the selected filters")

	// ErrDataIntegrity signals a malformed or schema-drifted source dataset.
	ErrDataIntegrity = errors.New("data integrity")
	// ErrUnknownCategory signals a categorical value the encoder was never fitted on.
	ErrUnknownCategory = fmt.Errorf("%w: unknown category", ErrDataIntegrity)
	// ErrMatrixNotFound signals a missing or stale persisted feature matrix.
	ErrMatrixNotFound = errors.New("feature matrix not found")
	// ErrCatalogUnavailable signals that the dataset could not be loaded.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// SeedOutOfRangeError wraps ErrSeedOutOfRange with the offending id and the valid range.
type SeedOutOfRangeError struct {
	ID  int
	Max int
}

func (e *SeedOutOfRangeError) Error() string {
	return fmt.Sprintf("%s: id %d not in [1, %d]", ErrSeedOutOfRange.Error(), e.ID, e.Max)
}

func (e *SeedOutOfRangeError) Unwrap() error { return ErrSeedOutOfRange }

// NewSeedOutOfRange creates a seed range error.
func NewSeedOutOfRange(id, maxID int) error {
	return &SeedOutOfRangeError{ID: id, Max: maxID}
}

// IntegrityError describes where in the dataset an integrity check failed.
type IntegrityError struct {
	Row    int // 1-based data row, 0 when not row specific
	Column string
	Reason string
}

func (e *IntegrityError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("%s: row %d, column %q: %s", ErrDataIntegrity.Error(), e.Row, e.Column, e.Reason)
	}
	if e.Column != "" {
		return fmt.Sprintf("%s: column %q: %s", ErrDataIntegrity.Error(), e.Column, e.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrDataIntegrity.Error(), e.Reason)
}

func (e *IntegrityError) Unwrap() error { return ErrDataIntegrity }

// NewIntegrityError creates a data integrity error for a row/column pair.
func NewIntegrityError(row int, column, reason string) error {
	return &IntegrityError{Row: row, Column: column, Reason: reason}
}
