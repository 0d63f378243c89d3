package profile

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kailas-cloud/livio/internal/domain"
)

// SchemaVersion is folded into the dataset fingerprint so that encoder
// changes invalidate persisted matrices.
const SchemaVersion = "1"

// Binary field values.
const (
	Yes = "Yes"
	No  = "No"
)

// Kind classifies a dataset column.
type Kind string

// Column kinds.
const (
	KindID          Kind = "id"
	KindMultiValued Kind = "multi"
	KindCategorical Kind = "categorical"
	KindBinary      Kind = "binary"
	KindNumeric     Kind = "numeric"
)

// MultiValued describes a column holding a separated list of known categories.
type MultiValued struct {
	Column     string
	Categories []string
	Separator  string
}

// Split returns the trimmed, non-empty items of a raw multi-valued cell.
func (m MultiValued) Split(raw string) []string {
	sep := m.Separator
	if sep == "" {
		sep = ","
	}
	parts := strings.Split(raw, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Schema is the fixed column layout of the tenant dataset.
// Columns not listed here (other than the id) are numeric.
type Schema struct {
	IDColumn    string
	MultiValued MultiValued
	Categorical []string
	Binary      []string
}

// DefaultSchema returns the layout of the shipped tenants dataset.
func DefaultSchema() Schema {
	return Schema{
		IDColumn: "id_tenant",
		MultiValued: MultiValued{
			Column:     "languages_spoken",
			Categories: []string{"English", "Spanish", "French", "German", "Italian"},
			Separator:  ",",
		},
		Categorical: []string{
			"sleep_schedule", "work_shift", "energy_rhythm", "education_level",
			"social_level", "cooking_preference", "preferred_music_genre",
			"ideal_weekend_plan", "noise_tolerance", "relationship_status",
		},
		Binary: []string{
			"likes_reading", "likes_cooking", "on_diet", "smoker", "likes_pets",
			"pet_allergy", "frequent_visits", "remote_worker", "plays_sports",
			"listens_loud_music", "shares_common_items",
		},
	}
}

// Required returns every column the dataset header must contain.
func (s Schema) Required() []string {
	out := make([]string, 0, 2+len(s.Categorical)+len(s.Binary))
	out = append(out, s.IDColumn, s.MultiValued.Column)
	out = append(out, s.Categorical...)
	out = append(out, s.Binary...)
	return out
}

// Validate checks the header for missing and duplicate columns.
func (s Schema) Validate(header []string) error {
	seen := make(map[string]bool, len(header))
	for _, h := range header {
		if seen[h] {
			return domain.NewIntegrityError(0, h, "duplicate column")
		}
		seen[h] = true
	}
	for _, col := range s.Required() {
		if !seen[col] {
			return domain.NewIntegrityError(0, col, "required column missing")
		}
	}
	return nil
}

// Kind classifies a column of this schema.
func (s Schema) Kind(column string) Kind {
	switch {
	case column == s.IDColumn:
		return KindID
	case column == s.MultiValued.Column:
		return KindMultiValued
	case slices.Contains(s.Categorical, column):
		return KindCategorical
	case slices.Contains(s.Binary, column):
		return KindBinary
	default:
		return KindNumeric
	}
}

// NumericColumns returns the numeric columns of header in header order.
func (s Schema) NumericColumns(header []string) []string {
	var out []string
	for _, h := range header {
		if s.Kind(h) == KindNumeric {
			out = append(out, h)
		}
	}
	return out
}

// ParseBinary maps Yes/No to 1/0.
func ParseBinary(v string) (float64, error) {
	switch strings.TrimSpace(v) {
	case Yes:
		return 1, nil
	case No:
		return 0, nil
	default:
		return 0, fmt.Errorf("expected %q or %q, got %q", Yes, No, v)
	}
}
