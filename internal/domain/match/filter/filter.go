package filter

import (
	"fmt"
	"slices"

	"github.com/kailas-cloud/livio/internal/domain"
	"github.com/kailas-cloud/livio/internal/domain/profile"
)

// MaxConditions is the maximum number of post-filter conditions per request.
const MaxConditions = 16

// Condition is an exact match of a binary field against Yes or No.
type Condition struct {
	field string
	value string
}

// NewMatch validates and creates a binary match condition.
func NewMatch(field, value string) (Condition, error) {
	if field == "" {
		return Condition{}, fmt.Errorf("%w: field is required", domain.ErrInvalidFilter)
	}
	if value != profile.Yes && value != profile.No {
		return Condition{}, fmt.Errorf("%w: %q must be %q or %q, got %q",
			domain.ErrInvalidFilter, field, profile.Yes, profile.No, value)
	}
	return Condition{field: field, value: value}, nil
}

// Field returns the filtered column.
func (c Condition) Field() string { return c.field }

// Value returns the required value.
func (c Condition) Value() string { return c.value }

// Matches reports whether a raw cell satisfies the condition. Cells are read
// with profile.ParseBinary so the filter agrees with the encoder.
func (c Condition) Matches(raw string) bool {
	got, err := profile.ParseBinary(raw)
	if err != nil {
		return false
	}
	want, _ := profile.ParseBinary(c.value)
	return got == want
}

// Presets offered by the matching UI.
var (
	NonSmoker    = Condition{field: "smoker", value: profile.No}
	HealthyEater = Condition{field: "on_diet", value: profile.Yes}
	NoPetAllergy = Condition{field: "pet_allergy", value: profile.No}
)

// Set is a validated list of conditions; all must hold.
type Set struct {
	conditions []Condition
}

// NewSet creates a filter set, dropping exact duplicates.
func NewSet(conditions ...Condition) (Set, error) {
	if len(conditions) > MaxConditions {
		return Set{}, fmt.Errorf("%w: too many conditions (max %d)", domain.ErrInvalidFilter, MaxConditions)
	}
	out := make([]Condition, 0, len(conditions))
	for _, c := range conditions {
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return Set{conditions: out}, nil
}

// Conditions returns the conditions in insertion order.
func (s Set) Conditions() []Condition { return s.conditions }

// IsEmpty reports whether the set has no conditions.
func (s Set) IsEmpty() bool { return len(s.conditions) == 0 }

// Validate checks every condition targets a binary field of the schema.
func (s Set) Validate(schema profile.Schema) error {
	for _, c := range s.conditions {
		if schema.Kind(c.field) != profile.KindBinary {
			return fmt.Errorf("%w: %q is not a yes/no field", domain.ErrInvalidFilter, c.field)
		}
	}
	return nil
}
