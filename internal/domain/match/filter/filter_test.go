package filter

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/livio/internal/domain"
	"github.com/kailas-cloud/livio/internal/domain/profile"
)

func TestNewMatch(t *testing.T) {
	c, err := NewMatch("smoker", "No")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Field() != "smoker" || c.Value() != "No" {
		t.Errorf("got %q=%q", c.Field(), c.Value())
	}
	if !c.Matches("No") || c.Matches("Yes") {
		t.Error("Matches mismatch")
	}
}

func TestCondition_MatchesPaddedCell(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{" No", true},
		{"No\t", true},
		{" Yes ", false},
		{"no", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := NonSmoker.Matches(tc.raw); got != tc.want {
			t.Errorf("NonSmoker.Matches(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestNewMatch_Invalid(t *testing.T) {
	tests := []struct{ field, value string }{
		{"", "No"},
		{"smoker", ""},
		{"smoker", "no"},
		{"smoker", "Maybe"},
	}
	for _, tc := range tests {
		_, err := NewMatch(tc.field, tc.value)
		if !errors.Is(err, domain.ErrInvalidFilter) {
			t.Errorf("NewMatch(%q, %q): expected ErrInvalidFilter, got %v", tc.field, tc.value, err)
		}
	}
}

func TestNewSet_Dedup(t *testing.T) {
	s, err := NewSet(NonSmoker, NonSmoker, HealthyEater)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Conditions()) != 2 {
		t.Errorf("expected 2 conditions, got %d", len(s.Conditions()))
	}
	if s.IsEmpty() {
		t.Error("set should not be empty")
	}
}

func TestNewSet_TooMany(t *testing.T) {
	cs := make([]Condition, MaxConditions+1)
	if _, err := NewSet(cs...); !errors.Is(err, domain.ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestSet_Validate(t *testing.T) {
	schema := profile.DefaultSchema()

	ok, _ := NewSet(NonSmoker, HealthyEater, NoPetAllergy)
	if err := ok.Validate(schema); err != nil {
		t.Fatalf("presets should validate: %v", err)
	}

	c, _ := NewMatch("sleep_schedule", "Yes")
	bad, _ := NewSet(c)
	if err := bad.Validate(schema); !errors.Is(err, domain.ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
}
