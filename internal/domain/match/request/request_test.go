package request

import (
	"errors"
	"slices"
	"testing"

	"github.com/kailas-cloud/livio/internal/domain"
	"github.com/kailas-cloud/livio/internal/domain/match/filter"
)

func TestNew_Valid(t *testing.T) {
	fs, _ := filter.NewSet(filter.NonSmoker)
	r, err := New([]int{3, 1, 3, 2}, 5, fs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(r.Seeds(), []int{1, 2, 3}) {
		t.Errorf("Seeds() = %v, want [1 2 3]", r.Seeds())
	}
	if r.TopN() != 5 {
		t.Errorf("TopN() = %d, want 5", r.TopN())
	}
	if len(r.Filters().Conditions()) != 1 {
		t.Errorf("Filters() = %v", r.Filters().Conditions())
	}
}

func TestNew_DoesNotAliasInput(t *testing.T) {
	in := []int{2, 1}
	if _, err := New(in, 1, filter.Set{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in[0] != 2 {
		t.Error("New must not reorder the caller's slice")
	}
}

func TestNew_EmptySeeds(t *testing.T) {
	_, err := New(nil, 5, filter.Set{})
	if !errors.Is(err, domain.ErrEmptySeeds) {
		t.Fatalf("expected ErrEmptySeeds, got %v", err)
	}
}

func TestNew_InvalidTopN(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := New([]int{1}, n, filter.Set{})
		if !errors.Is(err, domain.ErrInvalidTopN) {
			t.Errorf("topN=%d: expected ErrInvalidTopN, got %v", n, err)
		}
	}
}

func TestNew_ClampsTopN(t *testing.T) {
	r, err := New([]int{1}, MaxTopN+50, filter.Set{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.TopN() != MaxTopN {
		t.Errorf("TopN() = %d, want %d", r.TopN(), MaxTopN)
	}
}

func TestNew_TooManySeeds(t *testing.T) {
	seeds := make([]int, MaxSeeds+1)
	for i := range seeds {
		seeds[i] = i + 1
	}
	if _, err := New(seeds, 1, filter.Set{}); !errors.Is(err, domain.ErrTooManySeeds) {
		t.Fatalf("expected ErrTooManySeeds, got %v", err)
	}
}
