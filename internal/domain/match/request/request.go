package request

import (
	"fmt"
	"slices"

	"github.com/kailas-cloud/livio/internal/domain"
	"github.com/kailas-cloud/livio/internal/domain/match/filter"
)

// Ranking parameter limits.
const (
	DefaultTopN = 5
	MaxTopN     = 100
	MaxSeeds    = 32
)

// Request is a validated matching query.
type Request struct {
	seeds   []int
	topN    int
	filters filter.Set
}

// New validates and normalizes matching parameters.
// Duplicate seeds are collapsed and sorted ascending. topN above MaxTopN is
// clamped; range checks of the seed ids happen against the loaded dataset.
func New(seeds []int, topN int, filters filter.Set) (Request, error) {
	if len(seeds) == 0 {
		return Request{}, domain.ErrEmptySeeds
	}
	if topN <= 0 {
		return Request{}, fmt.Errorf("%w, got %d", domain.ErrInvalidTopN, topN)
	}
	if topN > MaxTopN {
		topN = MaxTopN
	}

	uniq := slices.Clone(seeds)
	slices.Sort(uniq)
	uniq = slices.Compact(uniq)
	if len(uniq) > MaxSeeds {
		return Request{}, fmt.Errorf("%w (max %d)", domain.ErrTooManySeeds, MaxSeeds)
	}

	return Request{seeds: uniq, topN: topN, filters: filters}, nil
}

// Seeds returns the distinct seed ids in ascending order.
func (r *Request) Seeds() []int { return r.seeds }

// TopN returns the number of candidates to rank.
func (r *Request) TopN() int { return r.topN }

// Filters returns the post-ranking filters.
func (r *Request) Filters() filter.Set { return r.filters }
