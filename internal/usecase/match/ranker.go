package match

import (
	"fmt"
	"slices"

	"github.com/viterin/vek"

	"github.com/kailas-cloud/livio/internal/domain"
	"github.com/kailas-cloud/livio/internal/domain/feature"
	"github.com/kailas-cloud/livio/internal/domain/match/result"
)

// excluded is the aggregate score assigned to seeds. Cosine never goes below -1,
// and seeds are dropped before selection, so it never reaches a caller.
const excluded = -1.0

// Rank scores every row of m by its mean cosine similarity to the seed rows
// and returns the topN best non-seed candidates. Ids are 1-based; duplicate
// seeds count once. topN is clamped to the number of candidates.
// Ties are broken by ascending id. m is only read.
func Rank(m *feature.Matrix, seedIDs []int, topN int) ([]result.Score, error) {
	if len(seedIDs) == 0 {
		return nil, domain.ErrEmptySeeds
	}
	if topN < 1 {
		return nil, fmt.Errorf("%w, got %d", domain.ErrInvalidTopN, topN)
	}

	n := m.Rows()
	seeds := slices.Clone(seedIDs)
	slices.Sort(seeds)
	seeds = slices.Compact(seeds)
	for _, id := range seeds {
		if id < 1 || id > n {
			return nil, domain.NewSeedOutOfRange(id, n)
		}
	}

	norms := make([]float64, n)
	for i := range n {
		norms[i] = vek.Norm(m.Row(i))
	}

	agg := make([]float64, n)
	for _, id := range seeds {
		s := id - 1
		seed := m.Row(s)
		for i := range n {
			agg[i] += cosine(seed, m.Row(i), norms[s], norms[i])
		}
	}
	k := float64(len(seeds))
	for i := range agg {
		agg[i] /= k
	}
	for _, id := range seeds {
		agg[id-1] = excluded
	}

	candidates := make([]result.Score, 0, n-len(seeds))
	for i, score := range agg {
		if _, isSeed := slices.BinarySearch(seeds, i+1); isSeed {
			continue
		}
		candidates = append(candidates, result.NewScore(i+1, score))
	}

	// candidates are in ascending id order, so a stable sort keeps ties by id
	slices.SortStableFunc(candidates, func(a, b result.Score) int {
		switch {
		case a.Score() > b.Score():
			return -1
		case a.Score() < b.Score():
			return 1
		default:
			return 0
		}
	})

	if len(candidates) > topN {
		candidates = candidates[:topN]
	}
	return candidates, nil
}

// cosine is 0 when either vector has zero norm.
func cosine(a, b []float64, na, nb float64) float64 {
	if na == 0 || nb == 0 {
		return 0
	}
	return vek.Dot(a, b) / (na * nb)
}
