package match

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/livio/internal/domain"
	"github.com/kailas-cloud/livio/internal/domain/match/filter"
	"github.com/kailas-cloud/livio/internal/domain/match/request"
	"github.com/kailas-cloud/livio/internal/domain/match/result"
	"github.com/kailas-cloud/livio/internal/domain/profile"
	"github.com/kailas-cloud/livio/internal/logger"
	"github.com/kailas-cloud/livio/internal/metrics"
)

// Service ranks tenants against seed profiles.
type Service struct {
	catalog Catalog
}

// New creates a match service.
func New(c Catalog) *Service {
	return &Service{catalog: c}
}

// Recommend ranks every profile against the request seeds, applies the
// post-filters to the ranked candidates and packages the comparison table.
// Filters run after ranking: a filter can shrink the result below TopN, and
// when nothing survives the result is domain.ErrNoMatches.
func (s *Service) Recommend(ctx context.Context, req *request.Request) (result.Recommendation, error) {
	start := time.Now()
	rec, err := s.recommend(ctx, req)
	duration := time.Since(start)

	status := statusOf(err)
	metrics.MatchRequestsTotal.WithLabelValues(status).Inc()
	metrics.MatchDuration.Observe(duration.Seconds())

	log := logger.FromContext(ctx)
	if err != nil {
		lvl := log.Info
		if status == "error" {
			lvl = log.Error
		}
		lvl("Match request failed",
			zap.Ints("seeds", req.Seeds()),
			zap.Int("top_n", req.TopN()),
			zap.String("status", status),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return result.Recommendation{}, err
	}

	log.Info("Match request completed",
		zap.Ints("seeds", req.Seeds()),
		zap.Int("top_n", req.TopN()),
		zap.Int("filters", len(req.Filters().Conditions())),
		zap.Int("results", len(rec.Scores())),
		zap.Duration("duration", duration),
	)
	return rec, nil
}

func (s *Service) recommend(ctx context.Context, req *request.Request) (result.Recommendation, error) {
	snap, err := s.catalog.Current(ctx)
	if err != nil {
		return result.Recommendation{}, fmt.Errorf("current catalog: %w", err)
	}
	ds := &snap.Dataset

	if err := req.Filters().Validate(ds.Schema()); err != nil {
		return result.Recommendation{}, err
	}

	metrics.MatchSeeds.Observe(float64(len(req.Seeds())))
	scores, err := Rank(&snap.Matrix, req.Seeds(), req.TopN())
	if err != nil {
		return result.Recommendation{}, err
	}

	scores, err = applyFilters(ds, scores, req.Filters())
	if err != nil {
		return result.Recommendation{}, err
	}
	if len(scores) == 0 {
		return result.Recommendation{}, domain.ErrNoMatches
	}

	return result.New(scores, comparison(ds, req.Seeds(), scores)), nil
}

func applyFilters(ds *profile.Dataset, scores []result.Score, set filter.Set) ([]result.Score, error) {
	if set.IsEmpty() {
		return scores, nil
	}
	out := make([]result.Score, 0, len(scores))
	for _, sc := range scores {
		keep := true
		for _, c := range set.Conditions() {
			v, ok := ds.Value(sc.ID(), c.Field())
			if !ok {
				return nil, fmt.Errorf("%w: unknown field %q", domain.ErrInvalidFilter, c.Field())
			}
			if !c.Matches(v) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, sc)
		}
	}
	return out, nil
}

func comparison(ds *profile.Dataset, seeds []int, scores []result.Score) result.Table {
	ids := make([]int, len(scores))
	for i, sc := range scores {
		ids[i] = sc.ID()
	}
	return result.TableOf(ds, seeds, ids)
}

func statusOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNoMatches):
		return "no_matches"
	case errors.Is(err, domain.ErrSeedOutOfRange),
		errors.Is(err, domain.ErrEmptySeeds),
		errors.Is(err, domain.ErrInvalidTopN),
		errors.Is(err, domain.ErrInvalidFilter):
		return "invalid"
	default:
		return "error"
	}
}
