package profile

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/livio/internal/domain"
	"github.com/kailas-cloud/livio/internal/domain/match/result"
)

// Summary describes the loaded dataset.
type Summary struct {
	Count       int
	Attributes  []string
	Fingerprint string
}

// Service reads raw tenant profiles.
type Service struct {
	catalog Catalog
}

// New creates a profile service.
func New(c Catalog) *Service {
	return &Service{catalog: c}
}

// Get returns the raw fields of one profile as a single-row table.
func (s *Service) Get(ctx context.Context, id int) (result.Table, error) {
	snap, err := s.catalog.Current(ctx)
	if err != nil {
		return result.Table{}, fmt.Errorf("current catalog: %w", err)
	}
	if !snap.Dataset.Contains(id) {
		return result.Table{}, fmt.Errorf("profile %d: %w", id, domain.ErrNotFound)
	}
	return result.TableOf(&snap.Dataset, nil, []int{id}), nil
}

// Summary returns the profile count and attribute names. Ids are 1..Count.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	snap, err := s.catalog.Current(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("current catalog: %w", err)
	}
	ds := &snap.Dataset
	return Summary{
		Count:       ds.Len(),
		Attributes:  result.TableOf(ds, nil, nil).Attributes(),
		Fingerprint: ds.Fingerprint(),
	}, nil
}
