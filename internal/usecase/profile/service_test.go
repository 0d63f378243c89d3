package profile

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/kailas-cloud/livio/internal/domain"
	domprofile "github.com/kailas-cloud/livio/internal/domain/profile"
	"github.com/kailas-cloud/livio/internal/usecase/catalog"
)

// --- Mocks ---

type mockCatalog struct {
	snap *catalog.Snapshot
	err  error
}

func (m *mockCatalog) Current(_ context.Context) (*catalog.Snapshot, error) {
	return m.snap, m.err
}

func testSnapshot(t *testing.T) *catalog.Snapshot {
	t.Helper()
	schema := domprofile.Schema{
		IDColumn:    "id_tenant",
		MultiValued: domprofile.MultiValued{Column: "languages_spoken"},
		Binary:      []string{"smoker"},
	}
	ds, err := domprofile.NewDataset(schema,
		[]string{"id_tenant", "languages_spoken", "smoker"},
		[][]string{{"1", "English", "No"}, {"2", "Spanish", "Yes"}},
		"fp",
	)
	if err != nil {
		t.Fatalf("NewDataset: %v", err)
	}
	return &catalog.Snapshot{Dataset: ds}
}

// --- Tests ---

func TestGet(t *testing.T) {
	svc := New(&mockCatalog{snap: testSnapshot(t)})

	tbl, err := svc.Get(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tbl.Rows()) != 1 || tbl.Rows()[0].ID() != 2 {
		t.Fatalf("unexpected rows: %v", tbl.IDs())
	}
	if got := tbl.Rows()[0].Values(); !slices.Equal(got, []string{"Spanish", "Yes"}) {
		t.Errorf("values = %v", got)
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := New(&mockCatalog{snap: testSnapshot(t)})
	if _, err := svc.Get(context.Background(), 3); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSummary(t *testing.T) {
	svc := New(&mockCatalog{snap: testSnapshot(t)})
	sum, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Count != 2 || sum.Fingerprint != "fp" {
		t.Errorf("summary = %+v", sum)
	}
	if !slices.Equal(sum.Attributes, []string{"languages_spoken", "smoker"}) {
		t.Errorf("attributes = %v", sum.Attributes)
	}
}

func TestCatalogError(t *testing.T) {
	svc := New(&mockCatalog{err: domain.ErrCatalogUnavailable})
	if _, err := svc.Get(context.Background(), 1); !errors.Is(err, domain.ErrCatalogUnavailable) {
		t.Errorf("Get: expected ErrCatalogUnavailable, got %v", err)
	}
	if _, err := svc.Summary(context.Background()); !errors.Is(err, domain.ErrCatalogUnavailable) {
		t.Errorf("Summary: expected ErrCatalogUnavailable, got %v", err)
	}
}
