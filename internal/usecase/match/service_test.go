package match

import (
	"context"
	"errors"
	"os"
	"slices"
	"testing"

	"github.com/kailas-cloud/livio/internal/domain"
	"github.com/kailas-cloud/livio/internal/domain/feature"
	"github.com/kailas-cloud/livio/internal/domain/match/filter"
	"github.com/kailas-cloud/livio/internal/domain/match/request"
	"github.com/kailas-cloud/livio/internal/domain/profile"
	"github.com/kailas-cloud/livio/internal/metrics"
	"github.com/kailas-cloud/livio/internal/usecase/catalog"
)

func TestMain(m *testing.M) {
	metrics.RegisterMatchMetrics()
	os.Exit(m.Run())
}

// --- Mocks ---

type mockCatalog struct {
	snap *catalog.Snapshot
	err  error
}

func (m *mockCatalog) Current(_ context.Context) (*catalog.Snapshot, error) {
	return m.snap, m.err
}

// --- Helpers ---

var testHeader = []string{"id_tenant", "sleep_schedule", "languages_spoken", "smoker", "on_diet", "pet_allergy", "budget"}

func testSnapshot(t *testing.T) *catalog.Snapshot {
	t.Helper()
	schema := profile.Schema{
		IDColumn:    "id_tenant",
		MultiValued: profile.MultiValued{Column: "languages_spoken", Categories: []string{"English", "Spanish"}},
		Categorical: []string{"sleep_schedule"},
		Binary:      []string{"smoker", "on_diet", "pet_allergy"},
	}
	rows := [][]string{
		{"1", "Night owl", "English", "No", "Yes", "No", "400"},
		{"2", "Night owl", "English", "No", "No", "No", "420"},
		{"3", "Night owl", "English", "Yes", "Yes", "No", "410"},
		{"4", "Early bird", "Spanish", "Yes", "No", "Yes", "900"},
		{"5", "Night owl", "English, Spanish", "Yes", "Yes", "No", "430"},
		{"6", "Early bird", "Spanish", "No", "No", "Yes", "880"},
	}
	ds, err := profile.NewDataset(schema, testHeader, rows, "fp")
	if err != nil {
		t.Fatalf("NewDataset: %v", err)
	}
	m, v, err := feature.Encode(&ds)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return &catalog.Snapshot{Dataset: ds, Matrix: m, Vocabulary: v, Version: 1}
}

func newRequest(t *testing.T, seeds []int, topN int, conds ...filter.Condition) *request.Request {
	t.Helper()
	set, err := filter.NewSet(conds...)
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	req, err := request.New(seeds, topN, set)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return &req
}

// --- Tests ---

func TestRecommend_Success(t *testing.T) {
	svc := New(&mockCatalog{snap: testSnapshot(t)})

	rec, err := svc.Recommend(context.Background(), newRequest(t, []int{1, 2}, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.Scores()) != 3 {
		t.Fatalf("expected 3 scores, got %d", len(rec.Scores()))
	}
	for _, s := range rec.Scores() {
		if s.ID() == 1 || s.ID() == 2 {
			t.Errorf("seed %d returned", s.ID())
		}
	}

	tbl := rec.Comparison()
	ids := tbl.IDs()
	if len(ids) != 5 || ids[0] != 1 || ids[1] != 2 {
		t.Errorf("comparison ids = %v, want seeds first then results", ids)
	}
	for i, s := range rec.Scores() {
		if ids[i+2] != s.ID() {
			t.Errorf("comparison row %d = %d, want %d", i+2, ids[i+2], s.ID())
		}
	}
	if slices.Contains(tbl.Attributes(), "id_tenant") {
		t.Error("id column must not be an attribute")
	}
	if len(tbl.Attributes()) != len(testHeader)-1 {
		t.Errorf("attributes = %v", tbl.Attributes())
	}
}

func TestRecommend_FilterRemovesCandidates(t *testing.T) {
	svc := New(&mockCatalog{snap: testSnapshot(t)})

	rec, err := svc.Recommend(context.Background(), newRequest(t, []int{1}, 5, filter.NonSmoker))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range rec.Scores() {
		if v, _ := testSnapshot(t).Dataset.Value(s.ID(), "smoker"); v != profile.No {
			t.Errorf("id %d is a smoker", s.ID())
		}
	}
	if len(rec.Scores()) != 2 {
		t.Errorf("expected the 2 non-smokers, got %d", len(rec.Scores()))
	}
}

func TestRecommend_NoMatches(t *testing.T) {
	svc := New(&mockCatalog{snap: testSnapshot(t)})

	// the top 3 candidates of seed 1 (ids 2, 3, 5) all have pet_allergy=No
	petAllergy, err := filter.NewMatch("pet_allergy", profile.Yes)
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	_, err = svc.Recommend(context.Background(), newRequest(t, []int{1}, 3, petAllergy))
	if !errors.Is(err, domain.ErrNoMatches) {
		t.Fatalf("expected ErrNoMatches, got %v", err)
	}
}

func TestRecommend_FilterReadsPaddedBinaryCell(t *testing.T) {
	schema := profile.Schema{
		IDColumn:    "id_tenant",
		MultiValued: profile.MultiValued{Column: "languages_spoken", Categories: []string{"English", "Spanish"}},
		Binary:      []string{"smoker", "on_diet"},
	}
	header := []string{"id_tenant", "languages_spoken", "smoker", "on_diet", "budget"}
	rows := [][]string{
		{"1", "English", "No", "Yes", "400"},
		{"2", "English", " No", "Yes", "410"},
		{"3", "Spanish", "Yes", "No", "900"},
	}
	ds, err := profile.NewDataset(schema, header, rows, "fp")
	if err != nil {
		t.Fatalf("NewDataset: %v", err)
	}
	m, v, err := feature.Encode(&ds)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	svc := New(&mockCatalog{snap: &catalog.Snapshot{Dataset: ds, Matrix: m, Vocabulary: v, Version: 1}})

	rec, err := svc.Recommend(context.Background(), newRequest(t, []int{1}, 2, filter.NonSmoker))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.Scores()) != 1 || rec.Scores()[0].ID() != 2 {
		ids := make([]int, 0, len(rec.Scores()))
		for _, s := range rec.Scores() {
			ids = append(ids, s.ID())
		}
		t.Fatalf("matches = %v, want [2]", ids)
	}
}

func TestRecommend_SeedOutOfRange(t *testing.T) {
	svc := New(&mockCatalog{snap: testSnapshot(t)})

	for _, id := range []int{0, 7} {
		_, err := svc.Recommend(context.Background(), newRequest(t, []int{1, id}, 3))
		if !errors.Is(err, domain.ErrSeedOutOfRange) {
			t.Errorf("seed %d: expected ErrSeedOutOfRange, got %v", id, err)
		}
	}
}

func TestRecommend_FilterOnNonBinaryField(t *testing.T) {
	svc := New(&mockCatalog{snap: testSnapshot(t)})
	cond, err := filter.NewMatch("sleep_schedule", profile.No)
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	_, err = svc.Recommend(context.Background(), newRequest(t, []int{1}, 3, cond))
	if !errors.Is(err, domain.ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestRecommend_CatalogUnavailable(t *testing.T) {
	svc := New(&mockCatalog{err: domain.ErrCatalogUnavailable})
	_, err := svc.Recommend(context.Background(), newRequest(t, []int{1}, 3))
	if !errors.Is(err, domain.ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}
}

func TestStatusOf(t *testing.T) {
	tests := map[string]error{
		"ok":         nil,
		"no_matches": domain.ErrNoMatches,
		"invalid":    domain.NewSeedOutOfRange(0, 5),
		"error":      errors.New("boom"),
	}
	for want, err := range tests {
		if got := statusOf(err); got != want {
			t.Errorf("statusOf(%v) = %q, want %q", err, got, want)
		}
	}
}
