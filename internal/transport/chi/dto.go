package chi

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/kailas-cloud/livio/internal/domain/explain"
	"github.com/kailas-cloud/livio/internal/domain/match/filter"
	"github.com/kailas-cloud/livio/internal/domain/match/request"
	"github.com/kailas-cloud/livio/internal/domain/match/result"
	"github.com/kailas-cloud/livio/internal/i18n"
	"github.com/kailas-cloud/livio/internal/usecase/catalog"
	profileuc "github.com/kailas-cloud/livio/internal/usecase/profile"
)

// MatchRequest is the body of POST /api/v1/matches and /api/v1/matches/export.
// Seed range and top_n are checked by the domain request.
type MatchRequest struct {
	SeedIDs []int          `json:"seed_ids" validate:"min=1,max=32"`
	TopN    *int           `json:"top_n,omitempty"`
	Filters MatchFilterSet `json:"filters"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the body shape before it reaches the domain.
func (m *MatchRequest) Validate() error {
	err := validate.Struct(m)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Tag() == "min" || fe.Tag() == "max" {
			return fmt.Errorf("%s must hold 1 to %d ids, got %d", fe.Field(), request.MaxSeeds, len(m.SeedIDs))
		}
		return fmt.Errorf("%s failed %q", fe.Field(), fe.Tag())
	}
	return fmt.Errorf("validate request: %w", err)
}

// MatchFilterSet toggles the preset post-ranking filters.
type MatchFilterSet struct {
	NonSmoker    bool `json:"non_smoker"`
	HealthyEater bool `json:"healthy_eater"`
	NoPetAllergy bool `json:"no_pet_allergy"`
}

func (f MatchFilterSet) toDomain() (filter.Set, error) {
	var conds []filter.Condition
	if f.NonSmoker {
		conds = append(conds, filter.NonSmoker)
	}
	if f.HealthyEater {
		conds = append(conds, filter.HealthyEater)
	}
	if f.NoPetAllergy {
		conds = append(conds, filter.NoPetAllergy)
	}
	return filter.NewSet(conds...)
}

// ScoreItem is one ranked candidate.
type ScoreItem struct {
	ID         int     `json:"id"`
	Score      float64 `json:"score"`
	Similarity float64 `json:"similarity"`
}

// Column is a comparison table column with its display label.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// TableRow is one profile of a comparison table.
type TableRow struct {
	ID     int      `json:"id"`
	Seed   bool     `json:"seed"`
	Values []string `json:"values"`
}

// Table is a localized comparison table.
type Table struct {
	Columns []Column   `json:"columns"`
	Rows    []TableRow `json:"rows"`
}

// TraitItem is an attribute shared by every profile of a recommendation.
type TraitItem struct {
	Attribute string `json:"attribute"`
	Value     string `json:"value"`
	Label     string `json:"label"`
	Icon      string `json:"icon"`
}

// MatchResponse is the body of a successful POST /api/v1/matches.
type MatchResponse struct {
	Locale       string      `json:"locale"`
	Scores       []ScoreItem `json:"scores"`
	Comparison   Table       `json:"comparison"`
	SharedTraits []TraitItem `json:"shared_traits"`
	Summary      string      `json:"summary,omitempty"`
}

// ProfileListResponse is the body of GET /api/v1/profiles.
type ProfileListResponse struct {
	Count       int      `json:"count"`
	IDs         []int    `json:"ids"`
	Attributes  []Column `json:"attributes"`
	Fingerprint string   `json:"fingerprint"`
}

// ProfileResponse is the body of GET /api/v1/profiles/{id}.
type ProfileResponse struct {
	Locale string         `json:"locale"`
	ID     int            `json:"id"`
	Fields []ProfileField `json:"fields"`
}

// ProfileField is one attribute of a profile with its raw and display value.
type ProfileField struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Raw   string `json:"raw"`
	Value string `json:"value"`
}

// RefreshResponse is the body of POST /api/v1/admin/refresh.
type RefreshResponse struct {
	Version     uint64    `json:"version"`
	Profiles    int       `json:"profiles"`
	Features    int       `json:"features"`
	Fingerprint string    `json:"fingerprint"`
	LoadedAt    time.Time `json:"loaded_at"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Version map[string]string `json:"version"`
}

func matchToResponse(rec result.Recommendation, locale i18n.Locale) MatchResponse {
	scores := make([]ScoreItem, len(rec.Scores()))
	for i, s := range rec.Scores() {
		scores[i] = ScoreItem{ID: s.ID(), Score: s.Score(), Similarity: percent(s.Score())}
	}

	traits := explain.SharedTraits(rec.Comparison(), locale, explain.MaxTraits)
	items := make([]TraitItem, len(traits))
	for i, t := range traits {
		items[i] = TraitItem{
			Attribute: t.Attribute,
			Value:     i18n.Value(locale, t.Value),
			Label:     t.Label,
			Icon:      t.Icon,
		}
	}

	resp := MatchResponse{
		Locale:       string(locale),
		Scores:       scores,
		Comparison:   tableToResponse(rec.Comparison(), locale),
		SharedTraits: items,
	}
	if len(items) == 0 {
		resp.Summary = i18n.Text(locale, i18n.KeyOverallFallback)
	}
	return resp
}

func tableToResponse(t result.Table, locale i18n.Locale) Table {
	rows := make([]TableRow, len(t.Rows()))
	for i, r := range t.Rows() {
		vals := make([]string, len(r.Values()))
		for j, v := range r.Values() {
			vals[j] = i18n.Value(locale, v)
		}
		rows[i] = TableRow{ID: r.ID(), Seed: r.IsSeed(), Values: vals}
	}
	return Table{Columns: columns(t.Attributes(), locale), Rows: rows}
}

func profileToResponse(id int, t result.Table, locale i18n.Locale) ProfileResponse {
	resp := ProfileResponse{Locale: string(locale), ID: id}
	if len(t.Rows()) == 0 {
		return resp
	}
	raw := t.Rows()[0].Values()
	resp.Fields = make([]ProfileField, len(t.Attributes()))
	for i, attr := range t.Attributes() {
		resp.Fields[i] = ProfileField{
			Key:   attr,
			Label: i18n.Attribute(locale, attr),
			Raw:   raw[i],
			Value: i18n.Value(locale, raw[i]),
		}
	}
	return resp
}

func summaryToResponse(s profileuc.Summary, locale i18n.Locale) ProfileListResponse {
	ids := make([]int, s.Count)
	for i := range ids {
		ids[i] = i + 1
	}
	return ProfileListResponse{
		Count:       s.Count,
		IDs:         ids,
		Attributes:  columns(s.Attributes, locale),
		Fingerprint: s.Fingerprint,
	}
}

func snapshotToResponse(snap *catalog.Snapshot) RefreshResponse {
	return RefreshResponse{
		Version:     snap.Version,
		Profiles:    snap.Dataset.Len(),
		Features:    snap.Matrix.Cols(),
		Fingerprint: snap.Dataset.Fingerprint(),
		LoadedAt:    snap.LoadedAt.UTC(),
	}
}

func columns(attrs []string, locale i18n.Locale) []Column {
	out := make([]Column, len(attrs))
	for i, a := range attrs {
		out[i] = Column{Key: a, Label: i18n.Attribute(locale, a)}
	}
	return out
}

// percent renders a cosine score as a similarity percentage with one decimal.
func percent(score float64) float64 {
	return math.Round(score*1000) / 10
}
