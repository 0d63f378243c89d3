package livio

import (
	"fmt"
	"io"
	"math"

	"github.com/kailas-cloud/livio/internal/domain/explain"
	"github.com/kailas-cloud/livio/internal/domain/export"
	"github.com/kailas-cloud/livio/internal/domain/match/result"
	"github.com/kailas-cloud/livio/internal/i18n"
)

// ExportFilename is the suggested name of a CSV export.
const ExportFilename = export.Filename

// Match is one recommended tenant.
type Match struct {
	ID int
	// Score is the mean cosine similarity to the seeds.
	Score float64
	// Similarity is Score as a percentage with one decimal.
	Similarity float64
}

// Column is a dataset attribute with its localized label.
type Column struct {
	Key   string
	Label string
}

// ComparisonRow holds the localized values of one tenant.
type ComparisonRow struct {
	ID     int
	Seed   bool
	Values []string
}

// Comparison lists seeds first, then matches in rank order.
type Comparison struct {
	Columns []Column
	Rows    []ComparisonRow
}

// Trait is an attribute shared by every seed and match.
type Trait struct {
	Attribute string
	Value     string
	Label     string
	Icon      string
}

// Recommendation is the answer to a Recommend call.
type Recommendation struct {
	Locale       string
	Matches      []Match
	Comparison   Comparison
	SharedTraits []Trait
	// Summary explains the matches when they share no trait.
	Summary string

	table  result.Table
	locale i18n.Locale
}

// WriteCSV writes the comparison as CSV: one line per attribute, one column
// per tenant, raw dataset values.
func (r *Recommendation) WriteCSV(w io.Writer) error {
	if err := export.WriteCSV(w, r.table, r.locale); err != nil {
		return fmt.Errorf("livio: %w", err)
	}
	return nil
}

// Profile is the raw record of one tenant.
type Profile struct {
	ID     int
	Fields []Column
	Values []string
}

// Get returns the raw value of an attribute.
func (p Profile) Get(key string) (string, bool) {
	for i, c := range p.Fields {
		if c.Key == key {
			return p.Values[i], true
		}
	}
	return "", false
}

func recommendationFromDomain(rec result.Recommendation, locale i18n.Locale) *Recommendation {
	out := &Recommendation{
		Locale:  string(locale),
		Matches: make([]Match, len(rec.Scores())),
		table:   rec.Comparison(),
		locale:  locale,
	}
	for i, s := range rec.Scores() {
		out.Matches[i] = Match{ID: s.ID(), Score: s.Score(), Similarity: math.Round(s.Score()*1000) / 10}
	}

	t := rec.Comparison()
	out.Comparison.Columns = columnsFromDomain(t.Attributes(), locale)
	out.Comparison.Rows = make([]ComparisonRow, len(t.Rows()))
	for i, row := range t.Rows() {
		vals := make([]string, len(row.Values()))
		for j, v := range row.Values() {
			vals[j] = i18n.Value(locale, v)
		}
		out.Comparison.Rows[i] = ComparisonRow{ID: row.ID(), Seed: row.IsSeed(), Values: vals}
	}

	for _, tr := range explain.SharedTraits(t, locale, explain.MaxTraits) {
		out.SharedTraits = append(out.SharedTraits, Trait{
			Attribute: tr.Attribute,
			Value:     i18n.Value(locale, tr.Value),
			Label:     tr.Label,
			Icon:      tr.Icon,
		})
	}
	if len(out.SharedTraits) == 0 {
		out.Summary = i18n.Text(locale, i18n.KeyOverallFallback)
	}
	return out
}

func columnsFromDomain(attrs []string, locale i18n.Locale) []Column {
	out := make([]Column, len(attrs))
	for i, a := range attrs {
		out[i] = Column{Key: a, Label: i18n.Attribute(locale, a)}
	}
	return out
}
