package feature

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/kailas-cloud/livio/internal/domain"
	"github.com/kailas-cloud/livio/internal/domain/profile"
)

// LanguagePrefix prefixes the per-language indicator columns.
const LanguagePrefix = "lang_"

// Column describes one encoded feature and its fitted range.
type Column struct {
	Name  string
	Field string       // source dataset column
	Kind  profile.Kind // KindMultiValued, KindCategorical, KindBinary or KindNumeric
	Value string       // category for indicator columns
	Min   float64
	Max   float64
}

// Vocabulary is the encoder state fitted once on the full dataset: the column
// layout, the observed categories and each column's min/max. It is immutable
// and reused for every transform, so seed and candidate vectors always share
// one column space.
type Vocabulary struct {
	schema  profile.Schema
	header  map[string]int
	columns []Column
	byField map[string][]int // categorical field -> column indexes
}

// Fit learns the column layout and ranges of ds.
func Fit(ds *profile.Dataset) (Vocabulary, error) {
	v, _, err := fit(ds)
	if err != nil {
		return Vocabulary{}, err
	}
	return v, nil
}

// Encode fits a vocabulary on ds and returns the scaled feature matrix.
// The result depends only on ds, so encoding the same data twice yields
// bit-identical matrices.
func Encode(ds *profile.Dataset) (Matrix, Vocabulary, error) {
	v, raw, err := fit(ds)
	if err != nil {
		return Matrix{}, Vocabulary{}, err
	}
	for _, r := range raw {
		v.scale(r)
	}
	m, err := NewMatrix(v.Names(), raw)
	if err != nil {
		return Matrix{}, Vocabulary{}, fmt.Errorf("build matrix: %w", err)
	}
	return m, v, nil
}

func fit(ds *profile.Dataset) (Vocabulary, [][]float64, error) {
	schema := ds.Schema()
	header := make(map[string]int, len(ds.Header()))
	for i, h := range ds.Header() {
		header[h] = i
	}

	v := Vocabulary{schema: schema, header: header, byField: make(map[string][]int)}

	for _, lang := range schema.MultiValued.Categories {
		v.columns = append(v.columns, Column{
			Name: LanguagePrefix + lang, Field: schema.MultiValued.Column,
			Kind: profile.KindMultiValued, Value: lang,
		})
	}

	for _, field := range schema.Categorical {
		col := header[field]
		seen := make(map[string]bool)
		var values []string
		for _, p := range ds.Profiles() {
			val := strings.TrimSpace(p.At(col))
			if val == "" {
				return Vocabulary{}, nil, domain.NewIntegrityError(p.ID(), field, "empty categorical value")
			}
			if !seen[val] {
				seen[val] = true
				values = append(values, val)
			}
		}
		slices.Sort(values)
		for _, val := range values {
			v.byField[field] = append(v.byField[field], len(v.columns))
			v.columns = append(v.columns, Column{
				Name: field + "_" + val, Field: field, Kind: profile.KindCategorical, Value: val,
			})
		}
	}

	for _, field := range schema.Binary {
		v.columns = append(v.columns, Column{Name: field, Field: field, Kind: profile.KindBinary})
	}
	for _, field := range schema.NumericColumns(ds.Header()) {
		v.columns = append(v.columns, Column{Name: field, Field: field, Kind: profile.KindNumeric})
	}

	raw := make([][]float64, ds.Len())
	for i, p := range ds.Profiles() {
		r, err := v.raw(p)
		if err != nil {
			return Vocabulary{}, nil, err
		}
		raw[i] = r
	}

	for j := range v.columns {
		lo, hi := raw[0][j], raw[0][j]
		for _, r := range raw[1:] {
			lo = min(lo, r[j])
			hi = max(hi, r[j])
		}
		v.columns[j].Min, v.columns[j].Max = lo, hi
	}

	return v, raw, nil
}

// raw encodes p without scaling.
func (v *Vocabulary) raw(p profile.Profile) ([]float64, error) {
	out := make([]float64, len(v.columns))
	var langs []string
	for j, c := range v.columns {
		cell := p.At(v.header[c.Field])
		switch c.Kind {
		case profile.KindMultiValued:
			if langs == nil {
				langs = v.schema.MultiValued.Split(cell)
			}
			if slices.Contains(langs, c.Value) {
				out[j] = 1
			}
		case profile.KindCategorical:
			if strings.TrimSpace(cell) == c.Value {
				out[j] = 1
			}
		case profile.KindBinary:
			b, err := profile.ParseBinary(cell)
			if err != nil {
				return nil, domain.NewIntegrityError(p.ID(), c.Field, err.Error())
			}
			out[j] = b
		case profile.KindNumeric:
			f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, domain.NewIntegrityError(p.ID(), c.Field, "not a number")
			}
			out[j] = f
		}
	}
	return out, nil
}

// scale min-max scales r in place. Zero-variance columns become 0;
// values outside the fitted range are clamped to [0,1].
func (v *Vocabulary) scale(r []float64) {
	for j, c := range v.columns {
		span := c.Max - c.Min
		if span == 0 {
			r[j] = 0
			continue
		}
		r[j] = min(max((r[j]-c.Min)/span, 0), 1)
	}
}

// Transform encodes a single profile into the fitted column space.
// A categorical value outside the fitted vocabulary is an ErrUnknownCategory.
func (v *Vocabulary) Transform(p profile.Profile) ([]float64, error) {
	for _, field := range v.schema.Categorical {
		idx := v.byField[field]
		cell := strings.TrimSpace(p.At(v.header[field]))
		known := false
		for _, j := range idx {
			if v.columns[j].Value == cell {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("%w: %s=%q (profile %d)", domain.ErrUnknownCategory, field, cell, p.ID())
		}
	}
	r, err := v.raw(p)
	if err != nil {
		return nil, err
	}
	v.scale(r)
	return r, nil
}

// Decode reconstructs the category label of a categorical field from an
// encoded vector via the one-hot inverse mapping.
func (v *Vocabulary) Decode(vec []float64, field string) (string, error) {
	if len(vec) != len(v.columns) {
		return "", fmt.Errorf("vector has %d values, vocabulary has %d columns", len(vec), len(v.columns))
	}
	idx, ok := v.byField[field]
	if !ok {
		return "", fmt.Errorf("%q is not a categorical field", field)
	}
	if len(idx) == 1 {
		return v.columns[idx[0]].Value, nil
	}
	best := -1
	for _, j := range idx {
		if vec[j] > 0 && (best < 0 || vec[j] > vec[best]) {
			best = j
		}
	}
	if best < 0 {
		return "", fmt.Errorf("no category set for %q", field)
	}
	return v.columns[best].Value, nil
}

// Columns returns the fitted column descriptors.
func (v *Vocabulary) Columns() []Column { return v.columns }

// Names returns the ordered column names.
func (v *Vocabulary) Names() []string {
	out := make([]string, len(v.columns))
	for i, c := range v.columns {
		out[i] = c.Name
	}
	return out
}

// Categories returns the fitted values of a categorical field in column order.
func (v *Vocabulary) Categories(field string) []string {
	idx := v.byField[field]
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = v.columns[j].Value
	}
	return out
}
