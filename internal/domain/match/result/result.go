package result

import "github.com/kailas-cloud/livio/internal/domain/profile"

// Score is the aggregate similarity of one candidate against the seeds.
type Score struct {
	id    int
	score float64
}

// NewScore creates a candidate score.
func NewScore(id int, score float64) Score {
	return Score{id: id, score: score}
}

// ID returns the 1-based candidate id.
func (s Score) ID() int { return s.id }

// Score returns the mean cosine similarity in [-1, 1].
func (s Score) Score() float64 { return s.score }

// Row is one profile of the comparison table.
type Row struct {
	id     int
	seed   bool
	values []string
}

// NewRow creates a comparison row. values are aligned with the table attributes.
func NewRow(id int, seed bool, values []string) Row {
	return Row{id: id, seed: seed, values: values}
}

// ID returns the profile id.
func (r Row) ID() int { return r.id }

// IsSeed reports whether the row is one of the query seeds.
func (r Row) IsSeed() bool { return r.seed }

// Values returns the raw cells aligned with Table.Attributes.
func (r Row) Values() []string { return r.values }

// Table holds the raw fields of seeds and results side by side.
type Table struct {
	attributes []string
	rows       []Row
}

// NewTable creates a comparison table.
func NewTable(attributes []string, rows []Row) Table {
	return Table{attributes: attributes, rows: rows}
}

// Attributes returns the dataset columns (id excluded) in file order.
func (t Table) Attributes() []string { return t.attributes }

// Rows returns seeds first (ascending id) then results in rank order.
func (t Table) Rows() []Row { return t.rows }

// IDs returns the profile ids of all rows in table order.
func (t Table) IDs() []int {
	out := make([]int, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.id
	}
	return out
}

// Recommendation is the packaged answer to a matching query.
type Recommendation struct {
	scores     []Score
	comparison Table
}

// New creates a recommendation.
func New(scores []Score, comparison Table) Recommendation {
	return Recommendation{scores: scores, comparison: comparison}
}

// Scores returns the returned candidates ordered by descending score.
func (r Recommendation) Scores() []Score { return r.scores }

// Comparison returns the raw rows of seeds and returned candidates.
func (r Recommendation) Comparison() Table { return r.comparison }

// TableOf builds the comparison table of seeds (in the given order) followed by
// ids. Every dataset column except the id is kept unchanged. Unknown ids are skipped.
func TableOf(ds *profile.Dataset, seeds, ids []int) Table {
	idCol, _ := ds.Column(ds.Schema().IDColumn)
	attrs := make([]string, 0, len(ds.Header()))
	for i, h := range ds.Header() {
		if i != idCol {
			attrs = append(attrs, h)
		}
	}

	rows := make([]Row, 0, len(seeds)+len(ids))
	add := func(id int, seed bool) {
		p, ok := ds.Get(id)
		if !ok {
			return
		}
		vals := make([]string, 0, len(attrs))
		for i, v := range p.Values() {
			if i != idCol {
				vals = append(vals, v)
			}
		}
		rows = append(rows, NewRow(id, seed, vals))
	}
	for _, id := range seeds {
		add(id, true)
	}
	for _, id := range ids {
		add(id, false)
	}
	return NewTable(attrs, rows)
}
