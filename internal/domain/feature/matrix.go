package feature

import (
	"fmt"
	"math"
	"slices"
)

// Matrix is a dense, row-major feature matrix aligned row-for-row with a dataset.
// Row i holds the feature vector of profile id i+1. A Matrix is never mutated
// after construction.
type Matrix struct {
	columns []string
	data    []float64
	rows    int
}

// NewMatrix copies rows into a matrix. Every row must have len(columns) values.
func NewMatrix(columns []string, rows [][]float64) (Matrix, error) {
	if len(columns) == 0 {
		return Matrix{}, fmt.Errorf("matrix requires at least one column")
	}
	data := make([]float64, 0, len(columns)*len(rows))
	for i, r := range rows {
		if len(r) != len(columns) {
			return Matrix{}, fmt.Errorf("row %d: expected %d values, got %d", i, len(columns), len(r))
		}
		data = append(data, r...)
	}
	return Matrix{columns: slices.Clone(columns), data: data, rows: len(rows)}, nil
}

// FromFlat builds a matrix from row-major values (storage hydration).
func FromFlat(columns []string, data []float64) (Matrix, error) {
	if len(columns) == 0 {
		return Matrix{}, fmt.Errorf("matrix requires at least one column")
	}
	if len(data)%len(columns) != 0 {
		return Matrix{}, fmt.Errorf("%d values do not fill rows of %d columns", len(data), len(columns))
	}
	return Matrix{
		columns: slices.Clone(columns),
		data:    slices.Clone(data),
		rows:    len(data) / len(columns),
	}, nil
}

// Rows returns the number of feature vectors.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the feature width.
func (m *Matrix) Cols() int { return len(m.columns) }

// Columns returns the ordered column names.
func (m *Matrix) Columns() []string { return m.columns }

// Row returns a read-only view of row i. Callers must not modify it.
func (m *Matrix) Row(i int) []float64 {
	w := len(m.columns)
	return m.data[i*w : (i+1)*w : (i+1)*w]
}

// At returns the value at row i, column j.
func (m *Matrix) At(i, j int) float64 { return m.data[i*len(m.columns)+j] }

// Flat returns the row-major backing values. Callers must not modify them.
func (m *Matrix) Flat() []float64 { return m.data }

// IsEmpty reports whether the matrix holds no columns.
func (m *Matrix) IsEmpty() bool { return len(m.columns) == 0 }

// Equal reports bit-identical equality of columns and values.
func (m *Matrix) Equal(o *Matrix) bool {
	if m.rows != o.rows || !slices.Equal(m.columns, o.columns) || len(m.data) != len(o.data) {
		return false
	}
	for i := range m.data {
		if math.Float64bits(m.data[i]) != math.Float64bits(o.data[i]) {
			return false
		}
	}
	return true
}
