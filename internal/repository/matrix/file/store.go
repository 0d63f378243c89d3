// Package file persists feature matrices as a CSV artifact with a JSON sidecar.
package file

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/kailas-cloud/livio/internal/domain"
	"github.com/kailas-cloud/livio/internal/domain/feature"
)

// metaSuffix names the sidecar next to the matrix CSV.
const metaSuffix = ".meta.json"

type meta struct {
	Fingerprint string    `json:"fingerprint"`
	Rows        int       `json:"rows"`
	Cols        int       `json:"cols"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store keeps one matrix at path. The sidecar ties it to a dataset fingerprint.
type Store struct {
	path string
	now  func() time.Time
}

// New creates a file store writing to path.
func New(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Load returns the persisted matrix when it was built from fingerprint.
// A missing, stale or unreadable artifact is domain.ErrMatrixNotFound.
func (s *Store) Load(_ context.Context, fingerprint string) (feature.Matrix, error) {
	rawMeta, err := os.ReadFile(s.path + metaSuffix)
	if errors.Is(err, fs.ErrNotExist) {
		return feature.Matrix{}, domain.ErrMatrixNotFound
	}
	if err != nil {
		return feature.Matrix{}, fmt.Errorf("read matrix meta: %w", err)
	}

	var m meta
	if err := json.Unmarshal(rawMeta, &m); err != nil {
		return feature.Matrix{}, fmt.Errorf("%w: corrupt meta: %v", domain.ErrMatrixNotFound, err)
	}
	if m.Fingerprint != fingerprint {
		return feature.Matrix{}, fmt.Errorf("%w: fingerprint changed", domain.ErrMatrixNotFound)
	}

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return feature.Matrix{}, domain.ErrMatrixNotFound
	}
	if err != nil {
		return feature.Matrix{}, fmt.Errorf("read matrix: %w", err)
	}

	mat, err := decode(raw)
	if err != nil {
		return feature.Matrix{}, fmt.Errorf("%w: %v", domain.ErrMatrixNotFound, err)
	}
	if mat.Rows() != m.Rows || mat.Cols() != m.Cols {
		return feature.Matrix{}, fmt.Errorf("%w: shape %dx%d, meta says %dx%d",
			domain.ErrMatrixNotFound, mat.Rows(), mat.Cols(), m.Rows, m.Cols)
	}
	return mat, nil
}

// Save writes the matrix then its sidecar, each via rename, so a reader never
// sees a sidecar pointing at a partial CSV.
func (s *Store) Save(_ context.Context, fingerprint string, m *feature.Matrix) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create matrix dir: %w", err)
	}

	data, err := encode(m)
	if err != nil {
		return err
	}
	if err := writeAtomic(s.path, data); err != nil {
		return fmt.Errorf("write matrix: %w", err)
	}

	rawMeta, err := json.MarshalIndent(meta{
		Fingerprint: fingerprint,
		Rows:        m.Rows(),
		Cols:        m.Cols(),
		CreatedAt:   s.now().UTC(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal matrix meta: %w", err)
	}
	if err := writeAtomic(s.path+metaSuffix, rawMeta); err != nil {
		return fmt.Errorf("write matrix meta: %w", err)
	}
	return nil
}

func encode(m *feature.Matrix) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(m.Columns()); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	line := make([]string, m.Cols())
	for i := range m.Rows() {
		for j, v := range m.Row(i) {
			line[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(line); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush matrix: %w", err)
	}
	return buf.Bytes(), nil
}

func decode(raw []byte) (feature.Matrix, error) {
	records, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	if err != nil {
		return feature.Matrix{}, fmt.Errorf("parse matrix csv: %w", err)
	}
	if len(records) == 0 {
		return feature.Matrix{}, fmt.Errorf("empty matrix file")
	}
	columns := records[0]
	data := make([]float64, 0, len(columns)*(len(records)-1))
	for i, rec := range records[1:] {
		for j, cell := range rec {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return feature.Matrix{}, fmt.Errorf("row %d col %d: %w", i, j, err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 1 {
				return feature.Matrix{}, fmt.Errorf("row %d col %d: value %v outside [0,1]", i, j, v)
			}
			data = append(data, v)
		}
	}
	return feature.FromFlat(columns, data)
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck,gosec // write error takes precedence
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
