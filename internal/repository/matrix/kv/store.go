// Package kv persists feature matrices in Redis/Valkey hashes.
package kv

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/kailas-cloud/livio/internal/db"
	"github.com/kailas-cloud/livio/internal/domain"
	"github.com/kailas-cloud/livio/internal/domain/feature"
)

// Hash fields of a stored matrix.
const (
	fieldColumns = "columns"
	fieldRows    = "rows"
	fieldData    = "data"
)

// store is the consumer interface for the matrix cache (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

// Store keeps one hash per dataset fingerprint: <prefix>matrix:<fingerprint>.
type Store struct {
	store  store
	prefix string
	ttl    time.Duration
}

// New creates a KV matrix store. ttl <= 0 keeps entries until overwritten.
func New(s store, prefix string, ttl time.Duration) *Store {
	return &Store{store: s, prefix: prefix, ttl: ttl}
}

// Load returns the matrix stored for fingerprint.
func (s *Store) Load(ctx context.Context, fingerprint string) (feature.Matrix, error) {
	fields, err := s.store.HGetAll(ctx, s.key(fingerprint))
	if errors.Is(err, db.ErrKeyNotFound) {
		return feature.Matrix{}, domain.ErrMatrixNotFound
	}
	if err != nil {
		return feature.Matrix{}, fmt.Errorf("get matrix: %w", err)
	}

	m, err := decode(fields)
	if err != nil {
		return feature.Matrix{}, fmt.Errorf("%w: %v", domain.ErrMatrixNotFound, err)
	}
	return m, nil
}

// Save replaces the matrix stored for fingerprint.
func (s *Store) Save(ctx context.Context, fingerprint string, m *feature.Matrix) error {
	fields, err := encode(m)
	if err != nil {
		return err
	}

	key := s.key(fingerprint)
	if err := s.store.Del(ctx, key); err != nil {
		return fmt.Errorf("clear matrix: %w", err)
	}
	if err := s.store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("put matrix: %w", err)
	}
	if s.ttl > 0 {
		if err := s.store.Expire(ctx, key, s.ttl); err != nil {
			return fmt.Errorf("expire matrix: %w", err)
		}
	}
	return nil
}

func (s *Store) key(fingerprint string) string {
	return s.prefix + "matrix:" + fingerprint
}

func encode(m *feature.Matrix) (map[string]string, error) {
	cols, err := json.Marshal(m.Columns())
	if err != nil {
		return nil, fmt.Errorf("marshal columns: %w", err)
	}
	return map[string]string{
		fieldColumns: string(cols),
		fieldRows:    strconv.Itoa(m.Rows()),
		fieldData:    string(valuesToBytes(m.Flat())),
	}, nil
}

func decode(fields map[string]string) (feature.Matrix, error) {
	var cols []string
	if err := json.Unmarshal([]byte(fields[fieldColumns]), &cols); err != nil {
		return feature.Matrix{}, fmt.Errorf("unmarshal columns: %w", err)
	}
	rows, err := strconv.Atoi(fields[fieldRows])
	if err != nil {
		return feature.Matrix{}, fmt.Errorf("parse rows: %w", err)
	}
	data, err := bytesToValues([]byte(fields[fieldData]))
	if err != nil {
		return feature.Matrix{}, err
	}
	if len(data) != rows*len(cols) {
		return feature.Matrix{}, fmt.Errorf("have %d values, want %dx%d", len(data), rows, len(cols))
	}
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 1 {
			return feature.Matrix{}, fmt.Errorf("value %v at %d outside [0,1]", v, i)
		}
	}
	return feature.FromFlat(cols, data)
}

func valuesToBytes(v []float64) []byte {
	buf := make([]byte, len(v)*8)
	for i, f := range v {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(f))
	}
	return buf
}

func bytesToValues(data []byte) ([]float64, error) {
	if len(data)%8 != 0 {
		return nil, fmt.Errorf("invalid matrix data: len=%d (not multiple of 8)", len(data))
	}
	out := make([]float64, len(data)/8)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*8:]))
	}
	return out, nil
}
