package dataset

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/kailas-cloud/livio/internal/domain"
	"github.com/kailas-cloud/livio/internal/domain/profile"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Loader reads the tenant dataset from a CSV file.
type Loader struct {
	path   string
	schema profile.Schema
}

// New creates a loader for the CSV file at path.
func New(path string, schema profile.Schema) *Loader {
	return &Loader{path: path, schema: schema}
}

// Path returns the dataset file location.
func (l *Loader) Path() string { return l.path }

// Load reads and validates the dataset. The whole file is read so the
// fingerprint covers exactly the bytes the profiles were parsed from.
func (l *Loader) Load(ctx context.Context) (profile.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return profile.Dataset{}, err
	}
	raw, err := os.ReadFile(l.path)
	if err != nil {
		return profile.Dataset{}, fmt.Errorf("read dataset %s: %w", l.path, err)
	}
	ds, err := Parse(raw, l.schema)
	if err != nil {
		return profile.Dataset{}, fmt.Errorf("parse dataset %s: %w", l.path, err)
	}
	return ds, nil
}

// Parse decodes CSV bytes into a dataset.
func Parse(raw []byte, schema profile.Schema) (profile.Dataset, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(raw, utf8BOM)))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return profile.Dataset{}, domain.NewIntegrityError(0, "", err.Error())
	}
	if len(records) == 0 {
		return profile.Dataset{}, domain.NewIntegrityError(0, "", "missing header")
	}
	return profile.NewDataset(schema, records[0], records[1:], Fingerprint(raw))
}

// Fingerprint identifies dataset contents together with the encoder schema version.
func Fingerprint(raw []byte) string {
	h := sha256.New()
	h.Write([]byte("v" + profile.SchemaVersion + "\n"))
	h.Write(raw)
	return hex.EncodeToString(h.Sum(nil))
}
