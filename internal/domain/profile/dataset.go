package profile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/livio/internal/domain"
)

// Dataset is the immutable, id-ordered set of tenant profiles.
// Ids are dense: profiles[i].ID() == i+1.
type Dataset struct {
	schema      Schema
	header      []string
	index       map[string]int
	profiles    []Profile
	fingerprint string
}

// NewDataset validates rows against the schema and orders them by id.
// Rows may come in any order but their ids must cover 1..len(rows) exactly once.
func NewDataset(schema Schema, header []string, rows [][]string, fingerprint string) (Dataset, error) {
	if err := schema.Validate(header); err != nil {
		return Dataset{}, err
	}
	if len(rows) == 0 {
		return Dataset{}, domain.NewIntegrityError(0, "", "dataset has no rows")
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[h] = i
	}
	idCol := index[schema.IDColumn]

	profiles := make([]Profile, len(rows))
	filled := make([]bool, len(rows))
	for i, row := range rows {
		if len(row) != len(header) {
			return Dataset{}, domain.NewIntegrityError(i+1, "",
				fmt.Sprintf("expected %d fields, got %d", len(header), len(row)))
		}
		id, err := strconv.Atoi(strings.TrimSpace(row[idCol]))
		if err != nil {
			return Dataset{}, domain.NewIntegrityError(i+1, schema.IDColumn, "id is not an integer")
		}
		if id < 1 || id > len(rows) {
			return Dataset{}, domain.NewIntegrityError(i+1, schema.IDColumn,
				fmt.Sprintf("id %d outside dense range 1..%d", id, len(rows)))
		}
		if filled[id-1] {
			return Dataset{}, domain.NewIntegrityError(i+1, schema.IDColumn, fmt.Sprintf("duplicate id %d", id))
		}
		filled[id-1] = true
		profiles[id-1] = New(id, row)
	}

	return Dataset{
		schema:      schema,
		header:      append([]string(nil), header...),
		index:       index,
		profiles:    profiles,
		fingerprint: fingerprint,
	}, nil
}

// Schema returns the dataset schema.
func (d *Dataset) Schema() Schema { return d.schema }

// Header returns the column names in file order.
func (d *Dataset) Header() []string { return d.header }

// Len returns the number of profiles.
func (d *Dataset) Len() int { return len(d.profiles) }

// Profiles returns all profiles ordered by id.
func (d *Dataset) Profiles() []Profile { return d.profiles }

// Fingerprint identifies the raw dataset contents the profiles were read from.
func (d *Dataset) Fingerprint() string { return d.fingerprint }

// Contains reports whether id is a valid profile id.
func (d *Dataset) Contains(id int) bool { return id >= 1 && id <= len(d.profiles) }

// Get returns the profile with the given id.
func (d *Dataset) Get(id int) (Profile, bool) {
	if !d.Contains(id) {
		return Profile{}, false
	}
	return d.profiles[id-1], true
}

// Column returns the index of a column in the header.
func (d *Dataset) Column(name string) (int, bool) {
	i, ok := d.index[name]
	return i, ok
}

// Value returns the raw value of column for profile id.
func (d *Dataset) Value(id int, column string) (string, bool) {
	p, ok := d.Get(id)
	if !ok {
		return "", false
	}
	i, ok := d.index[column]
	if !ok {
		return "", false
	}
	return p.At(i), true
}
