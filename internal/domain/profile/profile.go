package profile

// Profile is one immutable row of the tenant dataset.
// Values are the raw cells aligned with the owning dataset's header.
type Profile struct {
	id     int
	values []string
}

// New creates a profile. values must be aligned with the dataset header.
func New(id int, values []string) Profile {
	return Profile{id: id, values: append([]string(nil), values...)}
}

// ID returns the 1-based tenant id.
func (p *Profile) ID() int { return p.id }

// Values returns the raw cells in header order.
func (p *Profile) Values() []string { return p.values }

// At returns the raw cell at column index i.
func (p *Profile) At(i int) string { return p.values[i] }
