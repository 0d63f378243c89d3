// Package explain derives human-readable reasons for a set of matches.
package explain

import (
	"github.com/kailas-cloud/livio/internal/domain/match/result"
	"github.com/kailas-cloud/livio/internal/i18n"
)

// MaxTraits is the default number of shared traits surfaced per recommendation.
const MaxTraits = 5

// Trait is an attribute every profile of a comparison shares.
type Trait struct {
	Attribute string
	Value     string
	Label     string
	Icon      string
}

// SharedTraits returns up to limit attributes whose raw value is identical
// across every row of t, in attribute order. A table with fewer than two rows
// shares nothing.
func SharedTraits(t result.Table, locale i18n.Locale, limit int) []Trait {
	rows := t.Rows()
	if len(rows) < 2 || limit <= 0 {
		return nil
	}

	var out []Trait
	for j, attr := range t.Attributes() {
		first := rows[0].Values()[j]
		if first == "" {
			continue
		}
		shared := true
		for _, r := range rows[1:] {
			if r.Values()[j] != first {
				shared = false
				break
			}
		}
		if !shared {
			continue
		}
		label, icon := i18n.Trait(locale, attr)
		out = append(out, Trait{Attribute: attr, Value: first, Label: label, Icon: icon})
		if len(out) == limit {
			break
		}
	}
	return out
}
