// Package export serializes comparison tables for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/kailas-cloud/livio/internal/domain/match/result"
	"github.com/kailas-cloud/livio/internal/i18n"
)

// Filename is the suggested name of the CSV attachment.
const Filename = "livio_results.csv"

// WriteCSV writes t transposed: one line per attribute, one column per profile,
// the same orientation as the on-screen comparison. The header starts with the
// localized ATTRIBUTE label followed by profile ids.
// Cells are written raw so the export round-trips to the dataset values.
func WriteCSV(w io.Writer, t result.Table, locale i18n.Locale) error {
	cw := csv.NewWriter(w)

	rows := t.Rows()
	header := make([]string, 0, len(rows)+1)
	header = append(header, i18n.Text(locale, i18n.KeyAttribute))
	for _, r := range rows {
		header = append(header, strconv.Itoa(r.ID()))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	line := make([]string, len(rows)+1)
	for j, attr := range t.Attributes() {
		line[0] = attr
		for i, r := range rows {
			line[i+1] = r.Values()[j]
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("write %s: %w", attr, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
