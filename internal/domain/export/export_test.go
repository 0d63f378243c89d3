package export

import (
	"bytes"
	"testing"

	"github.com/kailas-cloud/livio/internal/domain/match/result"
	"github.com/kailas-cloud/livio/internal/i18n"
)

func sampleTable() result.Table {
	return result.NewTable(
		[]string{"languages_spoken", "smoker"},
		[]result.Row{
			result.NewRow(1, true, []string{"English, Spanish", "No"}),
			result.NewRow(7, false, []string{"German", "Yes"}),
		},
	)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleTable(), i18n.English); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "ATTRIBUTE,1,7\n" +
		"languages_spoken,\"English, Spanish\",German\n" +
		"smoker,No,Yes\n"
	if buf.String() != want {
		t.Errorf("csv =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWriteCSV_SpanishHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleTable(), i18n.Spanish); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("ATRIBUTO,1,7\n")) {
		t.Errorf("unexpected header: %q", buf.String())
	}
}
