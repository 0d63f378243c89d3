package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kailas-cloud/livio/internal/domain"
	"github.com/kailas-cloud/livio/internal/domain/profile"
)

func testSchema() profile.Schema {
	return profile.Schema{
		IDColumn: "id_tenant",
		MultiValued: profile.MultiValued{
			Column:     "languages_spoken",
			Categories: []string{"English", "Spanish"},
			Separator:  ",",
		},
		Categorical: []string{"sleep_schedule"},
		Binary:      []string{"smoker"},
	}
}

const sample = "id_tenant,sleep_schedule,languages_spoken,smoker,budget\n" +
	"2,Night owl,English,No,500\n" +
	"1,Early bird,\"Spanish, English\",Yes,400\n"

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tenants.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	l := New(writeFile(t, sample), testSchema())
	ds, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.Len() != 2 {
		t.Fatalf("Len() = %d", ds.Len())
	}
	if v, _ := ds.Value(1, "languages_spoken"); v != "Spanish, English" {
		t.Errorf("languages of 1 = %q", v)
	}
	if ds.Fingerprint() != Fingerprint([]byte(sample)) {
		t.Errorf("fingerprint mismatch")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "nope.csv"), testSchema())
	_, err := l.Load(context.Background())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestLoad_MissingColumn(t *testing.T) {
	l := New(writeFile(t, "id_tenant,languages_spoken,smoker\n1,English,No\n"), testSchema())
	_, err := l.Load(context.Background())
	if !errors.Is(err, domain.ErrDataIntegrity) {
		t.Fatalf("expected ErrDataIntegrity, got %v", err)
	}
}

func TestParse_StripsBOM(t *testing.T) {
	ds, err := Parse(append([]byte{0xEF, 0xBB, 0xBF}, sample...), testSchema())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.Header()[0] != "id_tenant" {
		t.Errorf("header[0] = %q", ds.Header()[0])
	}
}

func TestParse_Empty(t *testing.T) {
	if _, err := Parse(nil, testSchema()); !errors.Is(err, domain.ErrDataIntegrity) {
		t.Fatalf("expected ErrDataIntegrity, got %v", err)
	}
}

func TestFingerprint_ChangesWithContent(t *testing.T) {
	a := Fingerprint([]byte(sample))
	b := Fingerprint([]byte(sample + "3,Balanced,English,No,450\n"))
	if a == b {
		t.Error("different content must change the fingerprint")
	}
	if a != Fingerprint([]byte(sample)) {
		t.Error("fingerprint must be deterministic")
	}
}
