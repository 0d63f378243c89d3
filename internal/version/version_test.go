package version

import "testing"

func TestFields(t *testing.T) {
	fields := Fields()
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}
	if fields[0].Key != "version" || fields[0].String != Version {
		t.Errorf("unexpected field: %+v", fields[0])
	}
}

func TestInfo(t *testing.T) {
	if Info()["commit"] != Commit {
		t.Errorf("Info() = %v", Info())
	}
}
