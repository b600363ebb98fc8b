package models

import (
	"reflect"
	"testing"
)

func TestRecordMismatches(t *testing.T) {
	report := make(map[string][]string)

	if got := recordMismatches(report, "artists", []string{"id", "name"}, []string{"name", "id"}); got != nil {
		t.Errorf("fully mapped table: got %v", got)
	}
	if _, ok := report["artists"]; ok {
		t.Error("fully mapped table should not appear in the report")
	}

	got := recordMismatches(report, "projects", []string{"id", "title"}, []string{"title", "legacy_b", "id", "legacy_a"})
	want := []string{"legacy_a", "legacy_b"}
	if !reflect.DeepEqual(got, want) || !reflect.DeepEqual(report["projects"], want) {
		t.Errorf("got %v, report %v, want %v", got, report["projects"], want)
	}
	if len(report) != 1 {
		t.Errorf("expected one table in the report, got %d", len(report))
	}
}
