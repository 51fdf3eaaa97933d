package main

import (
	"testing"

	"github.com/phyten/tagx/internal/engine"
	"github.com/phyten/tagx/internal/model"
)

func TestParseSortSpecNormalizesKeys(t *testing.T) {
	spec, err := ParseSortSpec("state,-size,location")
	if err != nil {
		t.Fatalf("ParseSortSpec failed: %v", err)
	}
	want := []SortKey{
		{Name: "state", Desc: false},
		{Name: "lines", Desc: true},
		{Name: "file", Desc: false},
		{Name: "line", Desc: false},
	}
	if len(spec.Keys) != len(want) {
		t.Fatalf("unexpected key count: got=%v want=%v", spec.Keys, want)
	}
	for i, got := range spec.Keys {
		if got != want[i] {
			t.Fatalf("key %d mismatch: got=%+v want=%+v", i, got, want[i])
		}
	}
}

func TestParseSortSpecUnknownKey(t *testing.T) {
	if _, err := ParseSortSpec("unknown"); err == nil {
		t.Fatal("expected error for unknown sort key")
	}
}

func TestParseSortSpecEmptyEntry(t *testing.T) {
	if _, err := ParseSortSpec("state,,file"); err == nil {
		t.Fatal("expected error for empty sort key")
	}
}

func TestApplySortLines降順に並ぶ(t *testing.T) {
	items := []engine.Item{
		{File: "b.go", Line: 10, Code: model.Span{StartLine: 10, EndLine: 12}},
		{File: "a.go", Line: 5, Code: model.Span{StartLine: 5, EndLine: 7}},
		{File: "c.go", Line: 1, Code: model.Span{StartLine: 1, EndLine: 9}},
		{File: "a.go", Line: 2, Code: model.Span{StartLine: 2, EndLine: 10}},
	}

	if err := applySort(items, "-lines"); err != nil {
		t.Fatalf("applySort returned error: %v", err)
	}

	wantFiles := []string{"a.go", "c.go", "a.go", "b.go"}
	wantLines := []int{2, 1, 5, 10}
	for i := range wantFiles {
		if items[i].File != wantFiles[i] || items[i].Line != wantLines[i] {
			t.Fatalf("unexpected order at %d: got=%s:%d want=%s:%d", i, items[i].File, items[i].Line, wantFiles[i], wantLines[i])
		}
	}
}

func TestApplySortStateは深刻度順(t *testing.T) {
	items := []engine.Item{
		{File: "a.go", Line: 1, State: "allowed"},
		{File: "b.go", Line: 1, State: "warning"},
		{File: "c.go", Line: 1, State: "rejected"},
	}

	if err := applySort(items, "state"); err != nil {
		t.Fatalf("applySort returned error: %v", err)
	}

	want := []string{"rejected", "warning", "allowed"}
	for i, state := range want {
		if items[i].State != state {
			t.Fatalf("unexpected state order at %d: got=%s want=%s", i, items[i].State, state)
		}
	}
}

func TestApplySortUnknownKeyはエラー(t *testing.T) {
	items := make([]engine.Item, 0)
	if err := applySort(items, "date"); err == nil {
		t.Fatal("unsupported key should return error")
	}
}
