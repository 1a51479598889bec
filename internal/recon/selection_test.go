package recon

import (
	"testing"

	"shelfscan/internal/catalog"
)

func testResolutions() []Resolution {
	catan := Candidate{Record: catalog.Record{ID: 42, Name: "Catan", Rank: 5}, Similarity: 1.0}
	wingspan := Candidate{Record: catalog.Record{ID: 7, Name: "Wingspan", Rank: 12}, Similarity: 0.85}
	return []Resolution{
		{Detected: Detected{ExternalID: 1, Title: "Catan"}, Best: &catan, InCatalog: true},
		{Detected: Detected{ExternalID: 2, Title: "Wingspan"}, Best: &wingspan, InCatalog: true, InCollection: true},
		{Detected: Detected{ExternalID: 3, Title: "Zorbatron Quest"}},
	}
}

func TestNewSelectionDefaults(t *testing.T) {
	sel := NewSelection(testResolutions())

	if !sel.Selected(1) {
		t.Fatal("matched, unowned title must default to selected")
	}
	if sel.Selected(2) {
		t.Fatal("already-owned title must not default to selected")
	}
	if sel.Selected(3) {
		t.Fatal("unmatched title must not default to selected")
	}
	if sel.Len() != 1 {
		t.Fatalf("unexpected default selection size: %d", sel.Len())
	}
}

func TestToggleRejectsOwned(t *testing.T) {
	sel := NewSelection(testResolutions())

	if sel.Toggle(2) {
		t.Fatal("toggle must be rejected for owned titles")
	}
	if sel.Selected(2) {
		t.Fatal("rejected toggle must not change membership")
	}
}

func TestToggleRejectsUnmatched(t *testing.T) {
	sel := NewSelection(testResolutions())

	if sel.Toggle(3) {
		t.Fatal("toggle must be rejected for unmatched titles")
	}
	if sel.Toggle(99) {
		t.Fatal("toggle must be rejected for unknown ids")
	}
}

func TestToggleFlipsEligible(t *testing.T) {
	sel := NewSelection(testResolutions())

	if !sel.Toggle(1) {
		t.Fatal("toggle must apply to an eligible title")
	}
	if sel.Selected(1) {
		t.Fatal("expected deselection after toggle")
	}
	if !sel.Toggle(1) {
		t.Fatal("toggle back must apply")
	}
	if !sel.Selected(1) {
		t.Fatal("expected reselection after second toggle")
	}
}

func TestSelectionSubsetInvariant(t *testing.T) {
	results := testResolutions()
	sel := NewSelection(results)
	sel.Toggle(1)
	sel.Toggle(1)

	matched := make(map[int64]bool)
	for _, res := range results {
		if res.InCatalog {
			matched[res.Detected.ExternalID] = true
		}
	}
	for _, id := range sel.IDs() {
		if !matched[id] {
			t.Fatalf("selection contains unmatched id %d", id)
		}
	}
}

func TestClear(t *testing.T) {
	sel := NewSelection(testResolutions())
	sel.Clear()
	if sel.Len() != 0 {
		t.Fatalf("expected empty selection after Clear, got %d", sel.Len())
	}
	if !sel.Toggle(1) {
		t.Fatal("toggle must still work after Clear")
	}
}

func TestIDsSorted(t *testing.T) {
	catan := Candidate{Record: catalog.Record{ID: 42, Name: "Catan"}, Similarity: 1.0}
	results := []Resolution{
		{Detected: Detected{ExternalID: 30, Title: "c"}, Best: &catan, InCatalog: true},
		{Detected: Detected{ExternalID: 10, Title: "a"}, Best: &catan, InCatalog: true},
		{Detected: Detected{ExternalID: 20, Title: "b"}, Best: &catan, InCatalog: true},
	}
	sel := NewSelection(results)
	ids := sel.IDs()
	for i := 1; i < len(ids); i++ {
		if ids[i] < ids[i-1] {
			t.Fatalf("ids not sorted: %v", ids)
		}
	}
}
