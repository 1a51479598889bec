package recon

import (
	"testing"

	"shelfscan/internal/catalog"
)

func TestRankOrdersBySimilarity(t *testing.T) {
	records := []catalog.Record{
		{ID: 1, Name: "Catan Histories", Rank: 200},
		{ID: 42, Name: "Catan", Rank: 5},
		{ID: 3, Name: "Catan: Seafarers", Rank: 80},
	}

	candidates := Rank("Catan", records, 0)
	if len(candidates) == 0 {
		t.Fatal("expected candidates")
	}
	if candidates[0].Record.ID != 42 {
		t.Fatalf("expected exact match first, got %d", candidates[0].Record.ID)
	}
	if candidates[0].Similarity != 1.0 {
		t.Fatalf("expected exact match similarity 1.0, got %v", candidates[0].Similarity)
	}
	for i := 1; i < len(candidates); i++ {
		if candidates[i].Similarity > candidates[i-1].Similarity {
			t.Fatalf("candidates not sorted by similarity: %v then %v",
				candidates[i-1].Similarity, candidates[i].Similarity)
		}
	}
}

func TestRankTieBreaksOnCatalogRank(t *testing.T) {
	// Identical names score identically; the lower rank number must win.
	records := []catalog.Record{
		{ID: 1, Name: "Catan", Rank: 120},
		{ID: 2, Name: "Catan", Rank: 5},
		{ID: 3, Name: "Catan", Rank: 40},
	}

	candidates := Rank("Catan", records, 0)
	if len(candidates) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(candidates))
	}
	wantOrder := []int64{2, 3, 1}
	for i, want := range wantOrder {
		if candidates[i].Record.ID != want {
			t.Fatalf("position %d: expected id %d, got %d", i, want, candidates[i].Record.ID)
		}
	}
}

func TestRankDiscardsLowScores(t *testing.T) {
	records := []catalog.Record{
		{ID: 1, Name: "Catan", Rank: 5},
		{ID: 2, Name: "Twilight Imperium: Fourth Edition", Rank: 30},
	}

	candidates := Rank("Zorbatron Quest", records, 0)
	if len(candidates) != 0 {
		t.Fatalf("expected no candidates above the floor, got %#v", candidates)
	}
}

func TestRankCustomFloor(t *testing.T) {
	records := []catalog.Record{
		{ID: 1, Name: "Wingspan", Rank: 12},
	}

	loose := Rank("Wingspan Europe", records, 0)
	if len(loose) != 1 {
		t.Fatalf("expected the substring match to survive the default floor, got %#v", loose)
	}
	strict := Rank("Wingspan Europe", records, 0.9)
	if len(strict) != 0 {
		t.Fatalf("expected the substring match to fall below 0.9, got %#v", strict)
	}
}

func TestRankEmptyInput(t *testing.T) {
	if candidates := Rank("Catan", nil, 0); len(candidates) != 0 {
		t.Fatalf("expected no candidates for empty records, got %#v", candidates)
	}
}
