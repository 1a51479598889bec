package recon

import (
	"context"
	"errors"
	"testing"

	"shelfscan/internal/catalog"
)

type fakeStore struct {
	owned    map[int64]bool
	ownedErr error
	addErr   error
	addCalls int
}

func (f *fakeStore) OwnedSet(ctx context.Context, userID string, gameIDs []int64) (map[int64]bool, error) {
	if f.ownedErr != nil {
		return nil, f.ownedErr
	}
	result := make(map[int64]bool, len(gameIDs))
	for _, id := range gameIDs {
		if f.owned[id] {
			result[id] = true
		}
	}
	return result, nil
}

func (f *fakeStore) Add(ctx context.Context, userID string, records []catalog.Record) (int, error) {
	f.addCalls++
	if f.addErr != nil {
		return 0, f.addErr
	}
	inserted := 0
	for _, record := range records {
		if !f.owned[record.ID] {
			f.owned[record.ID] = true
			inserted++
		}
	}
	return inserted, nil
}

func TestCommitEmptySelection(t *testing.T) {
	store := &fakeStore{owned: map[int64]bool{}}
	committer := NewCommitter(store, nil)

	_, err := committer.Commit(context.Background(), "alice", NewSelection(nil))
	if !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
	if store.addCalls != 0 {
		t.Fatal("empty selection must not reach the store")
	}
}

func TestCommitAddsSelection(t *testing.T) {
	store := &fakeStore{owned: map[int64]bool{}}
	committer := NewCommitter(store, nil)
	sel := NewSelection(testResolutions())

	outcome, err := committer.Commit(context.Background(), "alice", sel)
	if err != nil {
		t.Fatalf("Commit returned error: %v", err)
	}
	if outcome.Added != 1 || outcome.Duplicates != 0 {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
	if !store.owned[42] {
		t.Fatal("expected game 42 inserted")
	}
}

func TestCommitIdempotent(t *testing.T) {
	store := &fakeStore{owned: map[int64]bool{}}
	committer := NewCommitter(store, nil)
	sel := NewSelection(testResolutions())

	first, err := committer.Commit(context.Background(), "alice", sel)
	if err != nil {
		t.Fatalf("first Commit returned error: %v", err)
	}
	second, err := committer.Commit(context.Background(), "alice", sel)
	if err != nil {
		t.Fatalf("second Commit returned error: %v", err)
	}
	if first.Added != 1 {
		t.Fatalf("first commit: expected 1 added, got %+v", first)
	}
	if second.Added != 0 || second.Duplicates != sel.Len() {
		t.Fatalf("second commit: expected all duplicates, got %+v", second)
	}
	if !second.NothingToAdd() {
		t.Fatal("second commit must report nothing to add")
	}
}

func TestCommitRaceReportsDuplicates(t *testing.T) {
	// Scenario: two games selected, one became owned between resolution
	// and commit (another session added it).
	catan := Candidate{Record: catalog.Record{ID: 42, Name: "Catan", Rank: 5}, Similarity: 1.0}
	wingspan := Candidate{Record: catalog.Record{ID: 7, Name: "Wingspan", Rank: 12}, Similarity: 1.0}
	results := []Resolution{
		{Detected: Detected{ExternalID: 1, Title: "Catan"}, Best: &catan, InCatalog: true},
		{Detected: Detected{ExternalID: 2, Title: "Wingspan"}, Best: &wingspan, InCatalog: true},
	}
	store := &fakeStore{owned: map[int64]bool{7: true}}
	committer := NewCommitter(store, nil)

	outcome, err := committer.Commit(context.Background(), "alice", NewSelection(results))
	if err != nil {
		t.Fatalf("Commit returned error: %v", err)
	}
	if outcome.Added != 1 || outcome.Duplicates != 1 {
		t.Fatalf("expected added=1 duplicates=1, got %+v", outcome)
	}
}

func TestCommitAllOwnedSkipsWrite(t *testing.T) {
	catan := Candidate{Record: catalog.Record{ID: 42, Name: "Catan", Rank: 5}, Similarity: 1.0}
	results := []Resolution{
		{Detected: Detected{ExternalID: 1, Title: "Catan"}, Best: &catan, InCatalog: true},
	}
	store := &fakeStore{owned: map[int64]bool{42: true}}
	committer := NewCommitter(store, nil)

	outcome, err := committer.Commit(context.Background(), "alice", NewSelection(results))
	if err != nil {
		t.Fatalf("Commit returned error: %v", err)
	}
	if outcome.Added != 0 || outcome.Duplicates != 1 {
		t.Fatalf("expected all duplicates, got %+v", outcome)
	}
	if store.addCalls != 0 {
		t.Fatal("expected no write when everything is owned")
	}
}

func TestCommitNoValidSelection(t *testing.T) {
	// Defensive: a selected id whose resolution lost its best match.
	results := []Resolution{
		{Detected: Detected{ExternalID: 1, Title: "Ghost"}, InCatalog: true},
	}
	store := &fakeStore{owned: map[int64]bool{}}
	committer := NewCommitter(store, nil)

	_, err := committer.Commit(context.Background(), "alice", NewSelection(results))
	if !errors.Is(err, ErrNoValidSelection) {
		t.Fatalf("expected ErrNoValidSelection, got %v", err)
	}
	if store.addCalls != 0 {
		t.Fatal("expected no write for invalid selection")
	}
}

func TestCommitUpsertFailure(t *testing.T) {
	store := &fakeStore{owned: map[int64]bool{}, addErr: errors.New("disk full")}
	committer := NewCommitter(store, nil)
	sel := NewSelection(testResolutions())

	_, err := committer.Commit(context.Background(), "alice", sel)
	if !errors.Is(err, ErrUpsert) {
		t.Fatalf("expected ErrUpsert, got %v", err)
	}
}

func TestCommitOwnershipRecheckFailure(t *testing.T) {
	store := &fakeStore{owned: map[int64]bool{}, ownedErr: errors.New("db locked")}
	committer := NewCommitter(store, nil)
	sel := NewSelection(testResolutions())

	_, err := committer.Commit(context.Background(), "alice", sel)
	if err == nil {
		t.Fatal("expected error when ownership re-check fails")
	}
	if store.addCalls != 0 {
		t.Fatal("expected no write after failed re-check")
	}
}
