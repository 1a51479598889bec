package recon

import (
	"context"
	"fmt"
	"log/slog"

	"shelfscan/internal/catalog"
	"shelfscan/internal/logging"
)

// CommitStore is the collection surface the commit engine writes through.
// Add must be idempotent on (user, game id) and safe under concurrent
// calls with overlapping ids.
type CommitStore interface {
	OwnedSet(ctx context.Context, userID string, gameIDs []int64) (map[int64]bool, error)
	Add(ctx context.Context, userID string, records []catalog.Record) (int, error)
}

// Committer persists a confirmed selection into the collection.
type Committer struct {
	store  CommitStore
	logger *slog.Logger
}

// NewCommitter constructs a Committer. A nil logger disables logging.
func NewCommitter(store CommitStore, logger *slog.Logger) *Committer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Committer{store: store, logger: logger}
}

// Commit writes the selected games into the user's collection and reports
// what happened. Ownership is re-checked immediately before the write
// because time has passed since resolution, but the store's conflict key
// remains the authoritative duplicate guard: games that lose a race to a
// concurrent commit surface as duplicates, never as errors or double rows.
//
// An empty selection returns ErrNoSelection and performs no store call.
// A selection where no id has a catalog match returns ErrNoValidSelection.
// When everything selected is already owned, the outcome reports only
// duplicates and no write is performed.
func (c *Committer) Commit(ctx context.Context, userID string, sel *Selection) (Outcome, error) {
	if sel == nil || sel.Len() == 0 {
		return Outcome{}, ErrNoSelection
	}

	var (
		records []catalog.Record
		ids     []int64
		skipped int
	)
	for _, id := range sel.IDs() {
		res, ok := sel.resolution(id)
		if !ok || res.Best == nil {
			skipped++
			continue
		}
		records = append(records, res.Best.Record)
		ids = append(ids, res.Best.Record.ID)
	}
	if len(records) == 0 {
		return Outcome{SkippedNoMatch: skipped}, ErrNoValidSelection
	}

	owned, err := c.store.OwnedSet(ctx, userID, ids)
	if err != nil {
		return Outcome{}, fmt.Errorf("re-check ownership: %w", err)
	}

	fresh := make([]catalog.Record, 0, len(records))
	for _, record := range records {
		if !owned[record.ID] {
			fresh = append(fresh, record)
		}
	}

	if len(fresh) == 0 {
		outcome := Outcome{Duplicates: len(records), SkippedNoMatch: skipped}
		c.logger.Info("commit skipped, everything already owned",
			logging.String("user", userID),
			logging.Int("duplicates", outcome.Duplicates),
		)
		return outcome, nil
	}

	inserted, err := c.store.Add(ctx, userID, fresh)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %w", ErrUpsert, err)
	}

	outcome := Outcome{
		Added:          inserted,
		Duplicates:     len(records) - inserted,
		SkippedNoMatch: skipped,
	}
	c.logger.Info("commit complete",
		logging.String("user", userID),
		logging.Int("added", outcome.Added),
		logging.Int("duplicates", outcome.Duplicates),
		logging.Int("skipped_no_match", outcome.SkippedNoMatch),
	)
	return outcome, nil
}
