package recon

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"shelfscan/internal/catalog"
	"shelfscan/internal/logging"
)

// Membership answers whether a user already owns a catalog game.
type Membership interface {
	IsOwned(ctx context.Context, userID string, gameID int64) (bool, error)
}

// Batch is one immutable set of detected titles. ID is the analysis
// service's batch identity; when empty, a key derived from the detected
// ids stands in for it.
type Batch struct {
	ID     string
	UserID string
	Items  []Detected
}

func (b Batch) key() string {
	if id := strings.TrimSpace(b.ID); id != "" {
		return b.UserID + "|" + id
	}
	ids := make([]int64, 0, len(b.Items))
	for _, item := range b.Items {
		ids = append(ids, item.ExternalID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return b.UserID + "|" + strings.Join(parts, ",")
}

// ResolverOptions tune batch resolution.
type ResolverOptions struct {
	// SearchLimit bounds the candidate records fetched per title.
	SearchLimit int
	// MinSimilarity is the candidate score floor; <= 0 uses the default.
	MinSimilarity float64
	// TaskTimeout caps one title's search plus ownership lookup.
	TaskTimeout time.Duration
}

func (o ResolverOptions) normalized() ResolverOptions {
	if o.SearchLimit <= 0 {
		o.SearchLimit = 10
	}
	if o.MinSimilarity <= 0 {
		o.MinSimilarity = DefaultMinSimilarity
	}
	if o.TaskTimeout <= 0 {
		o.TaskTimeout = 15 * time.Second
	}
	return o
}

type batchEntry struct {
	done    chan struct{}
	results []Resolution
	// err records an abandoned run; written before done is closed.
	err error
}

// Resolver reconciles detected titles against the catalog and collection.
// It is safe for concurrent use; each batch runs at most once.
type Resolver struct {
	search     catalog.Searcher
	membership Membership
	logger     *slog.Logger
	opts       ResolverOptions

	mu      sync.Mutex
	batches map[string]*batchEntry
}

// NewResolver constructs a Resolver. A nil logger disables logging.
func NewResolver(search catalog.Searcher, membership Membership, logger *slog.Logger, opts ResolverOptions) *Resolver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Resolver{
		search:     search,
		membership: membership,
		logger:     logger,
		opts:       opts.normalized(),
		batches:    make(map[string]*batchEntry),
	}
}

// Resolve produces one Resolution per detected title that could be
// searched. Titles whose search or ownership lookup fails are logged and
// dropped; the batch itself never fails. Results carry no order guarantee;
// callers needing determinism sort by Detected.ExternalID.
//
// Resolve is idempotent per batch: a repeat call for an in-flight or
// completed batch joins the existing run instead of issuing new catalog
// queries. A run abandoned by context cancellation is forgotten so a later
// retry can resolve the batch fresh; callers that joined the abandoned run
// start that retry themselves rather than returning its empty result.
func (r *Resolver) Resolve(ctx context.Context, batch Batch) ([]Resolution, error) {
	if len(batch.Items) == 0 {
		return nil, nil
	}

	key := batch.key()
	r.mu.Lock()
	if entry, ok := r.batches[key]; ok {
		r.mu.Unlock()
		select {
		case <-entry.done:
			if entry.err != nil {
				// The run we joined was abandoned and its entry is
				// already gone; resolve the batch fresh.
				return r.Resolve(ctx, batch)
			}
			return append([]Resolution(nil), entry.results...), nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	entry := &batchEntry{done: make(chan struct{})}
	r.batches[key] = entry
	r.mu.Unlock()

	slots := make([]*Resolution, len(batch.Items))
	var wg sync.WaitGroup
	for i, item := range batch.Items {
		wg.Add(1)
		go func(i int, item Detected) {
			defer wg.Done()
			// Each task writes only its own slot; no shared mutable state.
			slots[i] = r.resolveOne(ctx, batch.UserID, item)
		}(i, item)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		// Abandoned run: drop the idempotency entry so a retry is possible.
		r.mu.Lock()
		delete(r.batches, key)
		r.mu.Unlock()
		entry.err = err
		close(entry.done)
		return nil, err
	}

	results := make([]Resolution, 0, len(slots))
	for _, slot := range slots {
		if slot != nil {
			results = append(results, *slot)
		}
	}
	entry.results = results
	close(entry.done)

	r.logger.Info("batch resolved",
		logging.String("batch", key),
		logging.Int("detected", len(batch.Items)),
		logging.Int("resolved", len(results)),
	)
	return append([]Resolution(nil), results...), nil
}

func (r *Resolver) resolveOne(ctx context.Context, userID string, item Detected) *Resolution {
	taskCtx, cancel := context.WithTimeout(ctx, r.opts.TaskTimeout)
	defer cancel()

	records, err := r.search.Search(taskCtx, item.Title, r.opts.SearchLimit)
	if err != nil {
		r.logger.Warn("catalog search failed",
			logging.Int64("external_id", item.ExternalID),
			logging.String("title", item.Title),
			logging.Error(err),
		)
		return nil
	}

	candidates := Rank(item.Title, records, r.opts.MinSimilarity)
	resolution := &Resolution{
		Detected:   item,
		Candidates: candidates,
	}
	if len(candidates) == 0 {
		return resolution
	}

	resolution.Best = &candidates[0]
	resolution.InCatalog = true

	owned, err := r.membership.IsOwned(taskCtx, userID, resolution.Best.Record.ID)
	if err != nil {
		r.logger.Warn("ownership lookup failed",
			logging.Int64("external_id", item.ExternalID),
			logging.Int64("game_id", resolution.Best.Record.ID),
			logging.Error(err),
		)
		return nil
	}
	resolution.InCollection = owned
	return resolution
}
