package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"shelfscan/internal/logging"
	"shelfscan/internal/recon"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var batchID string
	var selectIDs string

	cmd := &cobra.Command{
		Use:   "add [file]",
		Short: "Resolve detected titles and commit them to the collection",
		Long: `Read detected titles from a JSON file (or stdin), reconcile them against
the catalog, and add the matched games to the configured collection.

By default every matched, not-yet-owned title is committed. Use --select
to commit only specific detected ids. Titles without a catalog match and
games already in the collection are skipped either way.

Examples:
  shelfscan add shelf.json
  shelfscan add shelf.json --select 1,3
  cat shelf.json | shelfscan add --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			var path string
			if len(args) > 0 {
				path = args[0]
			}
			items, err := readDetected(path, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No detected titles to add")
				return nil
			}

			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			resolver, err := ctx.newResolver(store, logger)
			if err != nil {
				return err
			}

			id := strings.TrimSpace(batchID)
			if id == "" {
				id = uuid.NewString()
			}
			batch := recon.Batch{
				ID:     id,
				UserID: cfg.Collection.UserID,
				Items:  items,
			}
			results, err := resolver.Resolve(cmd.Context(), batch)
			if err != nil {
				return fmt.Errorf("resolve titles: %w", err)
			}

			sel := recon.NewSelection(results)
			if strings.TrimSpace(selectIDs) != "" {
				if err := applySelection(sel, selectIDs); err != nil {
					return err
				}
			}
			if sel.Len() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to add: no matched, unowned titles selected")
				return nil
			}

			lock := flock.New(cfg.CommitLockPath())
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire commit lock: %w", err)
			}
			if !locked {
				return errors.New("another commit is in progress; try again shortly")
			}
			defer func() {
				_ = lock.Unlock()
			}()

			committer := recon.NewCommitter(store, logger)
			outcome, err := committer.Commit(cmd.Context(), cfg.Collection.UserID, sel)
			if err != nil {
				if notifier := ctx.notifier(); notifier != nil {
					if nerr := notifier.NotifyError(cmd.Context(), err, "commit"); nerr != nil {
						logger.Warn("error notification failed", logging.Error(nerr))
					}
				}
				return fmt.Errorf("commit selection: %w", err)
			}

			if jsonOutput {
				return writeJSON(cmd, map[string]int{
					"added":          outcome.Added,
					"duplicates":     outcome.Duplicates,
					"skippedNoMatch": outcome.SkippedNoMatch,
				})
			}

			out := cmd.OutOrStdout()
			if outcome.NothingToAdd() {
				fmt.Fprintf(out, "Nothing new: %d already owned", outcome.Duplicates)
			} else {
				fmt.Fprintf(out, "Added %d games", outcome.Added)
				if outcome.Duplicates > 0 {
					fmt.Fprintf(out, ", %d already owned", outcome.Duplicates)
				}
			}
			if outcome.SkippedNoMatch > 0 {
				fmt.Fprintf(out, ", %d skipped without a match", outcome.SkippedNoMatch)
			}
			fmt.Fprintln(out)

			if notifier := ctx.notifier(); notifier != nil && outcome.Added > 0 {
				if err := notifier.NotifyCollectionUpdated(cmd.Context(), cfg.Collection.UserID, outcome.Added, outcome.Duplicates); err != nil {
					logger.Warn("collection notification failed", logging.Error(err))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the commit outcome as JSON")
	cmd.Flags().StringVar(&batchID, "batch-id", "", "Reuse a batch id so repeated runs share one resolution")
	cmd.Flags().StringVar(&selectIDs, "select", "", "Comma-separated detected ids to commit instead of the default selection")
	return cmd
}

// applySelection replaces the default selection with exactly the listed
// detected ids. Ids that cannot be selected (unknown, unmatched, or already
// owned) are reported as errors rather than silently dropped.
func applySelection(sel *recon.Selection, raw string) error {
	sel.Clear()
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid detected id %q", part)
		}
		if !sel.Toggle(id) {
			return fmt.Errorf("detected id %d cannot be selected: unknown, unmatched, or already owned", id)
		}
	}
	return nil
}
