package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shelfscan/internal/logging"
	"shelfscan/internal/recon"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var batchID string

	cmd := &cobra.Command{
		Use:   "resolve [file]",
		Short: "Reconcile detected titles against the catalog",
		Long: `Read detected titles from a JSON file (or stdin) and match each one
against the canonical catalog. The output lists the best candidate per
title, its similarity score, and whether the game is already in the
configured collection.

Examples:
  shelfscan resolve shelf.json
  cat shelf.json | shelfscan resolve
  shelfscan resolve shelf.json --json`,
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
				fmt.Fprintln(cmd.OutOrStdout(), "No detected titles to resolve")
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

			batch := recon.Batch{
				ID:     strings.TrimSpace(batchID),
				UserID: cfg.Collection.UserID,
				Items:  items,
			}
			results, err := resolver.Resolve(cmd.Context(), batch)
			if err != nil {
				return fmt.Errorf("resolve titles: %w", err)
			}

			views := buildResolutionViews(results)
			if jsonOutput {
				return writeJSON(cmd, views)
			}

			headers := []string{"ID", "Detected Title", "Match", "Score", "Rank", "Year", "Owned"}
			aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, buildResolutionRows(views), aligns))

			matched, unmatched, owned := summarizeResolutions(views)
			fmt.Fprintf(cmd.OutOrStdout(), "%d matched, %d unmatched, %d already owned\n", matched, unmatched, owned)

			if notifier := ctx.notifier(); notifier != nil {
				if err := notifier.NotifyScanResolved(cmd.Context(), matched, unmatched, owned); err != nil {
					logger.Warn("scan notification failed", logging.Error(err))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit results as JSON")
	cmd.Flags().StringVar(&batchID, "batch-id", "", "Reuse a batch id so repeated runs share one resolution")
	return cmd
}

func summarizeResolutions(views []resolutionView) (matched, unmatched, owned int) {
	for _, view := range views {
		switch {
		case view.InCollection:
			owned++
		case view.InCatalog:
			matched++
		default:
			unmatched++
		}
	}
	return matched, unmatched, owned
}
