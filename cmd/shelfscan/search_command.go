package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shelfscan/internal/catalog"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "search <title>",
		Short: "Search the catalog for a title",
		Long: `Query the canonical catalog directly, without touching the collection.
Useful for checking what a detected title would match before resolving a
whole shelf scan.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return fmt.Errorf("search query is required")
			}

			searcher, err := ctx.newSearcher()
			if err != nil {
				return err
			}

			records, err := searcher.Search(cmd.Context(), query, limit)
			if err != nil {
				return fmt.Errorf("search catalog: %w", err)
			}

			if jsonOutput {
				return writeJSON(cmd, records)
			}
			if len(records) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No catalog matches for %q\n", query)
				return nil
			}

			headers := []string{"Game ID", "Name", "Rank", "Year", "Players", "Play Time"}
			aligns := []columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignLeft, alignRight}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, buildSearchRows(records), aligns))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of results")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit results as JSON")
	return cmd
}

func buildSearchRows(records []catalog.Record) [][]string {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		year := ""
		if record.Year > 0 {
			year = fmt.Sprintf("%d", record.Year)
		}
		players := ""
		if record.MinPlayers > 0 {
			players = fmt.Sprintf("%d-%d", record.MinPlayers, record.MaxPlayers)
			if record.MaxPlayers <= record.MinPlayers {
				players = fmt.Sprintf("%d", record.MinPlayers)
			}
		}
		playTime := ""
		if record.PlayTime > 0 {
			playTime = fmt.Sprintf("%d min", record.PlayTime)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", record.ID),
			record.Name,
			fmt.Sprintf("%d", record.Rank),
			year,
			players,
			playTime,
		})
	}
	return rows
}
