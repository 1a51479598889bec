package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newCollectionCommand(ctx *commandContext) *cobra.Command {
	collectionCmd := &cobra.Command{
		Use:   "collection",
		Short: "Inspect and maintain the owned-games collection",
	}

	collectionCmd.AddCommand(newCollectionListCommand(ctx))
	collectionCmd.AddCommand(newCollectionRemoveCommand(ctx))

	return collectionCmd
}

func newCollectionListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the games in the configured collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			items, err := store.List(cmd.Context(), cfg.Collection.UserID)
			if err != nil {
				return fmt.Errorf("list collection: %w", err)
			}

			if jsonOutput {
				return writeJSON(cmd, items)
			}
			if len(items) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Collection for %s is empty\n", cfg.Collection.UserID)
				return nil
			}

			headers := []string{"Game ID", "Name", "Rank", "Year", "Added"}
			aligns := []columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignLeft}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, buildCollectionRows(items), aligns))
			fmt.Fprintf(cmd.OutOrStdout(), "%d games owned by %s\n", len(items), cfg.Collection.UserID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the collection as JSON")
	return cmd
}

func newCollectionRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <game-id>",
		Short: "Remove a game from the configured collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || gameID <= 0 {
				return fmt.Errorf("invalid game id %q", args[0])
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Remove(cmd.Context(), cfg.Collection.UserID, gameID)
			if err != nil {
				return fmt.Errorf("remove game: %w", err)
			}
			if !removed {
				fmt.Fprintf(cmd.OutOrStdout(), "Game %d is not in the collection\n", gameID)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed game %d from the collection\n", gameID)
			return nil
		},
	}
}
