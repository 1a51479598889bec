package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"shelfscan/internal/collection"
	"shelfscan/internal/recon"
)

// resolutionView is the JSON projection of one reconciled title.
type resolutionView struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Match        string  `json:"match,omitempty"`
	GameID       int64   `json:"gameId,omitempty"`
	Similarity   float64 `json:"similarity,omitempty"`
	Rank         int     `json:"rank,omitempty"`
	Year         int     `json:"year,omitempty"`
	InCatalog    bool    `json:"inCatalog"`
	InCollection bool    `json:"inCollection"`
}

func buildResolutionViews(results []recon.Resolution) []resolutionView {
	sorted := make([]recon.Resolution, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Detected.ExternalID < sorted[j].Detected.ExternalID
	})

	views := make([]resolutionView, 0, len(sorted))
	for _, res := range sorted {
		view := resolutionView{
			ID:           res.Detected.ExternalID,
			Title:        res.Detected.Title,
			InCatalog:    res.InCatalog,
			InCollection: res.InCollection,
		}
		if res.Best != nil {
			view.Match = res.Best.Record.Name
			view.GameID = res.Best.Record.ID
			view.Similarity = res.Best.Similarity
			view.Rank = res.Best.Record.Rank
			view.Year = res.Best.Record.Year
		}
		views = append(views, view)
	}
	return views
}

func buildResolutionRows(views []resolutionView) [][]string {
	if len(views) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(views))
	for _, view := range views {
		match := view.Match
		similarity := ""
		rank := ""
		year := ""
		if view.Match == "" {
			match = "(no match)"
		} else {
			similarity = formatSimilarity(view.Similarity)
			rank = fmt.Sprintf("%d", view.Rank)
			if view.Year > 0 {
				year = fmt.Sprintf("%d", view.Year)
			}
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", view.ID),
			view.Title,
			match,
			similarity,
			rank,
			year,
			yesNo(view.InCollection),
		})
	}
	return rows
}

func buildCollectionRows(items []collection.Item) [][]string {
	if len(items) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		year := ""
		if item.Year > 0 {
			year = fmt.Sprintf("%d", item.Year)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", item.GameID),
			item.Name,
			fmt.Sprintf("%d", item.Rank),
			year,
			item.AddedAt.Format("2006-01-02"),
		})
	}
	return rows
}

func formatSimilarity(score float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", score), "0"), ".")
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
