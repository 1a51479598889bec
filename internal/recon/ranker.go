package recon

import (
	"sort"

	"shelfscan/internal/catalog"
	"shelfscan/internal/textutil"
)

// DefaultMinSimilarity is the score floor below which candidates are
// discarded.
const DefaultMinSimilarity = 0.3

// Rank scores every catalog record against the detected title, discards
// scores at or below minScore, and orders the survivors by similarity
// descending. Ties break on ascending catalog rank, so the more prominent
// entry wins. Pass minScore <= 0 for the default floor.
func Rank(title string, records []catalog.Record, minScore float64) []Candidate {
	if minScore <= 0 {
		minScore = DefaultMinSimilarity
	}

	candidates := make([]Candidate, 0, len(records))
	for _, record := range records {
		score := textutil.Similarity(title, record.Name)
		if score <= minScore {
			continue
		}
		candidates = append(candidates, Candidate{Record: record, Similarity: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Similarity != candidates[j].Similarity {
			return candidates[i].Similarity > candidates[j].Similarity
		}
		return candidates[i].Record.Rank < candidates[j].Record.Rank
	})
	return candidates
}
