package recon

import (
	"shelfscan/internal/catalog"
)

// Detected is one title reported by the external shelf analysis service.
// ExternalID is the analysis service's identity for the detection and is
// stable for the lifetime of a batch.
type Detected struct {
	ExternalID int64  `json:"id"`
	Title      string `json:"title"`
}

// Candidate pairs a catalog record with its similarity to a detected title.
type Candidate struct {
	Record     catalog.Record
	Similarity float64
}

// Resolution is the outcome of reconciling one detected title. Candidates
// are sorted best-first. Best is nil when nothing in the catalog scored
// above the similarity floor. InCollection reflects ownership at
// resolution time; the commit path re-checks it.
type Resolution struct {
	Detected     Detected
	Candidates   []Candidate
	Best         *Candidate
	InCatalog    bool
	InCollection bool
}

// Outcome summarizes one commit: how many games were inserted, how many
// were already owned by commit time (including races lost to a concurrent
// commit), and how many selected ids had no catalog match.
type Outcome struct {
	Added          int
	Duplicates     int
	SkippedNoMatch int
}

// NothingToAdd reports whether the commit found no new games to insert.
func (o Outcome) NothingToAdd() bool {
	return o.Added == 0
}
