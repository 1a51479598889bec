// Package textutil scores the similarity of board game titles.
//
// Detected titles arrive from the vision service with edition suffixes,
// punctuation, leading articles, and year tags that the canonical catalog
// does not carry. Similarity runs a fixed decision chain: exact match,
// substring containment, suffix-rule normalization, word overlap, and a
// Levenshtein ratio fallback. Scores are always in [0, 1] and symmetric.
//
// The normalization rules are held as an ordered list of tagged patterns
// (see rules.go); rule order decides which weight a match reports, so the
// list must not be reordered casually.
package textutil
