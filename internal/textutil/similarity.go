package textutil

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold lowercases a title for comparison and trims surrounding whitespace.
func Fold(s string) string {
	return strings.TrimSpace(cases.Fold().String(s))
}

// Similarity scores how closely two titles match, in [0, 1]. The first
// applicable strategy wins:
//
//  1. exact equality after case folding
//  2. either title empty
//  3. substring containment
//  4. suffix-rule normalization (ScoreNormalized)
//  5. word overlap
//  6. Levenshtein edit-distance ratio
//
// The result is deterministic and symmetric in its arguments.
func Similarity(a, b string) float64 {
	a = Fold(a)
	b = Fold(b)

	if a == b {
		if a == "" {
			return 0
		}
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return 0.8
	}
	if score := ScoreNormalized(a, b); score > 0 {
		return score
	}
	if score := wordOverlap(a, b); score > 0 {
		return score
	}
	return editSimilarity(a, b)
}

// wordOverlap returns |shared words| / max(word count) * 0.7, or 0 when the
// titles share no words.
func wordOverlap(a, b string) float64 {
	wordsA := strings.Fields(a)
	wordsB := strings.Fields(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}
	setA := make(map[string]struct{}, len(wordsA))
	for _, w := range wordsA {
		setA[w] = struct{}{}
	}
	setB := make(map[string]struct{}, len(wordsB))
	for _, w := range wordsB {
		setB[w] = struct{}{}
	}
	shared := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			shared++
		}
	}
	if shared == 0 {
		return 0
	}
	longest := max(len(setA), len(setB))
	return float64(shared) / float64(longest) * 0.7
}

// editSimilarity converts Levenshtein distance to a similarity ratio:
// (longerLen - distance) / longerLen.
func editSimilarity(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	longer := max(len(ra), len(rb))
	if longer == 0 {
		return 0
	}
	distance := levenshtein(ra, rb)
	return float64(longer-distance) / float64(longer)
}

func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
