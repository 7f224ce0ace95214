package search

import (
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// Distance returns the Levenshtein edit distance between a and b, counting
// insertions, deletions and substitutions of single characters.
func Distance(a, b string) int {
	return edlib.LevenshteinDistance(a, b)
}

// Similarity scores a and b in [0, 1] as the share of the longer string that
// survives the edit distance. Two empty strings are identical.
func Similarity(a, b string) float64 {
	longer, shorter := b, a
	if utf8.RuneCountInString(a) > utf8.RuneCountInString(b) {
		longer, shorter = a, b
	}

	longerLen := utf8.RuneCountInString(longer)
	if longerLen == 0 {
		return 1.0
	}
	return float64(longerLen-Distance(longer, shorter)) / float64(longerLen)
}
