// Package similarity provides the normalized string-similarity primitive
// used by the fuzzy stage of the matching cascade.
package similarity

import (
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// Score returns a similarity score in [0,1] between two strings, defined as
// (maxLen - levenshtein(a,b)) / maxLen where levenshtein is the classic
// single-character insert/delete/substitute edit distance. Identical strings
// (including both empty) score 1.0; if exactly one string is empty the score
// is 0.0. Score is symmetric.
func Score(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	distance := edlib.LevenshteinDistance(a, b)

	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}

	return float64(maxLen-distance) / float64(maxLen)
}
