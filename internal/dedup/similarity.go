package dedup

import (
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Similarity scores how alike two descriptions are, as a percentage. Both
// inputs are normalized first, so case and punctuation differences score 100.
// The score is 100*(maxLen-d)/maxLen where d is the Levenshtein edit distance
// between the normalized strings. Symmetric, and Similarity(a, a) == 100.
func Similarity(a, b string) float64 {
	na := Normalize(a)
	nb := Normalize(b)

	if na == "" && nb == "" {
		return 100
	}
	if na == "" || nb == "" {
		return 0
	}

	ra := []rune(na)
	rb := []rune(nb)
	d := levenshtein.DistanceForStrings(ra, rb, levenshtein.DefaultOptionsWithSub)

	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	return 100 * float64(maxLen-d) / float64(maxLen)
}
