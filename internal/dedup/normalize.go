package dedup

import (
	"strings"
	"unicode"
)

// Normalize prepares a description for comparison: lowercase, strip
// everything that is not a letter, digit, or space, collapse whitespace runs
// to a single space, and trim: " NEFT  Ref/123 " becomes "neft ref123".
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			space = true
		}
	}
	return b.String()
}
