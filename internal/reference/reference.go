// Package reference extracts and compares bank-assigned transaction
// references. Banks embed reference tokens in statement descriptions in many
// shapes (NEFT/IMPS/UPI transaction IDs, UTR numbers, plain "REF" codes);
// these tokens are the strongest duplicate signal available, so extraction is
// deliberately conservative: no token is better than a wrong token.
package reference

import (
	"regexp"
	"strings"
)

// tokenPatterns are tried in order; the first hit wins. Capture group 1 is
// the reference token.
var tokenPatterns = []*regexp.Regexp{
	// Prefixed bank tokens: "NEFT REF1234567", "IMPS/503312345678", "UTR: AXISP00112233".
	regexp.MustCompile(`(?i)\b(?:NEFT|IMPS|RTGS|UPI|UTR|TXN|REF)[\s:/\-]*([A-Z0-9]*\d[A-Z0-9]{5,})`),
	// Bare long digit runs (UTR numbers are 12-22 digits).
	regexp.MustCompile(`\b(\d{10,22})\b`),
}

// Extract derives a reference token for a transaction. An explicit reference
// from the statement always wins; otherwise the description is scanned for a
// recognizable bank token. Returns false if nothing usable is found.
func Extract(explicit, description string) (string, bool) {
	if s := strings.TrimSpace(explicit); s != "" {
		return s, true
	}
	for _, re := range tokenPatterns {
		if m := re.FindStringSubmatch(description); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// Match reports whether two reference strings identify the same bank
// transaction. Comparison is case-insensitive, ignores separator characters,
// and tolerates leading zeros (some banks pad numeric references).
func Match(a, b string) bool {
	na := canonical(a)
	nb := canonical(b)
	if na == "" || nb == "" {
		return false
	}
	return na == nb
}

func canonical(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(strings.TrimSpace(s)) {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return strings.TrimLeft(b.String(), "0")
}
