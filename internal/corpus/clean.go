package corpus

import (
	"strings"

	godiacritics "gopkg.in/Regis24GmbH/go-diacritics.v2"
)

// Clean normalizes a raw review string: re-encodes to valid UTF-8
// substituting invalid bytes, strips diacritics, collapses embedded
// tab/CR/LF runs to single spaces, and trims surrounding whitespace.
// Returns "" for rows that should be dropped.
func Clean(raw string) string {
	s := strings.ToValidUTF8(raw, " ")
	s = godiacritics.Normalize(s)

	// strings.Fields collapses tabs, newlines, and repeated spaces in one pass.
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// CleanAll cleans a raw corpus, dropping rows that are empty after
// normalization. The returned slice preserves input order.
func CleanAll(raw []string) (kept []string, dropped int) {
	kept = make([]string, 0, len(raw))
	for _, r := range raw {
		c := Clean(r)
		if c == "" {
			dropped++
			continue
		}
		kept = append(kept, c)
	}
	return kept, dropped
}
