// Package normalize provides text normalization for matching author names
// and genre tags independent of case, accents, and spacing.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var whitespace = regexp.MustCompile(`\s+`)

// Key produces the canonical matching key for a name.
// "Agatha Christie" and "agatha  CHRISTIE" map to the same key, and
// "José Saramago" matches "Jose Saramago".
func Key(s string) string {
	// Decompose accented characters, then drop the combining marks.
	s = norm.NFKD.String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Mn, r) {
			return -1
		}
		return r
	}, s)

	s = strings.ToLower(strings.TrimSpace(s))
	s = whitespace.ReplaceAllString(s, " ")

	return s
}

// EqualFold reports whether two names normalize to the same key.
func EqualFold(a, b string) bool {
	return Key(a) == Key(b)
}
