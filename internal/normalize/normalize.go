// Package normalize turns free-text names and titles into the canonical
// form used for storage and comparison.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Text returns the canonical form of s: uppercased, decimal digits removed,
// diacritical marks removed, whitespace runs collapsed to one space and
// trimmed.
func Text(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}

	s = strings.ToUpper(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return -1
		}
		return r
	}, s)
	s = stripMarks(s)
	// Letters such as U+0390 have no single-rune uppercase and only reach
	// their base letter once the marks are gone.
	s = strings.ToUpper(s)

	return strings.Join(strings.Fields(s), " ")
}

// stripMarks decomposes s, drops non-spacing marks and recomposes what is left.
func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
