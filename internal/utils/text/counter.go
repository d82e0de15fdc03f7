// Package text provides small text measurement helpers shared by the
// extraction pipeline and the read API.
package text

import "strings"

// CountWords counts whitespace-separated tokens. Reading time is derived
// from this count, so it must behave the same everywhere an article body is
// measured.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// CountRunes counts Unicode characters rather than bytes, which matters for
// non-ASCII article bodies.
func CountRunes(s string) int {
	return len([]rune(s))
}
