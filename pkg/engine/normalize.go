package engine

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes text for fuzzy matching: lowercase, every Unicode
// punctuation mark replaced with a space, whitespace runs collapsed to a
// single space, and the result trimmed. Pure function; empty input yields "".
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	lastSpace := false
	for _, r := range strings.ToLower(text) {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) || unicode.IsSpace(r) {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return strings.TrimSpace(b.String())
}
