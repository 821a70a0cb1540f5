// Package textmatch compares a spoken transcript with a target phrase.
package textmatch

import (
	"strings"
	"unicode"
)

// Normalize lowercases s, drops every character that is not an ASCII word
// character or whitespace, and collapses whitespace runs to a single space.
func Normalize(s string) string {
	lowered := strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(lowered))
	pendingSpace := false
	for _, r := range lowered {
		switch {
		case isWordRune(r):
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		case isSpaceRune(r):
			pendingSpace = true
		}
	}
	return b.String()
}

// Words splits an already normalized string on single spaces. An empty input
// yields one empty word, matching how word counts are compared elsewhere.
func Words(normalized string) []string {
	return strings.Split(normalized, " ")
}

func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

func isSpaceRune(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
