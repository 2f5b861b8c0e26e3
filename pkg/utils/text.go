// Package utils provides shared utilities for text, math, and logging.
package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Truncate returns s truncated to at most maxLen bytes, with "..." appended
// if truncated. The cut falls on a rune boundary so multibyte text stays
// valid UTF-8. If maxLen is 0 or negative, returns s unchanged.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// Tokenize splits s into lowercase word tokens longer than minLen runes.
// Punctuation is stripped from token edges; internal hyphens are preserved.
func Tokenize(s string, minLen int) []string {
	words := strings.Fields(strings.ToLower(s))
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimFunc(w, func(r rune) bool {
			return unicode.IsPunct(r) && r != '-'
		})
		if len([]rune(w)) > minLen {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// ContainsWord reports whether the lowercase form of text contains word.
func ContainsWord(text, word string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(word))
}
