// Package parsing turns raw HTML and PDF documents into the normalized ParsedContent
// consumed by the metric checks.
package parsing

import (
	"strings"
	"unicode"
)

// NormalizeText collapses every run of whitespace (including non-breaking spaces)
// into a single space and trims the ends.
func NormalizeText(content string) string {
	if content == "" {
		return ""
	}
	fields := strings.FieldsFunc(content, isSpace)
	return strings.Join(fields, " ")
}

// CountWords counts whitespace-delimited tokens
func CountWords(text string) int {
	return len(strings.FieldsFunc(text, isSpace))
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\u200b'
}
