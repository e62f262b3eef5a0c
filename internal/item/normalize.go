package item

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// SummaryTitleChars bounds titles derived from the first line of content.
const SummaryTitleChars = 50

var whitespaceRegex = regexp.MustCompile(`\s+`)

// CollapseWhitespace trims s and collapses internal whitespace runs to a
// single space.
func CollapseWhitespace(s string) string {
	return whitespaceRegex.ReplaceAllString(strings.TrimSpace(s), " ")
}

// CountChars returns the character count as runes (not bytes).
func CountChars(text string) int {
	return utf8.RuneCountInString(text)
}

// FirstLine returns the first non-blank line of s, trimmed and truncated to
// max characters.
func FirstLine(s string, max int) string {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return Truncate(line, max)
		}
	}
	return ""
}

// Truncate cuts s to at most max characters without splitting a rune.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
