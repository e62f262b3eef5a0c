package tagging

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Keyword length bounds, in characters.
const (
	MinKeywordChars = 5
	MaxKeywordChars = 19
)

// webArtifactPrefixes rejects URL fragments that survive punctuation stripping
// (e.g. "httpsexamplecom").
var webArtifactPrefixes = []string{"http", "www", "com", "org", "net", "edu"}

// ExtractKeywords tokenizes free text into title-cased candidate keywords,
// longest first. Ties keep their first-seen order.
func ExtractKeywords(text string, maxResults int) []string {
	if maxResults <= 0 || strings.TrimSpace(text) == "" {
		return []string{}
	}

	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, strings.ToLower(text))

	seen := make(map[string]struct{})
	keywords := make([]string, 0)
	for _, tok := range strings.Fields(cleaned) {
		if !isKeywordCandidate(tok) {
			continue
		}
		key := strings.ToLower(tok)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keywords = append(keywords, titleCase(tok))
	}

	sort.SliceStable(keywords, func(i, j int) bool {
		return utf8.RuneCountInString(keywords[i]) > utf8.RuneCountInString(keywords[j])
	})

	if len(keywords) > maxResults {
		keywords = keywords[:maxResults]
	}
	return keywords
}

// isKeywordCandidate applies the length, digit, stopword and web-artifact filters.
func isKeywordCandidate(tok string) bool {
	n := utf8.RuneCountInString(tok)
	if n < MinKeywordChars || n > MaxKeywordChars {
		return false
	}
	if isAllDigits(tok) || IsStopword(tok) {
		return false
	}
	for _, p := range webArtifactPrefixes {
		if strings.HasPrefix(tok, p) {
			return false
		}
	}
	return true
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

// titleCase upper-cases the first character and leaves the rest unchanged.
func titleCase(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
