package tagging

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// genericTags are placeholders that say little about the content.
var genericTags = buildSet("Link", "Article", "Video", "Document", "Content", "Post", "Page")

var singleCapitalizedWord = regexp.MustCompile(`^[A-Z][a-z]+$`)

// Candidate is a scored tag candidate. It only lives for one ranking call.
type Candidate struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// Score rates a candidate: longer, non-generic, capitalized single words win.
func Score(text string) float64 {
	score := 0.1 * float64(utf8.RuneCountInString(text))
	if _, generic := genericTags[text]; !generic {
		score += 2
	}
	if r, _ := utf8.DecodeRuneInString(text); unicode.IsUpper(r) {
		score++
	}
	if singleCapitalizedWord.MatchString(text) {
		score++
	}
	return score
}

// ScoreCandidates drops empty and duplicate candidates and scores the rest,
// highest first. Equal scores keep their input order.
func ScoreCandidates(candidates []string) []Candidate {
	seen := make(map[string]struct{}, len(candidates))
	scored := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		scored = append(scored, Candidate{Text: c, Score: Score(c)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// RankAndSelect returns at most limit candidates ordered by Score.
func RankAndSelect(candidates []string, limit int) []string {
	if limit <= 0 {
		return []string{}
	}
	scored := ScoreCandidates(candidates)
	if len(scored) > limit {
		scored = scored[:limit]
	}
	out := make([]string, len(scored))
	for i, c := range scored {
		out[i] = c.Text
	}
	return out
}
