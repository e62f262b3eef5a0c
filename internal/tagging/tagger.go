package tagging

import "strings"

// Item kinds understood by the tagger. They mirror item.Kind values.
const (
	KindText  = "text"
	KindImage = "image"
	KindFile  = "file"
	KindLink  = "link"
)

// fallbackTags is the no-signal tag per kind.
var fallbackTags = map[string]string{
	KindLink:  "Link",
	KindFile:  "Document",
	KindImage: "Image",
	KindText:  "Note",
}

// Input is everything the tagger reads about one item. Missing fields are
// empty strings.
type Input struct {
	Kind   string
	Title  string
	Text   string
	Domain string

	// Existing tags are never suggested again (case-insensitive, glyph ignored).
	Existing []string

	// Supplied carries collaborator-generated tags for images. For that kind
	// extraction is skipped entirely.
	Supplied []string
}

// Tagger runs the candidate pipeline: topics, platform hints and keywords,
// then ranking, dedup against existing tags, capping and decoration.
type Tagger struct {
	TopicLimit   int
	KeywordLimit int
}

// NewTagger returns a Tagger with the default candidate budgets.
func NewTagger() *Tagger {
	return &Tagger{TopicLimit: 2, KeywordLimit: 3}
}

// Tag returns at most limit emoji-prefixed tags for in. Tags are non-empty
// and case-insensitively unique among themselves and against in.Existing.
func (t *Tagger) Tag(in Input, limit int) []string {
	if limit <= 0 {
		return []string{}
	}

	var ranked []string
	if in.Kind == KindImage {
		ranked = in.Supplied
	} else {
		candidates := t.Candidates(in)
		ranked = RankAndSelect(candidates, len(candidates))
	}

	taken := make(map[string]struct{}, len(in.Existing)+limit)
	for _, e := range in.Existing {
		taken[tagKey(e)] = struct{}{}
	}

	tags := make([]string, 0, limit)
	for _, c := range ranked {
		if len(tags) == limit {
			break
		}
		c = strings.TrimSpace(c)
		if StripEmoji(c) == "" {
			continue
		}
		if _, dup := taken[tagKey(c)]; dup {
			continue
		}
		taken[tagKey(c)] = struct{}{}
		tags = append(tags, c)
	}

	if len(tags) == 0 {
		if fb, ok := fallbackTags[in.Kind]; ok {
			if _, dup := taken[tagKey(fb)]; !dup {
				tags = append(tags, fb)
			}
		}
	}

	for i, tag := range tags {
		tags[i] = DecorateFor(in.Kind, tag)
	}
	return tags
}

// Candidates gathers the raw tag candidates for a non-image item, in the
// order the ranker uses as its tie-break.
func (t *Tagger) Candidates(in Input) []string {
	text := strings.TrimSpace(in.Title + " " + in.Text)
	candidates := make([]string, 0, t.budget())
	candidates = append(candidates, ClassifyTopics(text, t.TopicLimit)...)
	candidates = append(candidates, ResolvePlatformTags(in.Domain, in.Title)...)
	candidates = append(candidates, ExtractKeywords(text, t.KeywordLimit)...)
	return candidates
}

func (t *Tagger) budget() int {
	return t.TopicLimit + t.KeywordLimit + 1
}

// DecorateFor prefixes tag with a glyph using the mapping for kind: links
// and files use the curated dictionary first, freeform kinds go straight to
// the smart mapping.
func DecorateFor(kind, tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" || HasEmojiPrefix(tag) {
		return tag
	}
	switch kind {
	case KindLink, KindFile:
		return Decorate(tag)
	default:
		return ResolveSmartEmoji(tag) + " " + tag
	}
}

// SameTag reports whether a and b name the same tag, ignoring case and any
// leading glyph.
func SameTag(a, b string) bool {
	return tagKey(a) == tagKey(b)
}

func tagKey(tag string) string {
	return strings.ToLower(StripEmoji(tag))
}
