package tagging

import "strings"

// videoTitleRules refines the hint for video platforms from the title.
var videoTitleRules = []Rule[string]{
	{Match: containsAny("tutorial", "how to"), Result: "Tutorial"},
	{Match: containsAny("review"), Result: "Review"},
}

// hintFunc derives a platform hint from the lowercased title.
type hintFunc func(title string) string

func fixedHint(tag string) hintFunc {
	return func(string) string { return tag }
}

func videoHint(title string) string {
	if tag, ok := FirstMatch(videoTitleRules, title); ok {
		return tag
	}
	return "Video"
}

var platformRules = []Rule[hintFunc]{
	{Match: containsAny("youtube", "youtu.be", "vimeo"), Result: videoHint},
	{Match: containsAny("github"), Result: fixedHint("Code")},
	{Match: containsAny("medium", "substack"), Result: fixedHint("Article")},
	{Match: containsAny("stackoverflow", "stackexchange"), Result: fixedHint("Programming")},
	{Match: containsAny("linkedin"), Result: fixedHint("Career")},
	{Match: containsAny("reddit"), Result: fixedHint("Discussion")},
	{Match: anyOf(containsAny("twitter"), hostIs("x.com")), Result: fixedHint("Social")},
	{Match: containsAny("docs.google", "notion"), Result: fixedHint("Document")},
	{Match: containsAny("figma", "dribbble"), Result: fixedHint("Design")},
}

// ResolvePlatformTags returns the hint tags for a source domain. The first
// matching platform wins; unknown domains yield an empty slice.
func ResolvePlatformTags(domain, title string) []string {
	d := strings.ToLower(strings.TrimSpace(domain))
	if d == "" {
		return []string{}
	}
	hint, ok := FirstMatch(platformRules, d)
	if !ok {
		return []string{}
	}
	return []string{hint(strings.ToLower(title))}
}
