package tagging

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// curatedEmoji maps structured link/file tags to a glyph. Keys are lowercase.
var curatedEmoji = map[string]string{
	"artificial intelligence": "🤖",
	"ai":                      "🤖",
	"machine learning":        "🤖",
	"technology":              "💻",
	"programming":             "💻",
	"software":                "💻",
	"code":                    "💻",
	"coding":                  "💻",
	"web development":         "🌐",
	"business":                "📈",
	"startup":                 "🚀",
	"entrepreneurship":        "🚀",
	"finance":                 "💰",
	"investing":               "💰",
	"marketing":               "📣",
	"career":                  "💼",
	"productivity":            "⚡",
	"health":                  "🩺",
	"wellness":                "🧘",
	"fitness":                 "💪",
	"nutrition":               "🥗",
	"food":                    "🍽️",
	"recipe":                  "🍳",
	"travel":                  "✈️",
	"learning":                "📚",
	"education":               "🎓",
	"tutorial":                "🎓",
	"science":                 "🔬",
	"research":                "🔬",
	"design":                  "🎨",
	"news":                    "📰",
	"article":                 "📰",
	"video":                   "🎬",
	"review":                  "⭐",
	"music":                   "🎵",
	"podcast":                 "🎙️",
	"discussion":              "💬",
	"social":                  "💬",
	"document":                "📄",
	"notes":                   "📝",
	"books":                   "📖",
	"gaming":                  "🎮",
	"sports":                  "⚽",
	"security":                "🔒",
	"climate":                 "🌍",
}

// curatedFallback is consulted when the curated dictionary has no exact entry.
var curatedFallback = []Rule[string]{
	{Match: containsAny("tech", "software", "code", "program"), Result: "💻"},
	{Match: containsAny("business", "finance", "invest", "money"), Result: "💰"},
	{Match: containsAny("news", "article"), Result: "📰"},
	{Match: containsAny("health", "medic"), Result: "🩺"},
	{Match: containsAny("fitness", "workout"), Result: "💪"},
	{Match: containsAny("learn", "educat", "course", "tutorial"), Result: "📚"},
	{Match: containsAny("science", "research"), Result: "🔬"},
	{Match: containsAny("design", "creative"), Result: "🎨"},
	{Match: containsAny("video", "film", "movie"), Result: "🎬"},
	{Match: containsAny("music", "song"), Result: "🎵"},
	{Match: containsAny("travel", "trip"), Result: "✈️"},
	{Match: containsAny("food", "recipe", "cook"), Result: "🍽️"},
	{Match: containsAny("productiv"), Result: "⚡"},
	{Match: containsAny("document", "pdf"), Result: "📄"},
}

// ResolveEmoji returns the glyph for a structured tag, or "" when neither
// the curated dictionary nor the substring fallback knows it.
func ResolveEmoji(tag string) string {
	lower := strings.ToLower(strings.TrimSpace(tag))
	if lower == "" {
		return ""
	}
	if e, ok := curatedEmoji[lower]; ok {
		return e
	}
	e, _ := FirstMatch(curatedFallback, lower)
	return e
}

// predefinedTags are the quick-pick tags offered to users.
var predefinedTags = map[string]string{
	"health":  "🍃",
	"work":    "💼",
	"fitness": "💪",
	"travel":  "✈️",
	"to read": "📖",
}

// smartRules covers freeform tags. Order matters: earlier rows win.
var smartRules = []Rule[string]{
	{Match: words("technology", "programming", "development", "coding", "software", "app",
		"tech", "digital", "automation", "ai", "artificial", "machine", "algorithm", "data",
		"analytics", "startup", "innovation", "react", "javascript", "python", "github",
		"opensource", "tutorial", "code"), Result: "💻"},
	{Match: words("business", "finance", "investment", "portfolio", "strategy", "entrepreneur",
		"marketing", "sales", "revenue", "profit", "economy", "market", "corporate",
		"professional", "career", "jobsearch", "interview", "resume", "linkedin"), Result: "💼"},
	{Match: words("health", "medical", "wellness", "nutrition", "diet", "doctor", "hospital",
		"medicine", "therapy", "mental", "psychology", "healthcare"), Result: "🏥"},
	{Match: words("education", "learning", "study", "course", "university", "school",
		"research", "academic", "knowledge", "skill", "training", "guide", "instruction",
		"reference"), Result: "📚"},
	{Match: words("science", "experiment", "discovery", "analysis", "physics", "biology",
		"chemistry", "climate", "environment", "space", "laboratory"), Result: "🔬"},
	{Match: words("design", "creative", "art", "visual", "graphics", "aesthetic", "photography",
		"video", "image", "figma", "dribbble", "brand", "logo"), Result: "🎨"},
	{Match: words("productivity", "efficiency", "workflow", "organize", "method", "system",
		"process", "optimize", "tool", "notion"), Result: "⚡"},
	{Match: words("social", "discussion", "community", "communication", "message", "chat",
		"forum", "twitter", "reddit", "conversation"), Result: "💬"},
	{Match: words("travel", "trip", "vacation", "hotel", "flight", "booking", "destination",
		"explore", "adventure", "journey"), Result: "✈️"},
	{Match: words("cooking", "recipe", "food", "kitchen", "meal", "restaurant", "chef",
		"ingredient"), Result: "🍳"},
	{Match: words("fitness", "workout", "exercise", "gym", "sport", "athlete", "running",
		"yoga"), Result: "💪"},
	{Match: words("movie", "entertainment", "youtube", "music", "gaming", "streaming",
		"podcast", "media", "review"), Result: "🎬"},
	{Match: words("document", "pdf", "file", "report", "spreadsheet", "presentation",
		"manual", "documentation"), Result: "📄"},
	{Match: words("news", "update", "announcement", "breaking", "politics", "current",
		"events", "journalism"), Result: "📰"},
	{Match: words("shopping", "purchase", "product", "ecommerce", "retail", "store",
		"marketplace"), Result: "🛒"},
	{Match: words("home", "lifestyle", "interior", "furniture", "garden", "decoration", "diy",
		"organization"), Result: "🏠"},
	{Match: words("photo", "camera", "picture", "memories", "gallery"), Result: "📸"},
	{Match: words("money", "expense", "budget", "invoice", "receipt", "bill", "payment",
		"banking"), Result: "💰"},
	{Match: words("nature", "green", "sustainability", "eco", "organic", "planet"), Result: "🌱"},
	{Match: words("transport", "car", "vehicle", "driving", "traffic", "uber", "taxi", "public",
		"transit"), Result: "🚗"},
	{Match: words("event", "meeting", "calendar", "schedule", "appointment", "conference",
		"webinar", "seminar"), Result: "📅"},
	{Match: words("book", "reading", "literature", "novel", "author", "publication", "library",
		"article", "blog"), Result: "📖"},
	{Match: words("security", "privacy", "password", "encryption", "safety", "protection",
		"cybersecurity"), Result: "🔒"},
	{Match: words("email", "slack", "teams", "zoom", "call"), Result: "✉️"},
	{Match: containsAny("goal", "objective", "target"), Result: "🎯"},
	{Match: containsAny("time", "schedule", "deadline"), Result: "⏰"},
	{Match: containsAny("location", "place", "address"), Result: "📍"},
	{Match: anyOf(hasSuffixAny("ing"), containsAny("process")), Result: "⚙️"},
	{Match: containsAny("quick", "fast", "rapid"), Result: "⚡"},
	{Match: containsAny("important", "urgent", "priority"), Result: "❗"},
	{Match: containsAny("idea", "inspiration", "creative"), Result: "💡"},
	{Match: containsAny("question", "help", "support"), Result: "❓"},
}

// Generic glyphs for freeform tags no rule recognizes.
const (
	BookmarkEmoji = "🔖"
	TagEmoji      = "🏷️"
)

// ResolveSmartEmoji returns the glyph for a freeform tag. It always returns
// a glyph: specific tags longer than 8 characters get a bookmark, the rest
// a generic tag.
func ResolveSmartEmoji(tag string) string {
	lower := strings.ToLower(strings.TrimSpace(tag))
	if e, ok := predefinedTags[lower]; ok {
		return e
	}
	if e, ok := FirstMatch(smartRules, lower); ok {
		return e
	}
	if utf8.RuneCountInString(lower) > 8 {
		return BookmarkEmoji
	}
	return TagEmoji
}

// HasEmojiPrefix reports whether s starts with an emoji glyph.
func HasEmojiPrefix(s string) bool {
	return emojiPrefixLen(s) > 0
}

// StripEmoji removes a leading glyph (with any joiners, variation selectors
// and skin-tone modifiers) and the whitespace after it.
func StripEmoji(s string) string {
	s = strings.TrimSpace(s)
	for s != "" {
		if n := emojiPrefixLen(s); n > 0 {
			s = s[n:]
			continue
		}
		r, size := utf8.DecodeRuneInString(s)
		if !isEmojiJoiner(r) {
			break
		}
		s = s[size:]
	}
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}

// Decorate prefixes a tag with its glyph. Tags that already start with an
// emoji are returned unchanged; blank tags yield "".
func Decorate(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" || HasEmojiPrefix(tag) {
		return tag
	}
	e := ResolveEmoji(tag)
	if e == "" {
		e = ResolveSmartEmoji(tag)
	}
	return e + " " + tag
}

// emojiRanges lists the blocks whose characters render as emoji on their own.
var emojiRanges = [][2]rune{
	{0x1F000, 0x1FAFF}, // mahjong through symbols and pictographs extended-A
	{0x2600, 0x27BF},   // misc symbols, dingbats
	{0x2300, 0x23FF},   // misc technical (watch, hourglass, alarm clock)
	{0x2B1B, 0x2B1C},   // large squares
	{0x2B50, 0x2B50},   // star
	{0x2B55, 0x2B55},   // circle
}

// textStyleRanges are symbols that are plain text unless followed by U+FE0F
// (™ vs ™️, → vs ➡️).
var textStyleRanges = [][2]rune{
	{0x00A9, 0x00A9},
	{0x00AE, 0x00AE},
	{0x203C, 0x203C},
	{0x2049, 0x2049},
	{0x2122, 0x2122},
	{0x2139, 0x2139},
	{0x2190, 0x21FF},
	{0x2B00, 0x2BFF},
	{0x3030, 0x3030},
	{0x303D, 0x303D},
	{0x3297, 0x3299},
}

func inRanges(r rune, ranges [][2]rune) bool {
	for _, rg := range ranges {
		if r >= rg[0] && r <= rg[1] {
			return true
		}
	}
	return false
}

// emojiPrefixLen returns the byte length of the glyph starting s, or 0.
// A text-style symbol counts only together with its U+FE0F.
func emojiPrefixLen(s string) int {
	r, size := utf8.DecodeRuneInString(s)
	if inRanges(r, emojiRanges) {
		return size
	}
	if inRanges(r, textStyleRanges) {
		if next, n := utf8.DecodeRuneInString(s[size:]); next == 0xFE0F {
			return size + n
		}
	}
	return 0
}

// isEmojiJoiner matches codepoints that only occur inside an emoji sequence.
func isEmojiJoiner(r rune) bool {
	return r == 0x200D || r == 0xFE0F || r == 0xFE0E || r == 0x20E3
}
