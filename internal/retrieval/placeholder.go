package retrieval

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

// placeholderBase renders a solid tile with a short label.
const placeholderBase = "https://via.placeholder.com/400x300"

type brand struct {
	color string
	icon  string
}

var domainBrands = map[string]brand{
	"youtube.com":          {"FF0000", "▶️"},
	"twitter.com":          {"1DA1F2", "🐦"},
	"facebook.com":         {"1877F2", "📘"},
	"instagram.com":        {"E4405F", "📷"},
	"linkedin.com":         {"0077B5", "💼"},
	"github.com":           {"333333", "🐙"},
	"medium.com":           {"00AB6C", "📝"},
	"reddit.com":           {"FF4500", "🤖"},
	"news.ycombinator.com": {"FF6600", "🔶"},
	"stackoverflow.com":    {"F58025", "❓"},
}

var contentTypeBrands = map[string]brand{
	"article":  {"4285f4", "📰"},
	"video":    {"FF0000", "▶️"},
	"document": {"34A853", "📄"},
	"social":   {"1da1f2", "💬"},
	"other":    {"666666", "🔗"},
}

var palette = []string{
	"4285F4", "34A853", "FBBC05", "EA4335", "9C27B0",
	"673AB7", "3F51B5", "2196F3", "00BCD4", "009688",
}

// PlaceholderImage returns a generated image URL for a link whose preview
// has no image. Known platforms get their brand color and icon; other
// domains get a palette color picked by hashing the name.
func PlaceholderImage(domain string) string {
	b, ok := domainBrands[domain]
	if !ok {
		b = brand{color: domainColor(domain), icon: "🔗"}
	}
	label := domain
	if runes := []rune(label); len(runes) > 15 {
		label = string(runes[:15])
	}
	return placeholderURL(b.color, b.icon, label)
}

// ContentTypeImage returns a generated image URL for a content type
// (article, video, document, social, other).
func ContentTypeImage(contentType, domain string) string {
	b, ok := contentTypeBrands[strings.ToLower(contentType)]
	if !ok {
		b = contentTypeBrands["other"]
	}
	return placeholderURL(b.color, b.icon, domain)
}

func placeholderURL(color, icon, label string) string {
	return fmt.Sprintf("%s/%s/white?text=%s+%s",
		placeholderBase, color, escapeComponent(icon), escapeComponent(label))
}

// escapeComponent percent-encodes every UTF-8 byte except ASCII letters,
// digits and -_.!~*'(). Spaces become %20, not "+".
func escapeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9',
			strings.IndexByte("-_.!~*'()", c) >= 0:
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&15])
		}
	}
	return b.String()
}

// domainColor picks a palette entry from a hash of domain over its UTF-16
// code units. The shift wraps at 32 bits; the sum does not.
func domainColor(domain string) string {
	var h int64
	for _, c := range utf16.Encode([]rune(domain)) {
		shifted := int64(int32(uint32(int32(h)) << 5))
		h = int64(c) + shifted - h
	}
	if h < 0 {
		h = -h
	}
	return palette[h%int64(len(palette))]
}
