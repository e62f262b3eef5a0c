package preview

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// metaKeys are the <meta> property/name values the parser keeps.
var metaKeys = map[string]struct{}{
	"og:title":               {},
	"og:description":         {},
	"og:image":               {},
	"og:url":                 {},
	"og:site_name":           {},
	"og:type":                {},
	"twitter:title":          {},
	"twitter:description":    {},
	"twitter:image":          {},
	"description":            {},
	"author":                 {},
	"article:author":         {},
	"article:published_time": {},
}

// parseMeta reads the document head and returns the recognized meta values
// keyed by property or name, plus "title" for the <title> element. The first
// occurrence of a key wins. Parsing stops at <body>.
func parseMeta(r io.Reader) map[string]string {
	meta := make(map[string]string)
	z := html.NewTokenizer(r)
	inTitle := false
	for {
		switch z.Next() {
		case html.ErrorToken:
			return meta
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch tok.DataAtom {
			case atom.Body:
				return meta
			case atom.Title:
				inTitle = true
			case atom.Meta:
				key, content := metaAttrs(tok.Attr)
				if _, ok := metaKeys[key]; ok && content != "" {
					if _, seen := meta[key]; !seen {
						meta[key] = content
					}
				}
			}
		case html.TextToken:
			if inTitle {
				if text := strings.TrimSpace(string(z.Text())); text != "" {
					if _, seen := meta["title"]; !seen {
						meta["title"] = text
					}
				}
			}
		case html.EndTagToken:
			if tok := z.Token(); tok.DataAtom == atom.Title {
				inTitle = false
			}
		}
	}
}

// metaAttrs returns the lowercased property (or name) and the trimmed content.
func metaAttrs(attrs []html.Attribute) (key, content string) {
	for _, a := range attrs {
		switch strings.ToLower(a.Key) {
		case "property":
			key = strings.ToLower(strings.TrimSpace(a.Val))
		case "name":
			if key == "" {
				key = strings.ToLower(strings.TrimSpace(a.Val))
			}
		case "content":
			content = strings.TrimSpace(a.Val)
		}
	}
	return key, content
}
