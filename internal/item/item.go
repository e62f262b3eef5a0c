// Package item defines the saved-content record shared by the store, the
// operations layer and the retrieval engine.
package item

import "strings"

// Kind is the type of a saved item.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
	KindFile  Kind = "file"
	KindLink  Kind = "link"
)

// Kinds lists every valid Kind in display order.
var Kinds = []Kind{KindText, KindImage, KindFile, KindLink}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// ParseKind lowercases and validates s.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	return k, k.Valid()
}

// Item is one unit of saved content. Optional text fields are empty strings
// when the extraction collaborator supplied nothing.
type Item struct {
	// ID is a ULID
	ID string

	Kind Kind

	// RawContent is what the user dropped into the inbox: note text, a URL,
	// or an image/file location
	RawContent string

	ExtractedText    string
	ExtractedTitle   string
	ExtractedExcerpt string

	SourceURL string
	Filename  string

	// Tags are emoji-prefixed and case-insensitively unique (stored as JSON in DB)
	Tags []string

	// Unix timestamps
	CreatedAt int64
	UpdatedAt int64
	DeletedAt *int64
}

// HasExtracted reports whether the extraction collaborator produced any
// text or title for the item.
func (it *Item) HasExtracted() bool {
	return strings.TrimSpace(it.ExtractedText) != "" || strings.TrimSpace(it.ExtractedTitle) != ""
}

// URL returns the item's canonical location: the source URL if set,
// otherwise the raw content for link and image items.
func (it *Item) URL() string {
	if it.SourceURL != "" {
		return it.SourceURL
	}
	if it.Kind == KindLink || it.Kind == KindImage {
		return strings.TrimSpace(it.RawContent)
	}
	return ""
}
