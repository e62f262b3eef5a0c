// Package preview fetches link metadata (Open Graph, Twitter cards, the
// document title) for saved links.
package preview

import (
	"context"
	"strings"
)

// Content types derived from og:type.
const (
	TypeArticle  = "article"
	TypeVideo    = "video"
	TypeImage    = "image"
	TypeWebsite  = "website"
	TypeDocument = "document"
	TypeSocial   = "social"
	TypeOther    = "other"
)

// Preview is the metadata of one link.
type Preview struct {
	URL           string `json:"url"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Image         string `json:"image,omitempty"`
	Domain        string `json:"domain"`
	SiteName      string `json:"site_name,omitempty"`
	Type          string `json:"type"`
	Author        string `json:"author,omitempty"`
	PublishedTime string `json:"published_time,omitempty"`
}

// Fetcher loads a preview for a URL.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*Preview, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, rawURL string) (*Preview, error)

func (f FetcherFunc) Fetch(ctx context.Context, rawURL string) (*Preview, error) {
	return f(ctx, rawURL)
}

// ContentType maps an og:type value onto one of the Type constants.
func ContentType(ogType string) string {
	t := strings.ToLower(strings.TrimSpace(ogType))
	switch {
	case t == "":
		return TypeWebsite
	case strings.Contains(t, "article"):
		return TypeArticle
	case strings.Contains(t, "video"):
		return TypeVideo
	case strings.Contains(t, "image"):
		return TypeImage
	case strings.Contains(t, "document"):
		return TypeDocument
	case strings.Contains(t, "social"):
		return TypeSocial
	case t == "website":
		return TypeWebsite
	default:
		return TypeOther
	}
}
