// Package retrieval picks the saved item that best answers a free-text
// question and projects it into a preview for the conversation layer.
package retrieval

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/hpungsan/stash/internal/extract"
	"github.com/hpungsan/stash/internal/item"
	"github.com/hpungsan/stash/internal/preview"
)

const (
	// MinQueryTokenChars is exclusive: query tokens must be longer than this.
	MinQueryTokenChars = 3

	// DefaultPreviewTimeout bounds the link-preview fetch.
	DefaultPreviewTimeout = 3 * time.Second

	maxTitleChars       = 50
	maxDescriptionChars = 150

	// NoDescription is used when an item has neither excerpt nor text.
	NoDescription = "No description available"
)

// Result is the preview of the chosen item.
type Result struct {
	ItemID      string    `json:"item_id"`
	Kind        item.Kind `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url,omitempty"`
	Domain      string    `json:"domain"`
	SourceURL   string    `json:"source_url,omitempty"`
}

// Retriever finds the best-matching item for a query. It holds no state
// between calls and is safe for concurrent use.
type Retriever struct {
	fetcher preview.Fetcher
	timeout time.Duration
	logger  *zap.Logger
}

// Option configures a Retriever.
type Option func(*Retriever)

// WithPreviewFetcher sets the link-preview collaborator. Without one, links
// always get a placeholder image.
func WithPreviewFetcher(f preview.Fetcher) Option {
	return func(r *Retriever) { r.fetcher = f }
}

// WithPreviewTimeout bounds each preview fetch. Non-positive values keep
// DefaultPreviewTimeout.
func WithPreviewTimeout(d time.Duration) Option {
	return func(r *Retriever) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithLogger sets the logger used for collaborator failures.
func WithLogger(l *zap.Logger) Option {
	return func(r *Retriever) { r.logger = l }
}

// New returns a Retriever.
func New(opts ...Option) *Retriever {
	r := &Retriever{timeout: DefaultPreviewTimeout}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	return r
}

// QueryKeywords splits query on whitespace and keeps the lowercased tokens
// longer than MinQueryTokenChars characters. Stopwords are not removed.
func QueryKeywords(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	keywords := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) > MinQueryTokenChars {
			keywords = append(keywords, f)
		}
	}
	return keywords
}

// FindBestMatch returns the most recent item containing any query keyword.
// When none does, it returns the most recent item with extracted text or
// title. It returns nil when no item qualifies. Preview failures are logged
// and replaced by a placeholder image; they never fail the call.
func (r *Retriever) FindBestMatch(ctx context.Context, query string, items []item.Item) *Result {
	best := SelectBest(QueryKeywords(query), items)
	if best == nil {
		return nil
	}
	return r.project(ctx, best)
}

// SelectBest applies the matching and recency rules without building a
// preview. The input slice is not reordered.
func SelectBest(keywords []string, items []item.Item) *item.Item {
	live := make([]*item.Item, 0, len(items))
	for i := range items {
		if items[i].DeletedAt == nil {
			live = append(live, &items[i])
		}
	}
	sort.SliceStable(live, func(i, j int) bool {
		return live[i].CreatedAt > live[j].CreatedAt
	})

	for _, it := range live {
		if matchesAny(searchable(it), keywords) {
			return it
		}
	}
	for _, it := range live {
		if it.HasExtracted() {
			return it
		}
	}
	return nil
}

// searchable is the lowercased text an item is matched against.
func searchable(it *item.Item) string {
	return strings.ToLower(it.ExtractedText + " " + it.ExtractedTitle + " " + it.RawContent)
}

func matchesAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func (r *Retriever) project(ctx context.Context, it *item.Item) *Result {
	src := it.URL()
	domain := kindLabel(it.Kind)
	if src != "" {
		if d := preview.Domain(src); d != preview.UnknownDomain {
			domain = d
		}
	}
	res := &Result{
		ItemID:      it.ID,
		Kind:        it.Kind,
		Title:       Title(it),
		Description: Description(it),
		Domain:      domain,
	}
	if it.Kind == item.KindLink || it.Kind == item.KindFile {
		res.SourceURL = src
	}

	switch it.Kind {
	case item.KindLink:
		res.ImageURL = r.linkImage(ctx, src, domain)
	case item.KindImage:
		res.ImageURL = src
	case item.KindFile:
		res.ImageURL = ContentTypeImage(preview.TypeDocument, domain)
	}
	return res
}

// linkImage asks the preview collaborator for an image, bounded by the
// retriever timeout, and falls back to a placeholder on any failure.
func (r *Retriever) linkImage(ctx context.Context, src, domain string) string {
	if r.fetcher == nil || src == "" {
		return PlaceholderImage(domain)
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	p, err := r.fetcher.Fetch(ctx, src)
	if err != nil {
		r.logger.Warn("preview fetch failed, using placeholder",
			zap.String("url", src), zap.Error(err))
		return PlaceholderImage(domain)
	}
	if p == nil || p.Image == "" {
		r.logger.Debug("preview has no image, using placeholder", zap.String("url", src))
		return PlaceholderImage(domain)
	}
	return p.Image
}

// Title picks the display title: extracted title, filename without
// extension, first line of content, first line of extracted text, then a
// default for the kind.
func Title(it *item.Item) string {
	if t := extract.CleanDisplayTitle(it.ExtractedTitle); t != "" {
		return t
	}
	if it.Filename != "" {
		base := filepath.Base(it.Filename)
		if t := strings.TrimSuffix(base, filepath.Ext(base)); t != "" {
			return t
		}
	}
	if t := item.FirstLine(it.RawContent, maxTitleChars); t != "" {
		return t
	}
	if t := item.FirstLine(it.ExtractedText, maxTitleChars); t != "" {
		return t
	}
	return defaultTitle(it.Kind)
}

// Description picks the excerpt, else the start of the extracted text.
func Description(it *item.Item) string {
	if d := strings.TrimSpace(it.ExtractedExcerpt); d != "" {
		return d
	}
	if d := item.Truncate(strings.TrimSpace(it.ExtractedText), maxDescriptionChars); d != "" {
		return d
	}
	return NoDescription
}

func defaultTitle(k item.Kind) string {
	switch k {
	case item.KindFile:
		return "Document"
	case item.KindImage:
		return "Image"
	case item.KindLink:
		return "Web Page"
	default:
		return "Content"
	}
}

func kindLabel(k item.Kind) string {
	switch k {
	case item.KindFile:
		return "document"
	case item.KindImage:
		return "image"
	case item.KindLink:
		return "link"
	default:
		return "note"
	}
}
