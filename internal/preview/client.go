package preview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	// DefaultUserAgent mimics a messaging client so sites serve their cards.
	DefaultUserAgent = "WhatsApp/2.22.20.72 A"

	// MaxBodyBytes bounds how much of a page is read for metadata.
	MaxBodyBytes = 300 * 1024

	// DefaultTimeout bounds a single fetch when the caller's context has none.
	DefaultTimeout = 10 * time.Second

	maxTitleChars       = 80
	maxDescriptionChars = 80
)

// ErrNoMetadata is returned when a page carries none of the recognized tags.
var ErrNoMetadata = errors.New("preview: no metadata")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("preview: GET %s: HTTP %d", e.URL, e.StatusCode)
}

// Client fetches and parses link previews over HTTP.
type Client struct {
	httpClient *http.Client
	userAgent  string
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient returns a Client with a DefaultTimeout http.Client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		userAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// Fetch downloads rawURL and builds a Preview from its head metadata.
// Title falls back to "Link from <domain>"; Image is left empty when the
// page declares none.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Preview, error) {
	target := NormalizeURL(rawURL)
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("preview: invalid url %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("preview: build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Cache-Control", "no-cache")

	c.logger.Debug("fetching preview", zap.String("url", target))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("preview: GET %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: target, StatusCode: resp.StatusCode}
	}

	meta := parseMeta(io.LimitReader(resp.Body, MaxBodyBytes))
	if len(meta) == 0 {
		return nil, ErrNoMetadata
	}

	// Redirects change the page the relative image URL is resolved against.
	base := resp.Request.URL
	if base == nil {
		base = u
	}
	return buildPreview(meta, base), nil
}

func buildPreview(meta map[string]string, base *url.URL) *Preview {
	domain := Domain(base.String())
	p := &Preview{
		URL:           first(meta["og:url"], base.String()),
		Title:         first(meta["og:title"], meta["twitter:title"], meta["title"], "Link from "+domain),
		Description:   first(meta["og:description"], meta["twitter:description"], meta["description"]),
		Image:         resolveRef(base, first(meta["og:image"], meta["twitter:image"])),
		Domain:        domain,
		SiteName:      meta["og:site_name"],
		Type:          ContentType(meta["og:type"]),
		Author:        first(meta["author"], meta["article:author"]),
		PublishedTime: meta["article:published_time"],
	}
	p.Title = ellipsize(p.Title, maxTitleChars)
	p.Description = ellipsize(p.Description, maxDescriptionChars)
	return p
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// resolveRef makes ref absolute against base. Unparsable refs are dropped.
func resolveRef(base *url.URL, ref string) string {
	if ref == "" {
		return ""
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return base.ResolveReference(r).String()
}

// ellipsize cuts s to max characters, ending in "..." when cut.
func ellipsize(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-3]) + "..."
}
