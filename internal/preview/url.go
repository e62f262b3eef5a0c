package preview

import (
	"net/url"
	"regexp"
	"strings"
)

// UnknownDomain is returned for input that does not parse as a URL.
const UnknownDomain = "unknown"

var trackingParams = []string{
	"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content",
	"fbclid", "gclid",
}

var urlRegex = regexp.MustCompile(`https?://[^\s]+`)

// Domain returns the host of rawURL without a leading "www.".
func Domain(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Hostname() == "" {
		return UnknownDomain
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// NormalizeURL drops tracking parameters and the fragment. Input that does
// not parse is returned unchanged.
func NormalizeURL(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return rawURL
	}
	q := u.Query()
	for _, p := range trackingParams {
		q.Del(p)
	}
	u.RawQuery = q.Encode()
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}

// DetectURLs returns every http(s) URL in text, in order.
func DetectURLs(text string) []string {
	return urlRegex.FindAllString(text, -1)
}
