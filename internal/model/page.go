package model

import (
	"crypto/sha256"
	"encoding/hex"
	"mime"
	"net/url"
	"strings"
	"time"
)

// Page represents a fetched web page.
// Pages are transient: they are handed to the target detector and link
// extractor, and persisted verbatim through the page store.
type Page struct {
	// URL is the absolute URL the page was requested from.
	URL string `json:"url"`

	// StatusCode is the HTTP response status code.
	StatusCode int `json:"status_code"`

	// ContentType is the raw Content-Type header value.
	ContentType string `json:"content_type"`

	// Content is the decoded response body.
	Content []byte `json:"-"`

	// FetchedAt is when the response was received.
	FetchedAt time.Time `json:"fetched_at"`

	// Hash is the SHA-256 hash of Content.
	Hash string `json:"hash"`
}

// MaxPageSize is the default limit on page content kept by the fetcher.
// Larger bodies are truncated to this size.
const MaxPageSize = 5 * 1024 * 1024 // 5 MB

// ComputeHash calculates and sets the SHA-256 hash of the page content.
// This should be called after setting the Content field.
func (p *Page) ComputeHash() {
	if len(p.Content) == 0 {
		p.Hash = ""
		return
	}

	hash := sha256.Sum256(p.Content)
	p.Hash = hex.EncodeToString(hash[:])
}

// MediaType returns the lower-cased media type of the page without
// parameters such as charset. Unparsable values yield an empty string.
func (p *Page) MediaType() string {
	if p.ContentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(p.ContentType)
	if err != nil {
		return ""
	}
	return strings.ToLower(mediaType)
}

// IsHTML returns true if the page content type indicates HTML.
func (p *Page) IsHTML() bool {
	switch p.MediaType() {
	case "text/html", "application/xhtml+xml":
		return true
	default:
		return false
	}
}

// Origin returns the scheme and host of the page URL ("https://example.com"),
// dropping path, query and fragment. An empty string is returned when the
// URL cannot be parsed or is not absolute.
func (p *Page) Origin() string {
	return Origin(p.URL)
}

// Origin returns the scheme and host portion of rawURL.
func Origin(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
