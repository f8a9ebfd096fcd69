package crawler

import (
	"net/url"
	"strings"

	"github.com/nao1215/facultyscan/internal/dom"
)

// DefaultAllowedSuffixes are the URL endings the crawler follows.
var DefaultAllowedSuffixes = []string{".html", ".shtml"}

// VisitedChecker reports whether a URL already completed a visit.
type VisitedChecker interface {
	Contains(u string) bool
}

// LinkExtractor collects followable links from a page.
type LinkExtractor struct {
	// suffixes is the allowlist of URL endings.
	suffixes []string
}

// NewLinkExtractor creates a LinkExtractor. With no suffixes the
// DefaultAllowedSuffixes are used.
func NewLinkExtractor(suffixes ...string) *LinkExtractor {
	if len(suffixes) == 0 {
		suffixes = DefaultAllowedSuffixes
	}
	return &LinkExtractor{suffixes: suffixes}
}

// Extract resolves the href of every anchor against origin and returns
// the resolved URLs that end in an allowed suffix and are not visited.
// The result is de-duplicated and keeps discovery order. References that
// cannot be parsed are skipped.
func (x *LinkExtractor) Extract(doc *dom.Document, origin string, visited VisitedChecker) []string {
	base, err := url.Parse(origin)
	if err != nil {
		return []string{}
	}

	links := NewURLSet()
	for _, a := range doc.FindAll(dom.ByTag("a")) {
		href, ok := a.Attr("href")
		if !ok {
			continue
		}

		resolved, ok := resolve(base, href)
		if !ok || !x.allowed(resolved) {
			continue
		}
		if visited != nil && visited.Contains(resolved) {
			continue
		}
		links.Add(resolved)
	}

	return links.Slice()
}

// resolve applies RFC 3986 reference resolution.
// Only http and https results are kept; the fetcher cannot follow
// anything else.
func resolve(base *url.URL, href string) (string, bool) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", false
	}

	u := base.ResolveReference(ref)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	return u.String(), true
}

// allowed reports whether u ends in one of the allowlisted suffixes.
func (x *LinkExtractor) allowed(u string) bool {
	for _, suffix := range x.suffixes {
		if strings.HasSuffix(u, suffix) {
			return true
		}
	}
	return false
}
