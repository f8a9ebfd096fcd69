package crawler

import (
	"strings"

	"github.com/nao1215/facultyscan/internal/dom"
)

// Default target detection values.
const (
	// DefaultTargetHeading is the heading level that carries the marker.
	DefaultTargetHeading = "h1"

	// DefaultTargetMarker is the class the target heading carries.
	DefaultTargetMarker = "cpp-h1"

	// DefaultTargetPhrase is the text the target heading must contain.
	DefaultTargetPhrase = "Permanent Faculty"
)

// TargetDetector decides whether a page is the one the crawl looks for.
type TargetDetector struct {
	heading string
	marker  string
	phrase  string
}

// NewTargetDetector creates a detector for headings carrying the marker
// class whose text contains phrase.
func NewTargetDetector(marker, phrase string) *TargetDetector {
	return &TargetDetector{
		heading: DefaultTargetHeading,
		marker:  marker,
		phrase:  phrase,
	}
}

// IsTarget looks at the first marked heading only. The phrase match is a
// case-sensitive substring test on the heading's full text.
func (d *TargetDetector) IsTarget(doc *dom.Document) bool {
	heading := doc.FindFirst(dom.ByTagAndClass(d.heading, d.marker))
	if heading == nil {
		return false
	}
	return strings.Contains(heading.Text(), d.phrase)
}
