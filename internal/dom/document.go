package dom

import (
	"bytes"
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Document is a parsed HTML page.
type Document struct {
	// Root is the synthetic element holding the top-level nodes
	// (normally a single <html> element).
	Root *Element

	src   *html.Node
	index map[*html.Node]*Element
}

// Parse reads HTML from r and builds a Document.
// Malformed markup is repaired the way browsers do; an error is only
// returned when r itself fails.
func Parse(r io.Reader) (*Document, error) {
	src, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc := &Document{
		src:   src,
		index: make(map[*html.Node]*Element),
	}
	doc.Root = &Element{Tag: RootTag, Attrs: map[string]string{}, source: src}
	doc.index[src] = doc.Root
	doc.build(src, doc.Root)

	return doc, nil
}

// ParseBytes is Parse over an in-memory page.
func ParseBytes(content []byte) (*Document, error) {
	return Parse(bytes.NewReader(content))
}

// build converts the children of n into children of parent.
func (d *Document) build(n *html.Node, parent *Element) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			el := &Element{
				Tag:    c.Data,
				Attrs:  make(map[string]string, len(c.Attr)),
				parent: parent,
				source: c,
			}
			for _, attr := range c.Attr {
				if _, seen := el.Attrs[attr.Key]; !seen {
					el.Attrs[attr.Key] = attr.Val
				}
			}
			d.index[c] = el
			parent.Children = append(parent.Children, el)
			d.build(c, el)
		case html.TextNode:
			parent.Children = append(parent.Children, &Text{Content: c.Data, parent: parent})
		}
	}
}

// FindFirst returns the first element in the document matching match.
func (d *Document) FindFirst(match func(*Element) bool) *Element {
	return d.Root.FindFirst(match)
}

// FindAll returns every element in the document matching match.
func (d *Document) FindAll(match func(*Element) bool) []*Element {
	return d.Root.FindAll(match)
}

// Select returns the elements matching a CSS selector, in document order.
func (d *Document) Select(selector string) ([]*Element, error) {
	sel, err := CompileSelector(selector)
	if err != nil {
		return nil, err
	}
	return d.SelectCompiled(sel), nil
}

// SelectCompiled is Select with a selector compiled by CompileSelector.
func (d *Document) SelectCompiled(sel cascadia.Selector) []*Element {
	matches := goquery.NewDocumentFromNode(d.src).FindMatcher(sel)
	out := make([]*Element, 0, matches.Length())
	for _, n := range matches.Nodes {
		if el, ok := d.index[n]; ok {
			out = append(out, el)
		}
	}
	return out
}

// CompileSelector parses a CSS selector.
func CompileSelector(selector string) (cascadia.Selector, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}
	return sel, nil
}
