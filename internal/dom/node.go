package dom

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// Node is either an *Element or a *Text.
type Node interface {
	// Parent returns the enclosing element, or nil for the document root.
	Parent() *Element

	node()
}

// Element is an HTML element.
type Element struct {
	// Tag is the lower-case tag name ("div", "a", ...).
	// The document root uses RootTag.
	Tag string

	// Attrs maps attribute names to values. The first occurrence of a
	// repeated attribute wins.
	Attrs map[string]string

	// Children holds child elements and text nodes in document order.
	Children []Node

	parent *Element
	source *html.Node
}

// Text is a text node.
type Text struct {
	Content string

	parent *Element
}

// RootTag is the Tag of the synthetic element at the top of every Document.
const RootTag = "#document"

func (*Element) node() {}
func (*Text) node()    {}

// Parent returns the enclosing element.
func (e *Element) Parent() *Element { return e.parent }

// Parent returns the enclosing element.
func (t *Text) Parent() *Element { return t.parent }

// Attr returns the value of the named attribute and whether it is present.
func (e *Element) Attr(key string) (string, bool) {
	v, ok := e.Attrs[key]
	return v, ok
}

// HasClass reports whether the element's class list contains class.
func (e *Element) HasClass(class string) bool {
	classes, ok := e.Attrs["class"]
	if !ok {
		return false
	}
	return slices.Contains(strings.Fields(classes), class)
}

// Text returns the concatenated content of every descendant text node.
func (e *Element) Text() string {
	var sb strings.Builder
	e.writeText(&sb)
	return sb.String()
}

func (e *Element) writeText(sb *strings.Builder) {
	for _, c := range e.Children {
		switch n := c.(type) {
		case *Text:
			sb.WriteString(n.Content)
		case *Element:
			n.writeText(sb)
		}
	}
}

// FindFirst returns the first descendant of e (pre-order, e excluded)
// for which match returns true.
func (e *Element) FindFirst(match func(*Element) bool) *Element {
	for _, c := range e.Children {
		el, ok := c.(*Element)
		if !ok {
			continue
		}
		if match(el) {
			return el
		}
		if found := el.FindFirst(match); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant of e (pre-order, e excluded) for which
// match returns true.
func (e *Element) FindAll(match func(*Element) bool) []*Element {
	out := make([]*Element, 0)
	e.collect(match, &out)
	return out
}

func (e *Element) collect(match func(*Element) bool, out *[]*Element) {
	for _, c := range e.Children {
		el, ok := c.(*Element)
		if !ok {
			continue
		}
		if match(el) {
			*out = append(*out, el)
		}
		el.collect(match, out)
	}
}

// FindFirstTag returns the first descendant element with the given tag.
func (e *Element) FindFirstTag(tag string) *Element {
	return e.FindFirst(ByTag(tag))
}

// ByTag matches elements with the given tag name.
func ByTag(tag string) func(*Element) bool {
	return func(e *Element) bool { return e.Tag == tag }
}

// ByTagAndClass matches elements with the given tag that carry class.
func ByTagAndClass(tag, class string) func(*Element) bool {
	return func(e *Element) bool { return e.Tag == tag && e.HasClass(class) }
}

// NextSibling returns the node that follows n under the same parent,
// or nil when n is the last child or has no parent.
func NextSibling(n Node) Node {
	following := siblingsAfter(n)
	if len(following) == 0 {
		return nil
	}
	return following[0]
}

// siblingsAfter returns the children of n's parent that follow n.
func siblingsAfter(n Node) []Node {
	p := n.Parent()
	if p == nil {
		return nil
	}
	for i, c := range p.Children {
		if c == n {
			return p.Children[i+1:]
		}
	}
	return nil
}

// FindNext returns the first element after n in document order for which
// match returns true. Descendants of n come first, then following
// siblings and their subtrees, then the following siblings of each
// ancestor. The search is not bounded to any subtree.
func FindNext(n Node, match func(*Element) bool) *Element {
	if el, ok := n.(*Element); ok {
		if found := el.FindFirst(match); found != nil {
			return found
		}
	}
	cur := n
	for {
		for _, sib := range siblingsAfter(cur) {
			el, ok := sib.(*Element)
			if !ok {
				continue
			}
			if match(el) {
				return el
			}
			if found := el.FindFirst(match); found != nil {
				return found
			}
		}
		parent := cur.Parent()
		if parent == nil {
			return nil
		}
		cur = parent
	}
}
