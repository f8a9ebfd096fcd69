package dom

import (
	"strings"
	"testing"
)

func mustParse(t *testing.T, markup string) *Document {
	t.Helper()

	doc, err := Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	return doc
}

// TestParse tests conversion into the typed tree.
func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("builds element and text nodes", func(t *testing.T) {
		t.Parallel()

		doc := mustParse(t, `<html><body><p class="a b">Hello <strong>World</strong></p></body></html>`)

		p := doc.FindFirst(ByTag("p"))
		if p == nil {
			t.Fatal("expected a <p> element")
		}
		if len(p.Children) != 2 {
			t.Fatalf("expected 2 children, got %d", len(p.Children))
		}
		if txt, ok := p.Children[0].(*Text); !ok || txt.Content != "Hello " {
			t.Errorf("expected leading text node, got %#v", p.Children[0])
		}
		if el, ok := p.Children[1].(*Element); !ok || el.Tag != "strong" {
			t.Errorf("expected strong element, got %#v", p.Children[1])
		}
		if p.Parent() == nil || p.Parent().Tag != "body" {
			t.Error("expected parent to be body")
		}
	})

	t.Run("drops comments", func(t *testing.T) {
		t.Parallel()

		doc := mustParse(t, `<p>a<!-- hidden -->b</p>`)
		p := doc.FindFirst(ByTag("p"))
		if got := p.Text(); got != "ab" {
			t.Errorf("expected %q, got %q", "ab", got)
		}
	})

	t.Run("first repeated attribute wins", func(t *testing.T) {
		t.Parallel()

		doc := mustParse(t, `<a href="/first.html" href="/second.html">x</a>`)
		a := doc.FindFirst(ByTag("a"))
		if href, _ := a.Attr("href"); href != "/first.html" {
			t.Errorf("expected /first.html, got %q", href)
		}
	})

	t.Run("root is synthetic", func(t *testing.T) {
		t.Parallel()

		doc := mustParse(t, `<p>x</p>`)
		if doc.Root.Tag != RootTag {
			t.Errorf("expected root tag %q, got %q", RootTag, doc.Root.Tag)
		}
		if doc.Root.Parent() != nil {
			t.Error("expected root to have no parent")
		}
	})
}

// TestElementHasClass tests class list matching.
func TestElementHasClass(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<h1 class=" cpp-h1  wide ">T</h1><h2 class="cpp-h1x">U</h2>`)

	h1 := doc.FindFirst(ByTag("h1"))
	if !h1.HasClass("cpp-h1") {
		t.Error("expected h1 to carry cpp-h1")
	}
	if !h1.HasClass("wide") {
		t.Error("expected h1 to carry wide")
	}
	h2 := doc.FindFirst(ByTag("h2"))
	if h2.HasClass("cpp-h1") {
		t.Error("class match must be whole-token")
	}
	if doc.FindFirst(ByTag("body")).HasClass("anything") {
		t.Error("element without class attribute has no classes")
	}
}

// TestElementText tests text concatenation.
func TestElementText(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<h1>Our <em>Permanent</em> Faculty <span>List</span></h1>`)
	h1 := doc.FindFirst(ByTag("h1"))

	if got := h1.Text(); got != "Our Permanent Faculty List" {
		t.Errorf("got %q", got)
	}
}

// TestFindAll tests pre-order collection.
func TestFindAll(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<div id="1"><div id="2"></div></div><div id="3"></div>`)

	divs := doc.FindAll(ByTag("div"))
	if len(divs) != 3 {
		t.Fatalf("expected 3 divs, got %d", len(divs))
	}
	for i, want := range []string{"1", "2", "3"} {
		if id, _ := divs[i].Attr("id"); id != want {
			t.Errorf("divs[%d] id = %q, want %q", i, id, want)
		}
	}
}

// TestNextSibling tests sibling access.
func TestNextSibling(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<p><strong>Title:</strong> Professor<br></p>`)
	strong := doc.FindFirst(ByTag("strong"))

	next := NextSibling(strong)
	txt, ok := next.(*Text)
	if !ok {
		t.Fatalf("expected text sibling, got %#v", next)
	}
	if txt.Content != " Professor" {
		t.Errorf("got %q", txt.Content)
	}

	br := NextSibling(txt)
	if el, ok := br.(*Element); !ok || el.Tag != "br" {
		t.Errorf("expected br, got %#v", br)
	}
	if NextSibling(br) != nil {
		t.Error("expected nil after last child")
	}
	if NextSibling(doc.Root) != nil {
		t.Error("expected nil for root")
	}
}

// TestFindNext tests document-order forward search.
func TestFindNext(t *testing.T) {
	t.Parallel()

	markup := `<div>
		<p><strong>Email:</strong> <span><a href="mailto:a@x.edu">a</a></span></p>
		<p><strong>Web:</strong></p>
	</div>
	<div><a href="https://example.edu/b">b</a></div>`
	doc := mustParse(t, markup)

	strongs := doc.FindAll(ByTag("strong"))
	if len(strongs) != 2 {
		t.Fatalf("expected 2 strong elements, got %d", len(strongs))
	}

	isMailto := func(e *Element) bool {
		href, ok := e.Attr("href")
		return e.Tag == "a" && ok && strings.Contains(href, "mailto:")
	}
	isHTTP := func(e *Element) bool {
		href, ok := e.Attr("href")
		return e.Tag == "a" && ok && strings.Contains(href, "http")
	}

	t.Run("finds anchor nested in a following sibling", func(t *testing.T) {
		t.Parallel()

		a := FindNext(strongs[0], isMailto)
		if a == nil {
			t.Fatal("expected mailto anchor")
		}
		if href, _ := a.Attr("href"); href != "mailto:a@x.edu" {
			t.Errorf("got %q", href)
		}
	})

	t.Run("climbs out of the enclosing block", func(t *testing.T) {
		t.Parallel()

		a := FindNext(strongs[1], isHTTP)
		if a == nil {
			t.Fatal("expected http anchor in the next block")
		}
		if href, _ := a.Attr("href"); href != "https://example.edu/b" {
			t.Errorf("got %q", href)
		}
	})

	t.Run("never looks backwards", func(t *testing.T) {
		t.Parallel()

		if a := FindNext(strongs[1], isMailto); a != nil {
			t.Errorf("expected no match, got %v", a.Attrs)
		}
	})

	t.Run("searches from a text node", func(t *testing.T) {
		t.Parallel()

		txt, ok := NextSibling(strongs[0]).(*Text)
		if !ok {
			t.Fatal("expected text after strong")
		}
		if a := FindNext(txt, isMailto); a == nil {
			t.Error("expected mailto anchor after text node")
		}
	})
}

// TestSelect tests CSS selection.
func TestSelect(t *testing.T) {
	t.Parallel()

	markup := `<div class="clearfix" id="a"><div class="clearfix inner" id="b"></div></div>
		<div class="other" id="c"></div><section class="clearfix" id="d"></section>`
	doc := mustParse(t, markup)

	t.Run("returns matches in document order", func(t *testing.T) {
		t.Parallel()

		got, err := doc.Select("div.clearfix")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 matches, got %d", len(got))
		}
		if id, _ := got[0].Attr("id"); id != "a" {
			t.Errorf("expected a first, got %q", id)
		}
		if id, _ := got[1].Attr("id"); id != "b" {
			t.Errorf("expected b second, got %q", id)
		}
	})

	t.Run("matches map back into the typed tree", func(t *testing.T) {
		t.Parallel()

		got, err := doc.Select(".inner")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].Parent() == nil || got[0].Parent().Tag != "div" {
			t.Errorf("expected inner div with div parent, got %v", got)
		}
	})

	t.Run("invalid selector returns error", func(t *testing.T) {
		t.Parallel()

		if _, err := doc.Select("div[["); err == nil {
			t.Error("expected error for invalid selector")
		}
	})
}
