package crawler

import (
	"slices"
	"testing"

	"github.com/nao1215/facultyscan/internal/dom"
)

func parseDoc(t *testing.T, markup string) *dom.Document {
	t.Helper()

	doc, err := dom.ParseBytes([]byte(markup))
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	return doc
}

func TestLinkExtractor(t *testing.T) {
	t.Parallel()

	const origin = "https://www.example.edu"

	t.Run("keeps html and shtml links only", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body>
			<a href="/about.html">About</a>
			<a href="/doc.pdf">PDF</a>
			<a href="/news/index.shtml">News</a>
			<a href="/contact">Contact</a>
			<a href="/faculty.html?page=2">Paged</a>
		</body></html>`)

		got := NewLinkExtractor().Extract(doc, origin, nil)
		want := []string{
			"https://www.example.edu/about.html",
			"https://www.example.edu/news/index.shtml",
		}
		if !slices.Equal(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("resolves against the origin", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body>
			<a href="staff.html">Relative</a>
			<a href="../up.html">Parent</a>
			<a href="//cdn.example.edu/x.html">Scheme relative</a>
			<a href="https://other.example.com/y.html">Absolute</a>
		</body></html>`)

		got := NewLinkExtractor().Extract(doc, origin, nil)
		want := []string{
			"https://www.example.edu/staff.html",
			"https://www.example.edu/up.html",
			"https://cdn.example.edu/x.html",
			"https://other.example.com/y.html",
		}
		if !slices.Equal(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("deduplicates in discovery order", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body>
			<a href="/b.html">B</a>
			<a href="/a.html">A</a>
			<a href="/b.html">B again</a>
			<a href="https://www.example.edu/a.html">A absolute</a>
		</body></html>`)

		got := NewLinkExtractor().Extract(doc, origin, nil)
		want := []string{
			"https://www.example.edu/b.html",
			"https://www.example.edu/a.html",
		}
		if !slices.Equal(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("excludes visited", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body>
			<a href="/seen.html">Seen</a>
			<a href="/new.html">New</a>
		</body></html>`)

		visited := NewURLSet()
		visited.Add("https://www.example.edu/seen.html")

		got := NewLinkExtractor().Extract(doc, origin, visited)
		want := []string{"https://www.example.edu/new.html"}
		if !slices.Equal(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("skips unparsable and non-http references", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body>
			<a href="http://[::1">Broken</a>
			<a href="mailto:someone@example.edu">Mail</a>
			<a href="javascript:void(0)">JS</a>
			<a>No href</a>
			<a href="  /ok.html  ">Padded</a>
		</body></html>`)

		got := NewLinkExtractor().Extract(doc, origin, nil)
		want := []string{"https://www.example.edu/ok.html"}
		if !slices.Equal(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("custom suffixes", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body>
			<a href="/a.html">A</a>
			<a href="/b.php">B</a>
		</body></html>`)

		got := NewLinkExtractor(".php").Extract(doc, origin, nil)
		want := []string{"https://www.example.edu/b.php"}
		if !slices.Equal(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("empty page yields empty list", func(t *testing.T) {
		t.Parallel()

		got := NewLinkExtractor().Extract(parseDoc(t, ""), origin, nil)
		if got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil list, got %#v", got)
		}
	})
}

func TestURLSet(t *testing.T) {
	t.Parallel()

	s := NewURLSet()
	if !s.Add("a") {
		t.Error("expected first Add to report new")
	}
	if s.Add("a") {
		t.Error("expected duplicate Add to report existing")
	}
	s.Add("b")

	if !s.Contains("b") || s.Contains("c") {
		t.Error("unexpected Contains result")
	}
	if s.Len() != 2 {
		t.Errorf("expected 2, got %d", s.Len())
	}
	if got := s.Slice(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("expected [a b], got %v", got)
	}
}

func TestFrontier(t *testing.T) {
	t.Parallel()

	var f frontier
	f.push("1")
	f.push("2")
	f.push("3")

	if got := f.pop(); got != "1" {
		t.Errorf("expected 1, got %s", got)
	}
	f.push("4")
	if f.len() != 3 {
		t.Errorf("expected 3 pending, got %d", f.len())
	}
	if got := f.pop(); got != "2" {
		t.Errorf("expected 2, got %s", got)
	}
	if n := f.clear(); n != 2 {
		t.Errorf("expected 2 dropped, got %d", n)
	}
	if f.len() != 0 {
		t.Errorf("expected empty frontier, got %d", f.len())
	}
}
