// Package dom provides a small typed document tree for HTML pages.
//
// The tree has exactly two node variants:
//   - Element: a tag with its attribute map and ordered children
//   - Text: a run of character data
//
// Comments, doctypes and processing instructions are dropped while
// building the tree; nothing downstream reads them.
//
// Design decision: We convert the golang.org/x/net/html tree into our own
// types rather than passing *html.Node around because:
//  1. Callers switch on two concrete types instead of probing NodeType fields
//  2. Attribute lookup is a map access instead of a slice scan
//  3. Traversal helpers (find-first, find-all, next-in-document-order)
//     live in one place and are tested once
//
// CSS selectors are still available through Document.Select, which runs
// goquery over the original parse tree and maps the matches back to
// Elements.
package dom
