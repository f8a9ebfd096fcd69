// Package report renders run reports and record listings.
//
// This package contains writers for different output formats:
//   - SimpleWriter: Human-readable text output for terminal display
//   - JSONWriter: Structured JSON output for tool integration
//   - FullJSONWriter: JSON output wrapped with version and summary
//   - MarkdownWriter: Markdown tables for documentation and sharing
//
// Design decision: We separate report writing from report data structures
// (which are in the model package). New output formats can be added
// without modifying the core data structures.
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output.
package report
