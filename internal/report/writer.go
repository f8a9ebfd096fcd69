package report

import (
	"io"

	"github.com/nao1215/facultyscan/internal/model"
)

// Writer defines the interface for report output.
// Implementations write run results and record listings in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or both with
// the same API.
type Writer interface {
	// Write outputs the run report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.Report) (int, error)

	// WriteRecords outputs a bare record listing, such as the contents
	// of the record store, where no run report exists.
	WriteRecords(records []model.FacultyRecord) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write reports, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(report *model.Report) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteRecords outputs the records to all configured Writers.
func (m *MultiWriter) WriteRecords(records []model.FacultyRecord) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteRecords(records)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// runStatus describes how a run ended in one short phrase.
func runStatus(report *model.Report) string {
	switch {
	case report.TimedOut:
		return "cancelled (partial results)"
	case report.ErrorMessage != "":
		return "error - " + report.ErrorMessage
	case report.Error != nil:
		return "error - " + report.Error.Error()
	case report.CrawlState == "exhausted":
		return "no faculty page found"
	default:
		return "complete"
	}
}

// orDash returns s, or "-" when s is empty.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
