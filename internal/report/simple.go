package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/facultyscan/internal/model"
)

// lineWidth is the width of section rules in text output.
const lineWidth = 70

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors because it works in all terminals and pipes cleanly to
// files or other tools.
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with nothing to list are shown.
	showEmpty bool

	// verbose adds the visited and failed URL lists to the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the run report in human-readable format.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	if w.verbose {
		w.writeURLs(&sb, "VISITED PAGES", report.Visited)
		w.writeURLs(&sb, "UNAVAILABLE PAGES", report.Failed)
	}
	w.writeSummary(&sb, model.NewSummary(report.Records))
	w.writeRecords(&sb, report.Records)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// WriteRecords outputs a record listing in human-readable format.
func (w *SimpleWriter) WriteRecords(records []model.FacultyRecord) (int, error) {
	var sb strings.Builder

	writeRule(&sb, "=")
	sb.WriteString("                        FACULTY RECORDS\n")
	writeRule(&sb, "=")
	sb.WriteString("\n")

	w.writeSummary(&sb, model.NewSummary(records))
	w.writeRecords(&sb, records)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with run information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.Report) {
	sb.WriteString("\n")
	writeRule(sb, "=")
	sb.WriteString("                       FACULTYSCAN REPORT\n")
	writeRule(sb, "=")
	sb.WriteString("\n")

	if report.SeedURL != "" {
		sb.WriteString(fmt.Sprintf("Seed URL:       %s\n", report.SeedURL))
	}
	if report.Source != "" {
		sb.WriteString(fmt.Sprintf("Source:         %s\n", report.Source))
	}
	sb.WriteString(fmt.Sprintf("Run Date:       %s\n", report.StartedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Duration:       %s\n", report.Duration().Round(time.Millisecond)))
	if report.CrawlState != "" {
		sb.WriteString(fmt.Sprintf("Crawl State:    %s\n", report.CrawlState))
		sb.WriteString(fmt.Sprintf("Pages Fetched:  %d\n", report.PagesFetched))
		sb.WriteString(fmt.Sprintf("Unavailable:    %d\n", len(report.Failed)))
	}
	sb.WriteString(fmt.Sprintf("Target Page:    %s\n", orDash(report.TargetURL)))
	sb.WriteString(fmt.Sprintf("Stored:         %t\n", report.Stored))
	sb.WriteString(fmt.Sprintf("Status:         %s\n", runStatus(report)))
	sb.WriteString("\n")
}

// writeURLs writes a titled list of URLs.
func (w *SimpleWriter) writeURLs(sb *strings.Builder, title string, urls []string) {
	if len(urls) == 0 && !w.showEmpty {
		return
	}

	writeRule(sb, "-")
	sb.WriteString(title + "\n")
	writeRule(sb, "-")
	sb.WriteString("\n")

	if len(urls) == 0 {
		sb.WriteString("  None\n")
	}
	for _, u := range urls {
		sb.WriteString(fmt.Sprintf("  [+] %s\n", u))
	}
	sb.WriteString("\n")
}

// writeSummary writes the record completeness summary.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, summary *model.Summary) {
	writeRule(sb, "-")
	sb.WriteString("SUMMARY\n")
	writeRule(sb, "-")
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("  RECORDS:    %d\n", summary.Total))
	sb.WriteString(fmt.Sprintf("  COMPLETE:   %d\n", summary.Complete))
	sb.WriteString(fmt.Sprintf("  INCOMPLETE: %d\n", summary.Incomplete()))
	sb.WriteString("\n")

	for _, field := range model.SummaryFields {
		if summary.Missing[field] == 0 && !w.showEmpty {
			continue
		}
		sb.WriteString(fmt.Sprintf("  missing %-8s %d\n", field+":", summary.Missing[field]))
	}
	sb.WriteString("\n")
}

// writeRecords writes one block per record.
func (w *SimpleWriter) writeRecords(sb *strings.Builder, records []model.FacultyRecord) {
	if len(records) == 0 && !w.showEmpty {
		return
	}

	writeRule(sb, "-")
	sb.WriteString("RECORDS\n")
	writeRule(sb, "-")
	sb.WriteString("\n")

	if len(records) == 0 {
		sb.WriteString("  No records\n\n")
		return
	}

	for _, r := range records {
		sb.WriteString(fmt.Sprintf("  * %s\n", r.Name))
		sb.WriteString(fmt.Sprintf("    Title:   %s\n", r.Title))
		sb.WriteString(fmt.Sprintf("    Office:  %s\n", r.Office))
		sb.WriteString(fmt.Sprintf("    Phone:   %s\n", r.Phone))
		sb.WriteString(fmt.Sprintf("    Email:   %s\n", r.Email))
		sb.WriteString(fmt.Sprintf("    Website: %s\n", r.Website))
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	writeRule(sb, "=")
	sb.WriteString("Report generated by facultyscan\n")
	sb.WriteString("https://github.com/nao1215/facultyscan\n")
	writeRule(sb, "=")
}

func writeRule(sb *strings.Builder, ch string) {
	sb.WriteString(strings.Repeat(ch, lineWidth))
	sb.WriteString("\n")
}
