package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/facultyscan/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the run report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeAlert(md, report)
	w.writeSummary(md, model.NewSummary(report.Records))
	w.writeRecords(md, report.Records)
	if len(report.Failed) > 0 {
		md.H2("Unavailable Pages")
		md.PlainText("")
		md.BulletList(report.Failed...)
		md.PlainText("")
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteRecords outputs a record listing in Markdown format.
func (w *MarkdownWriter) WriteRecords(records []model.FacultyRecord) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Faculty Records")
	md.PlainText("")
	w.writeSummary(md, model.NewSummary(records))
	w.writeRecords(md, records)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1("facultyscan Report")
	md.PlainText("")

	rows := make([][]string, 0, 8)
	if report.SeedURL != "" {
		rows = append(rows, []string{"Seed URL", "`" + report.SeedURL + "`"})
	}
	if report.Source != "" {
		rows = append(rows, []string{"Source", "`" + report.Source + "`"})
	}
	rows = append(rows,
		[]string{"Run Date", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
		[]string{"Duration", report.Duration().Round(time.Millisecond).String()},
	)
	if report.CrawlState != "" {
		rows = append(rows,
			[]string{"Crawl State", report.CrawlState},
			[]string{"Pages Fetched", strconv.Itoa(report.PagesFetched)},
		)
	}
	rows = append(rows,
		[]string{"Target Page", orDash(report.TargetURL)},
		[]string{"Status", w.getStatusText(report)},
	)

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// getStatusText returns the status text based on report state.
func (w *MarkdownWriter) getStatusText(report *model.Report) string {
	status := runStatus(report)
	switch {
	case report.TimedOut:
		return "⚠️ " + status
	case report.ErrorMessage != "" || report.Error != nil:
		return "❌ " + status
	default:
		return "✅ " + status
	}
}

// writeAlert writes an alert describing how the run ended.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.Report) {
	switch {
	case report.Error != nil || report.ErrorMessage != "":
		md.Cautionf("The run stopped with an error: %s", runStatus(report))
	case report.TimedOut:
		md.Warningf("The run was cancelled before it completed. Results are partial.")
	case report.CrawlState == "exhausted":
		md.Importantf("No faculty page was found after visiting %d page(s).", len(report.Visited))
	case len(report.Records) > 0 && !report.Stored:
		md.Note("Records were extracted but not written to the record store.")
	case len(report.Records) == 0:
		md.Note("No faculty records were extracted.")
	default:
		md.Tip("All extracted records were stored.")
	}
	md.PlainText("")
}

// writeSummary writes the completeness summary and a chart of missing fields.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, summary *model.Summary) {
	md.H2("Summary")
	md.PlainText("")

	rows := [][]string{
		{"Records", strconv.Itoa(summary.Total)},
		{"Complete", strconv.Itoa(summary.Complete)},
		{"Incomplete", strconv.Itoa(summary.Incomplete())},
	}
	for _, field := range model.SummaryFields {
		rows = append(rows, []string{"Missing " + field, strconv.Itoa(summary.Missing[field])})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Count"},
		Rows:   rows,
	})
	md.PlainText("")

	if summary.Incomplete() > 0 {
		w.writePieChart(md, summary)
	}
}

// writePieChart writes a mermaid pie chart of missing field counts.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summary *model.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Missing Fields"),
		piechart.WithShowData(true),
	)

	for _, field := range model.SummaryFields {
		if n := summary.Missing[field]; n > 0 {
			chart.LabelAndIntValue(field, uint64(n))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeRecords writes the record table.
func (w *MarkdownWriter) writeRecords(md *markdown.Markdown, records []model.FacultyRecord) {
	md.H2("Records")
	md.PlainText("")

	if len(records) == 0 {
		md.PlainText("No records.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			r.Name,
			r.Title,
			r.Office,
			r.Phone,
			r.Email,
			truncateString(r.Website, 60),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Name", "Title", "Office", "Phone", "Email", "Website"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [facultyscan](https://github.com/nao1215/facultyscan)*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
