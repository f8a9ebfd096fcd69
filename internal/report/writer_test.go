package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/facultyscan/internal/model"
)

// createTestReport creates a report with sample data for testing.
func createTestReport() *model.Report {
	report := model.NewReport("https://www.example.edu/cs/")
	report.FinishedAt = report.StartedAt.Add(1500 * time.Millisecond)
	report.PerformedSteps = []string{"crawl", "extract", "store"}
	report.CrawlState = "found"
	report.TargetURL = "https://www.example.edu/cs/permanent-faculty.shtml"
	report.Visited = []string{"https://www.example.edu/cs/", "https://www.example.edu/cs/about.html"}
	report.Failed = []string{"https://www.example.edu/cs/broken.html"}
	report.PagesFetched = 3
	report.Stored = true
	report.Records = []model.FacultyRecord{
		{
			Name:    "Ada Lovelace",
			Title:   "Professor",
			Office:  "8-49",
			Phone:   "(909) 869-0000",
			Email:   "ada@example.edu",
			Website: "https://example.edu/~ada",
		},
		{
			Name:    "Alan Turing",
			Title:   "Lecturer",
			Office:  model.UnknownOffice,
			Phone:   model.UnknownPhone,
			Email:   "alan@example.edu",
			Website: model.NoWebsiteProvided,
		},
	}
	return report
}

func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes report header", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "FACULTYSCAN REPORT") {
			t.Error("expected output to contain header")
		}
		if !strings.Contains(output, "https://www.example.edu/cs/permanent-faculty.shtml") {
			t.Error("expected output to contain target page")
		}
		if !strings.Contains(output, "Status:         complete") {
			t.Errorf("expected complete status, got:\n%s", output)
		}
	})

	t.Run("writes summary and records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"RECORDS:    2",
			"COMPLETE:   1",
			"INCOMPLETE: 1",
			"missing office:",
			"* Ada Lovelace",
			"Website: " + model.NoWebsiteProvided,
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
		if strings.Contains(output, "missing title:") {
			t.Error("expected zero-count fields to be hidden")
		}
	})

	t.Run("verbose mode lists urls", func(t *testing.T) {
		t.Parallel()

		var quiet, verbose bytes.Buffer
		report := createTestReport()
		if _, err := NewSimpleWriter(&quiet).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := NewSimpleWriter(&verbose, WithVerbose(true)).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if strings.Contains(quiet.String(), "UNAVAILABLE PAGES") {
			t.Error("expected url lists to be hidden without verbose")
		}
		if !strings.Contains(verbose.String(), "[+] https://www.example.edu/cs/broken.html") {
			t.Error("expected verbose output to list failed pages")
		}
	})

	t.Run("show empty prints empty sections", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		report := model.NewReport("https://www.example.edu/")
		w := NewSimpleWriter(&buf, WithShowEmpty(true))
		if _, err := w.Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "No records") {
			t.Error("expected empty records section")
		}
	})

	t.Run("handles cancelled report", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		report := createTestReport()
		report.TimedOut = true
		if _, err := NewSimpleWriter(&buf).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "cancelled (partial results)") {
			t.Error("expected output to indicate cancellation")
		}
	})

	t.Run("shows error in status", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		report := createTestReport()
		report.Error = errors.New("database is locked")
		if _, err := NewSimpleWriter(&buf).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "error - database is locked") {
			t.Error("expected output to contain the error")
		}
	})

	t.Run("exhausted crawl", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		report := model.NewReport("https://www.example.edu/")
		report.CrawlState = "exhausted"
		if _, err := NewSimpleWriter(&buf).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "no faculty page found") {
			t.Error("expected exhausted status")
		}
		if !strings.Contains(buf.String(), "Target Page:    -") {
			t.Error("expected dash for missing target")
		}
	})

	t.Run("writes record listing", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).WriteRecords(createTestReport().Records); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		output := buf.String()
		if !strings.Contains(output, "FACULTY RECORDS") {
			t.Error("expected listing header")
		}
		if !strings.Contains(output, "* Alan Turing") {
			t.Error("expected record in listing")
		}
	})
}

func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("outputs valid JSON", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded model.Report
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if len(decoded.Records) != 2 {
			t.Errorf("expected 2 records, got %d", len(decoded.Records))
		}
		if decoded.CrawlState != "found" {
			t.Errorf("expected crawl_state found, got %q", decoded.CrawlState)
		}
	})

	t.Run("compact output by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Count(buf.String(), "\n") != 1 {
			t.Error("expected compact JSON on a single line")
		}
	})

	t.Run("pretty print with indent", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  \"seed_url\"") {
			t.Error("expected indented JSON")
		}
	})

	t.Run("error message is serialized", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		report := createTestReport()
		report.Error = errors.New("boom")
		if _, err := NewJSONWriter(&buf).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), `"error":"boom"`) {
			t.Errorf("expected error field, got %s", buf.String())
		}
	})

	t.Run("nil records become empty array", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).WriteRecords(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.TrimSpace(buf.String()) != "[]" {
			t.Errorf("expected [], got %q", buf.String())
		}
	})
}

func TestFullJSONWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewFullJSONWriter(&buf, "1.2.3", WithPrettyPrint())
	if _, err := w.Write(createTestReport()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded JSONReport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Version != "1.2.3" {
		t.Errorf("expected version 1.2.3, got %q", decoded.Version)
	}
	if decoded.Summary == nil || decoded.Summary.Total != 2 || decoded.Summary.Complete != 1 {
		t.Errorf("unexpected summary: %+v", decoded.Summary)
	}
	if decoded.Summary.Missing["website"] != 1 {
		t.Errorf("expected one missing website, got %d", decoded.Summary.Missing["website"])
	}
}

func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes tables and chart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"# facultyscan Report",
			"## Summary",
			"## Records",
			"Ada Lovelace",
			"```mermaid",
			"## Unavailable Pages",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("no chart when every record is complete", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		report := createTestReport()
		report.Records = report.Records[:1]
		if _, err := NewMarkdownWriter(&buf).Write(report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(buf.String(), "```mermaid") {
			t.Error("expected no chart")
		}
	})

	t.Run("writes record listing", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).WriteRecords(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "# Faculty Records") {
			t.Error("expected listing header")
		}
		if !strings.Contains(buf.String(), "No records.") {
			t.Error("expected empty listing note")
		}
	})
}

func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var text, js bytes.Buffer
	mw := NewMultiWriter(NewSimpleWriter(&text), NewJSONWriter(&js))

	n, err := mw.Write(createTestReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != text.Len()+js.Len() {
		t.Errorf("expected %d bytes, got %d", text.Len()+js.Len(), n)
	}
	if text.Len() == 0 || js.Len() == 0 {
		t.Error("expected both writers to receive output")
	}

	text.Reset()
	js.Reset()
	if _, err := mw.WriteRecords(createTestReport().Records); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(js.String(), "[") {
		t.Error("expected JSON array from WriteRecords")
	}
}

func TestTruncateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"abcdef", 3, "abc"},
	}
	for _, tt := range tests {
		if got := truncateString(tt.in, tt.max); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
