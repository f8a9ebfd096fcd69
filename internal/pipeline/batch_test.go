package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestBatchProcessor(t *testing.T) {
	t.Parallel()

	t.Run("keeps input order", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		paths := []string{
			writeFile(t, dir, "a.html", facultyPage),
			writeFile(t, dir, "b.html", `<html><body><div class="clearfix"><h2>Solo</h2></div></body></html>`),
			writeFile(t, dir, "c.html", `<html><body></body></html>`),
		}

		bp := NewBatchProcessor(newExtractor(t), WithConcurrency(2), WithBatchLogger(quietLogger()))
		results, err := bp.ProcessFiles(context.Background(), paths)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(results) != 3 {
			t.Fatalf("expected 3 results, got %d", len(results))
		}
		wantCounts := []int{2, 1, 0}
		for i, r := range results {
			if r.Path != paths[i] {
				t.Errorf("result %d: expected path %s, got %s", i, paths[i], r.Path)
			}
			if r.Err != nil {
				t.Errorf("result %d: unexpected error %v", i, r.Err)
			}
			if len(r.Records) != wantCounts[i] {
				t.Errorf("result %d: expected %d records, got %d", i, wantCounts[i], len(r.Records))
			}
		}
	})

	t.Run("unreadable file does not stop the batch", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		paths := []string{
			filepath.Join(dir, "missing.html"),
			writeFile(t, dir, "ok.html", facultyPage),
		}

		results, err := NewBatchProcessor(newExtractor(t), WithBatchLogger(quietLogger())).
			ProcessFiles(context.Background(), paths)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if results[0].Err == nil {
			t.Error("expected error for missing file")
		}
		if len(results[1].Records) != 2 {
			t.Errorf("expected 2 records, got %d", len(results[1].Records))
		}
	})
}

func TestFilesStep(t *testing.T) {
	t.Parallel()

	t.Run("concatenates records", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		paths := []string{
			writeFile(t, dir, "one.html", facultyPage),
			writeFile(t, dir, "two.html", facultyPage),
		}

		run := NewRun("")
		bp := NewBatchProcessor(newExtractor(t), WithBatchLogger(quietLogger()))
		if err := NewFilesStep(bp, paths, quietLogger()).Do(context.Background(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(run.Report.Records) != 4 {
			t.Errorf("expected 4 records, got %d", len(run.Report.Records))
		}
		if run.Report.Records[0].Name != "Jane Doe" || run.Report.Records[2].Name != "Jane Doe" {
			t.Errorf("unexpected order: %+v", run.Report.Records)
		}
	})

	t.Run("all files failing is an error", func(t *testing.T) {
		t.Parallel()

		paths := []string{filepath.Join(t.TempDir(), "nope.html")}
		bp := NewBatchProcessor(newExtractor(t), WithBatchLogger(quietLogger()))
		if err := NewFilesStep(bp, paths, quietLogger()).Do(context.Background(), NewRun("")); err == nil {
			t.Error("expected error")
		}
	})
}
