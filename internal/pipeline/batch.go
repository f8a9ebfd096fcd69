package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/facultyscan/internal/dom"
	"github.com/nao1215/facultyscan/internal/extract"
	"github.com/nao1215/facultyscan/internal/model"
)

// DefaultConcurrency is the number of files extracted at once.
const DefaultConcurrency = 4

// FileResult is the extraction outcome for one file.
type FileResult struct {
	// Path is the input file.
	Path string

	// Records are the records found in the file.
	Records []model.FacultyRecord

	// Err is set when the file could not be read or parsed.
	Err error
}

// BatchProcessor extracts records from several saved pages concurrently.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: Only extraction runs in parallel. Crawling stays
// sequential inside the engine; extraction is pure CPU work on pages
// that are already on disk, so nothing is shared except the read-only
// Extractor.
type BatchProcessor struct {
	// extractor is shared by all workers; Extract is safe for concurrent use.
	extractor *extract.Extractor

	// concurrency is the maximum number of concurrent extractions.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent extractions.
// Non-positive values keep the default.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(extractor *extract.Extractor, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		extractor:   extractor,
		concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessFiles extracts records from every file in paths.
// Results are returned in input order. A file that cannot be read is
// reported in its FileResult and does not stop the others; the returned
// error is only the context's.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
// Each result slot is written by exactly one goroutine, so no lock is needed.
func (bp *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) ([]FileResult, error) {
	bp.logger.Info("starting batch extraction",
		"total_files", len(paths),
		"concurrency", bp.concurrency,
	)
	startTime := time.Now()

	results := make([]FileResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			records, err := bp.processFile(path)
			results[i] = FileResult{Path: path, Records: records, Err: err}
			if err != nil {
				bp.logger.Warn("extraction failed", "file", path, "error", err)
				return nil
			}

			bp.logger.Debug("file extracted", "file", path, "records", len(records))
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Info("batch extraction complete",
		"total_files", len(paths),
		"elapsed", time.Since(startTime),
	)

	return results, err
}

func (bp *BatchProcessor) processFile(path string) ([]model.FacultyRecord, error) {
	content, err := os.ReadFile(path) //nolint:gosec // paths are given by the user
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, err := dom.ParseBytes(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return bp.extractor.Extract(doc), nil
}

// FilesStep extracts records from local HTML files through a BatchProcessor.
// The records of all files are concatenated in argument order.
type FilesStep struct {
	processor *BatchProcessor
	paths     []string
	logger    *slog.Logger
}

// NewFilesStep creates a step extracting from paths.
func NewFilesStep(processor *BatchProcessor, paths []string, logger *slog.Logger) *FilesStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &FilesStep{processor: processor, paths: paths, logger: logger}
}

// Name returns the step name.
func (s *FilesStep) Name() string {
	return "extract_files"
}

// Do runs the batch and collects the records.
// It fails only when every file failed.
func (s *FilesStep) Do(ctx context.Context, run *Run) error {
	results, err := s.processor.ProcessFiles(ctx, s.paths)
	if err != nil {
		return err
	}

	records := make([]model.FacultyRecord, 0)
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		records = append(records, r.Records...)
	}

	run.Report.Source = "files: " + strings.Join(s.paths, ", ")
	run.Report.Records = records

	if failed > 0 && failed == len(results) {
		return fmt.Errorf("no input file could be extracted (%d failed)", failed)
	}
	return nil
}
