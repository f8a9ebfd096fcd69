package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nao1215/facultyscan/internal/crawler"
	"github.com/nao1215/facultyscan/internal/dom"
	"github.com/nao1215/facultyscan/internal/extract"
	"github.com/nao1215/facultyscan/internal/model"
)

// RecordStore persists the extracted record set.
// ReplaceAll must delete the previous set and insert records atomically.
type RecordStore interface {
	ReplaceAll(ctx context.Context, records []model.FacultyRecord) error
}

// PageFinder looks up a previously stored page.
type PageFinder interface {
	FindLatestPage(ctx context.Context, pattern string) (*model.Page, error)
}

// CrawlStep searches the site breadth-first for the target page.
//
// Design decision: Not finding the target is not an error. The crawl
// outcome is recorded in the report and later steps have nothing to work
// on, but the run itself succeeded.
type CrawlStep struct {
	seedURL  string
	fetcher  crawler.Fetcher
	detector *crawler.TargetDetector
	pages    crawler.PageStore
	logger   *slog.Logger
}

// CrawlStepOption configures a CrawlStep.
type CrawlStepOption func(*CrawlStep)

// WithPageStore sets where fetched pages are stored.
func WithPageStore(store crawler.PageStore) CrawlStepOption {
	return func(s *CrawlStep) {
		s.pages = store
	}
}

// WithCrawlLogger sets a custom logger for the crawl step.
func WithCrawlLogger(logger *slog.Logger) CrawlStepOption {
	return func(s *CrawlStep) {
		s.logger = logger
	}
}

// NewCrawlStep creates a crawl step starting at seedURL.
func NewCrawlStep(seedURL string, fetcher crawler.Fetcher, detector *crawler.TargetDetector, opts ...CrawlStepOption) *CrawlStep {
	s := &CrawlStep{
		seedURL:  seedURL,
		fetcher:  fetcher,
		detector: detector,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *CrawlStep) Name() string {
	return "crawl"
}

// Do runs a fresh crawl engine.
func (s *CrawlStep) Do(ctx context.Context, run *Run) error {
	engineOpts := []crawler.EngineOption{crawler.WithEngineLogger(s.logger)}
	if s.pages != nil {
		engineOpts = append(engineOpts, crawler.WithPageStore(s.pages))
	}

	engine, err := crawler.NewEngine(s.seedURL, s.fetcher, s.detector, engineOpts...)
	if err != nil {
		return err
	}

	result, err := engine.Run(ctx)
	if result != nil {
		report := run.Report
		report.CrawlState = result.State.String()
		report.Visited = result.Visited
		report.Failed = result.Failed
		report.PagesFetched = result.PagesFetched
		report.Discarded = result.Discarded
		if result.State == crawler.StateFound {
			run.Page = result.Target
			run.Document = result.Document
			report.TargetURL = result.Target.URL
			report.Source = result.Target.URL
		}
	}
	if err != nil {
		return fmt.Errorf("crawl interrupted: %w", err)
	}

	if result.State == crawler.StateExhausted {
		s.logger.Warn("target page not found", "seed", s.seedURL, "visited", len(result.Visited))
	}
	return nil
}

// LoadPageStep loads the most recent stored page whose URL contains a
// pattern, so records can be re-extracted without crawling.
type LoadPageStep struct {
	finder  PageFinder
	pattern string
	logger  *slog.Logger
}

// NewLoadPageStep creates a step loading the latest page matching pattern.
func NewLoadPageStep(finder PageFinder, pattern string, logger *slog.Logger) *LoadPageStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoadPageStep{finder: finder, pattern: pattern, logger: logger}
}

// Name returns the step name.
func (s *LoadPageStep) Name() string {
	return "load_page"
}

// Do finds and parses the stored page.
func (s *LoadPageStep) Do(ctx context.Context, run *Run) error {
	page, err := s.finder.FindLatestPage(ctx, s.pattern)
	if err != nil {
		return fmt.Errorf("failed to load stored page: %w", err)
	}

	doc, err := dom.ParseBytes(page.Content)
	if err != nil {
		return fmt.Errorf("failed to parse stored page %s: %w", page.URL, err)
	}

	s.logger.Info("loaded stored page", "url", page.URL, "fetched_at", page.FetchedAt)
	run.Page = page
	run.Document = doc
	run.Report.TargetURL = page.URL
	run.Report.Source = "store: " + page.URL
	return nil
}

// ExtractStep turns the target document into faculty records.
type ExtractStep struct {
	extractor *extract.Extractor
	logger    *slog.Logger
}

// NewExtractStep creates an extraction step.
func NewExtractStep(extractor *extract.Extractor, logger *slog.Logger) *ExtractStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractStep{extractor: extractor, logger: logger}
}

// Name returns the step name.
func (s *ExtractStep) Name() string {
	return "extract"
}

// Do extracts records when a document is available.
func (s *ExtractStep) Do(_ context.Context, run *Run) error {
	if run.Document == nil {
		s.logger.Debug("no target document; skipping extraction")
		return nil
	}

	run.Report.Records = s.extractor.Extract(run.Document)
	s.logger.Info("records extracted", "count", len(run.Report.Records))
	return nil
}

// ErrNilRecordStore is returned by StoreStep when constructed without a store.
var ErrNilRecordStore = errors.New("record store is nil")

// StoreStep replaces the stored record set with the extracted records.
//
// Design decision: An empty extraction does not clear the store. A page
// whose layout changed yields zero records, and wiping a good record set
// because of it is worse than keeping slightly stale data.
type StoreStep struct {
	store  RecordStore
	logger *slog.Logger
}

// NewStoreStep creates a record persistence step.
func NewStoreStep(store RecordStore, logger *slog.Logger) *StoreStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &StoreStep{store: store, logger: logger}
}

// Name returns the step name.
func (s *StoreStep) Name() string {
	return "store"
}

// Do persists the records with replace-all semantics.
func (s *StoreStep) Do(ctx context.Context, run *Run) error {
	if s.store == nil {
		return ErrNilRecordStore
	}

	records := run.Report.Records
	if len(records) == 0 {
		s.logger.Warn("no faculty data to store; keeping existing records")
		return nil
	}

	if err := s.store.ReplaceAll(ctx, records); err != nil {
		return fmt.Errorf("failed to store records: %w", err)
	}

	run.Report.Stored = true
	s.logger.Info("records stored", "count", len(records))
	return nil
}
