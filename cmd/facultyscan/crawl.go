package main

import (
	"fmt"

	"github.com/nao1215/facultyscan/internal/crawler"
	"github.com/nao1215/facultyscan/internal/pipeline"
	"github.com/nao1215/facultyscan/internal/report"
	"github.com/spf13/cobra"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl [seed-url]",
		Short: "Find the faculty page, extract its records and store them",
		Long: `Crawl visits the site breadth-first from the seed URL, following only
links that end in .html or .shtml, until it reaches the page whose marked
h1 contains the target phrase. Every fetched page is stored.

The faculty records on that page then replace the stored record set.
If the crawl runs out of pages, or the page yields no records, the stored
records are left untouched.

Examples:
  # Crawl the default site
  facultyscan crawl

  # Crawl another department
  facultyscan crawl https://www.example.edu/math/ --phrase "Faculty Directory"

  # Store into PostgreSQL and write a Markdown report
  facultyscan crawl --db-driver postgres --dsn "postgres://localhost/faculty" -m -o report.md`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCrawlCmd,
	}

	addConfigFlag(cmd)
	addTargetFlags(cmd)
	addHTTPFlags(cmd)
	addStorageFlags(cmd)
	addReportFlags(cmd)

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.SeedURL = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd, cfg)
	ctx, cancel := signalContext(cmd.Context(), logger)
	defer cancel()

	extractor, err := newExtractor(cfg, logger)
	if err != nil {
		return err
	}

	db, err := openDatabase(cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	p := pipeline.New([]pipeline.Step{
		pipeline.NewCrawlStep(
			cfg.SeedURL,
			newFetcher(cfg),
			crawler.NewTargetDetector(cfg.TargetMarker, cfg.TargetPhrase),
			pipeline.WithPageStore(db),
			pipeline.WithCrawlLogger(logger),
		),
		pipeline.NewExtractStep(extractor, logger),
		pipeline.NewStoreStep(db, logger),
	}, pipeline.WithLogger(logger))

	logger.Info("starting crawl",
		"seed", cfg.SeedURL,
		"marker", cfg.TargetMarker,
		"phrase", cfg.TargetPhrase,
	)

	run := pipeline.NewRun(cfg.SeedURL)
	runErr := p.Execute(ctx, run)

	// The report is written even for a failed run; it shows how far it got.
	if err := writeReport(cmd, cfg, func(w report.Writer) error {
		_, err := w.Write(run.Report)
		return err
	}); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return runErr
}
