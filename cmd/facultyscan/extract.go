package main

import (
	"fmt"

	"github.com/nao1215/facultyscan/internal/config"
	"github.com/nao1215/facultyscan/internal/database"
	"github.com/nao1215/facultyscan/internal/pipeline"
	"github.com/nao1215/facultyscan/internal/report"
	"github.com/spf13/cobra"
)

// NewExtractCmd creates the extract command.
func NewExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [html-file...]",
		Short: "Extract faculty records without crawling",
		Long: `Extract runs record extraction again without touching the network.

Without arguments, the most recent stored page whose URL contains the
page pattern is used. With arguments, the given HTML files are extracted
in parallel and their records are concatenated in argument order.

The records replace the stored record set unless --dry-run is given.

Examples:
  # Re-extract the last crawled faculty page
  facultyscan extract

  # Extract from saved pages and only print the result
  facultyscan extract --dry-run faculty-2024.html faculty-2025.html`,
		Args: cobra.ArbitraryArgs,
		RunE: runExtractCmd,
	}

	addConfigFlag(cmd)
	addBlockFlag(cmd)
	cmd.Flags().String("pattern", config.DefaultPagePattern,
		"Substring of the stored page URL to extract from")
	cmd.Flags().IntP("concurrency", "n", config.DefaultExtractConcurrency,
		"Number of HTML files extracted in parallel")
	cmd.Flags().Bool("dry-run", false,
		"Extract and report without storing the records")
	addStorageFlags(cmd)
	addReportFlags(cmd)

	return cmd
}

// runExtractCmd executes the extract command.
func runExtractCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}

	logger := setupLogger(cmd, cfg)
	ctx, cancel := signalContext(cmd.Context(), logger)
	defer cancel()

	extractor, err := newExtractor(cfg, logger)
	if err != nil {
		return err
	}

	// Files with --dry-run is the only mode that needs no database.
	var db *database.DB
	if len(args) == 0 || !dryRun {
		db, err = openDatabase(cfg, logger)
		if err != nil {
			return err
		}
		defer db.Close()
	}

	p := pipeline.New(nil, pipeline.WithLogger(logger))
	if len(args) > 0 {
		bp := pipeline.NewBatchProcessor(extractor,
			pipeline.WithConcurrency(cfg.ExtractConcurrency),
			pipeline.WithBatchLogger(logger),
		)
		p.AddStep(pipeline.NewFilesStep(bp, args, logger))
	} else {
		p.AddStep(pipeline.NewLoadPageStep(db, cfg.PagePattern, logger))
		p.AddStep(pipeline.NewExtractStep(extractor, logger))
	}
	if !dryRun {
		p.AddStep(pipeline.NewStoreStep(db, logger))
	}

	run := pipeline.NewRun("")
	runErr := p.Execute(ctx, run)

	if err := writeReport(cmd, cfg, func(w report.Writer) error {
		_, err := w.Write(run.Report)
		return err
	}); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return runErr
}
