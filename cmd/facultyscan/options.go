package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/nao1215/facultyscan/internal/config"
	"github.com/nao1215/facultyscan/internal/crawler"
	"github.com/nao1215/facultyscan/internal/database"
	"github.com/nao1215/facultyscan/internal/extract"
	flog "github.com/nao1215/facultyscan/internal/log"
	"github.com/nao1215/facultyscan/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// addConfigFlag adds the --config flag.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .facultyscan in current or home directory)")
}

// addTargetFlags adds the flags describing how the faculty page is recognized
// and how records are extracted from it.
func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().String("marker", config.DefaultTargetMarker,
		"Class carried by the h1 of the target page")
	cmd.Flags().String("phrase", config.DefaultTargetPhrase,
		"Text the marked h1 must contain (case-sensitive)")
	addBlockFlag(cmd)
}

// addBlockFlag adds the --block flag.
func addBlockFlag(cmd *cobra.Command) {
	cmd.Flags().String("block", config.DefaultBlockSelector,
		"CSS selector of one faculty block")
}

// addHTTPFlags adds the fetcher flags.
func addHTTPFlags(cmd *cobra.Command) {
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each HTTP request")
	cmd.Flags().Int64("max-body", config.DefaultMaxBodySize,
		"Maximum response body size in bytes")
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"User-Agent header sent with every request")
}

// addStorageFlags adds the database flags.
func addStorageFlags(cmd *cobra.Command) {
	cmd.Flags().String("db-driver", config.DefaultDBDriver,
		"Database driver: sqlite or postgres")
	cmd.Flags().String("db-dir", "",
		"Directory of the SQLite database (default: XDG data directory)")
	cmd.Flags().String("dsn", "",
		"PostgreSQL connection string (required with --db-driver postgres)")
	cmd.Flags().String("page-table", config.DefaultPageTable,
		"Table fetched pages are appended to")
	cmd.Flags().String("record-table", config.DefaultRecordTable,
		"Table holding the faculty records")
}

// addReportFlags adds the report output flags.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// getLogJSONFlag retrieves the log-json flag from the command or its parent.
func getLogJSONFlag(cmd *cobra.Command) bool {
	jsonLog, err := cmd.Flags().GetBool("log-json")
	if err != nil {
		jsonLog, err = cmd.Root().PersistentFlags().GetBool("log-json")
		if err != nil {
			return false
		}
	}
	return jsonLog
}

// buildConfig creates a Config from defaults, the config file and the
// flags the user set, in that order of increasing precedence.
//
// Design decision: Only flags marked Changed override the file. Reading
// every flag would silently replace file values with flag defaults.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	if flags.Lookup("config") != nil {
		path, err := flags.GetString("config")
		if err != nil {
			return nil, err
		}
		cfg.ConfigFilePath = path
	}

	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use defaults if no file found.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if err := applyFlags(flags, cfg); err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)
	cfg.JSONLog = getLogJSONFlag(cmd)

	return cfg, nil
}

// applyFlags copies every changed flag onto cfg.
// Flags the command does not define are never Changed and are skipped.
func applyFlags(flags *pflag.FlagSet, cfg *config.Config) error {
	stringFlags := map[string]*string{
		"marker":       &cfg.TargetMarker,
		"phrase":       &cfg.TargetPhrase,
		"block":        &cfg.BlockSelector,
		"pattern":      &cfg.PagePattern,
		"user-agent":   &cfg.UserAgent,
		"db-driver":    &cfg.DBDriver,
		"db-dir":       &cfg.DBDir,
		"dsn":          &cfg.DSN,
		"page-table":   &cfg.PageTable,
		"record-table": &cfg.RecordTable,
		"output":       &cfg.ReportFile,
	}
	for name, dst := range stringFlags {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	boolFlags := map[string]*bool{
		"json":     &cfg.JSONReport,
		"markdown": &cfg.MarkdownReport,
	}
	for name, dst := range boolFlags {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetBool(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	if flags.Changed("timeout") {
		v, err := flags.GetDuration("timeout")
		if err != nil {
			return err
		}
		cfg.Timeout = v
	}
	if flags.Changed("max-body") {
		v, err := flags.GetInt64("max-body")
		if err != nil {
			return err
		}
		cfg.MaxBodySize = v
	}
	if flags.Changed("concurrency") {
		v, err := flags.GetInt("concurrency")
		if err != nil {
			return err
		}
		cfg.ExtractConcurrency = v
	}

	return nil
}

// setupLogger creates the redacting structured logger for cfg and makes it
// the default logger.
func setupLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	logger := flog.NewLogger(cmd.ErrOrStderr(), flog.Options{
		Verbose: cfg.Verbose,
		JSON:    cfg.JSONLog,
	})
	slog.SetDefault(logger)
	return logger
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context, logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigCh)
		select {
		case <-sigCh:
			logger.Warn("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// openDatabase opens the page and record store described by cfg.
func openDatabase(cfg *config.Config, logger *slog.Logger) (*database.DB, error) {
	db, err := database.Open(cfg.DBDir, cfg.DatabaseOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	logger.Info("database opened", "driver", cfg.DBDriver, "path", db.Path(), "dsn", cfg.DSN)
	return db, nil
}

// newFetcher creates the HTTP fetcher described by cfg.
func newFetcher(cfg *config.Config) *crawler.HTTPFetcher {
	return crawler.NewHTTPFetcher(
		crawler.WithTimeout(cfg.Timeout),
		crawler.WithUserAgent(cfg.UserAgent),
		crawler.WithHeaders(cfg.Headers),
		crawler.WithMaxBodySize(cfg.MaxBodySize),
	)
}

// newExtractor creates the record extractor described by cfg.
func newExtractor(cfg *config.Config, logger *slog.Logger) (*extract.Extractor, error) {
	extractor, err := extract.New(
		extract.WithBlockSelector(cfg.BlockSelector),
		extract.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create extractor: %w", err)
	}
	return extractor, nil
}

// writeReport opens the report destination and passes the writer for the
// configured format to write.
//
// When the report goes to a file, a plain-text copy is also written to
// stdout so the user still sees the outcome.
func writeReport(cmd *cobra.Command, cfg *config.Config, write func(report.Writer) error) (err error) {
	stdout := cmd.OutOrStdout()

	if cfg.ReportFile == "" {
		return write(newReportWriter(cfg, stdout))
	}

	// Create directories if they don't exist
	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	return write(report.NewMultiWriter(
		newReportWriter(cfg, f),
		report.NewSimpleWriter(stdout),
	))
}

// newReportWriter returns the writer for the report format selected in cfg.
func newReportWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
}
