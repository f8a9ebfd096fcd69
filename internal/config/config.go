package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/andybalholm/cascadia"

	"github.com/nao1215/facultyscan/internal/database"
)

// Default configuration values.
// These match the Computer Science department site the tool was written
// for; every one of them can be overridden by flag or config file.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "facultyscan"

	// DefaultSeedURL is where the crawl starts when no URL is given.
	DefaultSeedURL = "https://www.cpp.edu/sci/computer-science/"

	// DefaultTargetMarker is the class carried by the page heading.
	DefaultTargetMarker = "cpp-h1"

	// DefaultTargetPhrase is the text the heading of the faculty page contains.
	// The match is case-sensitive.
	DefaultTargetPhrase = "Permanent Faculty"

	// DefaultBlockSelector selects one faculty member's block.
	DefaultBlockSelector = "div.clearfix"

	// DefaultPagePattern finds the faculty page among stored pages when
	// extracting without a crawl.
	DefaultPagePattern = "permanent-faculty"

	// DefaultTimeout bounds each HTTP request. A page that takes longer is
	// treated as unavailable.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies facultyscan in HTTP requests.
	DefaultUserAgent = "facultyscan/1.0 (+https://github.com/nao1215/facultyscan)"

	// DefaultMaxBodySize limits the maximum response body size to read.
	// 5MB is sufficient for most HTML pages while preventing memory exhaustion
	// from unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultDBDriver is the database used when none is configured.
	DefaultDBDriver = "sqlite"

	// DefaultPageTable is the table fetched pages are appended to.
	DefaultPageTable = "pages"

	// DefaultRecordTable is the table holding faculty records.
	DefaultRecordTable = "professors"

	// DefaultExtractConcurrency is the number of HTML files extracted at once
	// by the extract command.
	DefaultExtractConcurrency = 4
)

// Config holds all configuration options for facultyscan.
// It is populated from defaults, then the config file, then CLI flags,
// and passed through the application rather than kept in global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The YAML file is nested (see File) because that reads
// better for users; File.Apply flattens it.
type Config struct {
	// SeedURL is the absolute http(s) URL the crawl starts from.
	SeedURL string

	// TargetMarker is the class the target h1 must carry.
	TargetMarker string

	// TargetPhrase must occur in the marked heading's text.
	TargetPhrase string

	// BlockSelector is the CSS selector of one faculty block.
	BlockSelector string

	// PagePattern selects the stored page used by extraction without a crawl.
	PagePattern string

	// Timeout is the timeout for each HTTP request.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// Headers are extra HTTP request headers.
	Headers map[string]string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Set to 0 to use the default (5MB).
	MaxBodySize int64

	// DBDriver selects the database: "sqlite" or "postgres".
	DBDriver string

	// DBDir is the directory holding the SQLite database file.
	// Defaults to XDG data directory (~/.local/share/facultyscan on Linux).
	DBDir string

	// DSN is the PostgreSQL connection string. Required for "postgres".
	DSN string

	// PageTable is the table name for fetched pages.
	PageTable string

	// RecordTable is the table name for faculty records.
	RecordTable string

	// ExtractConcurrency is the number of files extracted in parallel.
	ExtractConcurrency int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONLog switches log output to JSON lines.
	JSONLog bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .facultyscan in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// JSONReport enables JSON report output instead of human-readable format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of human-readable format.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because most defaults are non-zero (e.g., timeout, marker).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		SeedURL:            DefaultSeedURL,
		TargetMarker:       DefaultTargetMarker,
		TargetPhrase:       DefaultTargetPhrase,
		BlockSelector:      DefaultBlockSelector,
		PagePattern:        DefaultPagePattern,
		Timeout:            DefaultTimeout,
		UserAgent:          DefaultUserAgent,
		Headers:            make(map[string]string),
		MaxBodySize:        DefaultMaxBodySize,
		DBDriver:           DefaultDBDriver,
		DBDir:              XDGDataDir(),
		PageTable:          DefaultPageTable,
		RecordTable:        DefaultRecordTable,
		ExtractConcurrency: DefaultExtractConcurrency,
	}
}

// XDGDataDir returns the XDG data directory for facultyscan.
// On Linux: ~/.local/share/facultyscan
// On macOS: ~/Library/Application Support/facultyscan
// On Windows: %LOCALAPPDATA%\facultyscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for facultyscan.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any crawling begins.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if c.SeedURL == "" {
		return ErrNoSeedURL
	}
	if err := validateSeedURL(c.SeedURL); err != nil {
		return err
	}

	if c.TargetMarker == "" {
		return ErrNoTargetMarker
	}
	if c.TargetPhrase == "" {
		return ErrNoTargetPhrase
	}

	if _, err := cascadia.Compile(c.BlockSelector); err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidBlockSelector, c.BlockSelector, err)
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if !database.ValidTableName(c.PageTable) || !database.ValidTableName(c.RecordTable) ||
		c.PageTable == c.RecordTable {
		return fmt.Errorf("%w: %q, %q", ErrInvalidStoreName, c.PageTable, c.RecordTable)
	}

	switch c.DBDriver {
	case database.DriverSQLite:
	case database.DriverPostgres:
		if c.DSN == "" {
			return ErrMissingDSN
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedDriver, c.DBDriver)
	}

	if c.ExtractConcurrency <= 0 {
		return ErrInvalidConcurrency
	}

	return nil
}

// validateSeedURL checks that seed is an absolute http(s) URL with a host.
func validateSeedURL(seed string) error {
	u, err := url.Parse(seed)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSeedURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidSeedURL, seed)
	}
	return nil
}

// DatabaseOptions converts the storage settings into database options.
func (c *Config) DatabaseOptions() database.Options {
	opts := database.DefaultOptions()
	opts.Driver = c.DBDriver
	opts.DSN = c.DSN
	opts.PageTable = c.PageTable
	opts.RecordTable = c.RecordTable
	return opts
}
