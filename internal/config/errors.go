package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Validate wraps them with the offending value
// where one exists.
var (
	// ErrNoSeedURL is returned when the seed URL is empty.
	ErrNoSeedURL = errors.New("no seed URL specified")

	// ErrInvalidSeedURL is returned when the seed URL is not an absolute
	// http or https URL.
	ErrInvalidSeedURL = errors.New("invalid seed URL: must be an absolute http or https URL")

	// ErrNoTargetMarker is returned when the heading marker class is empty.
	ErrNoTargetMarker = errors.New("no target marker specified")

	// ErrNoTargetPhrase is returned when the target phrase is empty.
	// An empty phrase would match the first marked heading of any page.
	ErrNoTargetPhrase = errors.New("no target phrase specified")

	// ErrInvalidBlockSelector is returned when the block selector is not valid CSS.
	ErrInvalidBlockSelector = errors.New("invalid block selector")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// A negative body size is invalid; use 0 to use the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidStoreName is returned when a table name is not a plain
	// SQL identifier or both tables share a name.
	ErrInvalidStoreName = errors.New("invalid store name: must match [A-Za-z_][A-Za-z0-9_]* and tables must differ")

	// ErrUnsupportedDriver is returned for a database driver other than
	// sqlite or postgres.
	ErrUnsupportedDriver = errors.New("unsupported database driver: must be sqlite or postgres")

	// ErrMissingDSN is returned when the postgres driver is chosen without a DSN.
	ErrMissingDSN = errors.New("missing DSN: the postgres driver needs --dsn")

	// ErrInvalidConcurrency is returned when the extract concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")
)
