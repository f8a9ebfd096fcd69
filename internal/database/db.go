package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	_ "github.com/lib/pq"  // PostgreSQL driver
	_ "modernc.org/sqlite" // SQLite driver
)

// DefaultFileName is the SQLite database file created in the data directory.
const DefaultFileName = "facultyscan.db"

// Default table names.
const (
	DefaultPageTable   = "pages"
	DefaultRecordTable = "professors"
)

var (
	// ErrUnsupportedDriver is returned for a driver other than sqlite or postgres.
	ErrUnsupportedDriver = errors.New("unsupported database driver")

	// ErrInvalidTableName is returned when a table name is not a plain SQL identifier.
	ErrInvalidTableName = errors.New("invalid table name")

	// ErrMissingDSN is returned when a server driver is selected without a DSN.
	ErrMissingDSN = errors.New("database DSN is required for this driver")

	// ErrPageNotFound is returned when no stored page matches a lookup.
	ErrPageNotFound = errors.New("page not found")
)

// tableNamePattern restricts table names to identifiers that are safe to
// splice into SQL text.
var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidTableName reports whether name can be used as a table name.
func ValidTableName(name string) bool {
	return tableNamePattern.MatchString(name)
}

// DB stores fetched pages and extracted faculty records.
// It implements both the page store used while crawling and the record
// store used after extraction.
//
// Design decision: Pages and records live in one database because:
//  1. A crawl and its extraction are one unit of work
//  2. Re-extraction reads pages back from the same place it writes records
//  3. One connection setting covers both stores
type DB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dialect holds the driver specific SQL.
	dialect dialect

	// dbPath is the SQLite file path; empty for server drivers.
	dbPath string

	// pageTable is the table fetched pages are appended to.
	pageTable string

	// recordTable is the table holding the current faculty records.
	recordTable string
}

// Options configures DB behavior.
type Options struct {
	// Driver selects the database: DriverSQLite (default) or DriverPostgres.
	Driver string

	// DSN is the connection string for DriverPostgres.
	DSN string

	// PageTable is the table name for fetched pages.
	PageTable string

	// RecordTable is the table name for faculty records.
	RecordTable string

	// CreateIfNotExists creates the SQLite file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for SQLite.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		Driver:            DriverSQLite,
		PageTable:         DefaultPageTable,
		RecordTable:       DefaultRecordTable,
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the database. For SQLite the file lives in dbDir;
// for PostgreSQL dbDir is ignored and opts.DSN is used.
func Open(dbDir string, opts Options) (*DB, error) {
	if opts.Driver == "" {
		opts.Driver = DriverSQLite
	}
	if opts.PageTable == "" {
		opts.PageTable = DefaultPageTable
	}
	if opts.RecordTable == "" {
		opts.RecordTable = DefaultRecordTable
	}

	d, err := lookupDialect(opts.Driver)
	if err != nil {
		return nil, err
	}
	for _, name := range []string{opts.PageTable, opts.RecordTable} {
		if !ValidTableName(name) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTableName, name)
		}
	}
	if opts.PageTable == opts.RecordTable {
		return nil, fmt.Errorf("%w: page and record tables must differ", ErrInvalidTableName)
	}

	var (
		dsn    string
		dbPath string
	)
	switch opts.Driver {
	case DriverSQLite:
		dbPath = filepath.Join(dbDir, DefaultFileName)
		dsn, err = sqliteDSN(dbDir, dbPath, opts.CreateIfNotExists)
		if err != nil {
			return nil, err
		}
	case DriverPostgres:
		if opts.DSN == "" {
			return nil, ErrMissingDSN
		}
		dsn = opts.DSN
	}

	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if opts.Driver == DriverSQLite {
		// SQLite only supports one writer
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}
	db.SetConnMaxLifetime(time.Hour)

	fdb := &DB{
		db:          db,
		dialect:     d,
		dbPath:      dbPath,
		pageTable:   opts.PageTable,
		recordTable: opts.RecordTable,
	}

	if opts.Driver == DriverSQLite && opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := fdb.createTables(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return fdb, nil
}

// sqliteDSN prepares the data directory and builds the modernc.org/sqlite
// connection string. mode=rw refuses to create a missing file.
func sqliteDSN(dbDir, dbPath string, create bool) (string, error) {
	if !create {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return "", fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return "", fmt.Errorf("failed to check database path: %w", err)
		}
		return dbPath + "?mode=rw", nil
	}

	if err := os.MkdirAll(dbDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create database directory: %w", err)
	}
	return dbPath + "?mode=rwc", nil
}

// Close closes the database connection.
func (fdb *DB) Close() error {
	return fdb.db.Close()
}

// Path returns the SQLite file path, or an empty string for server drivers.
func (fdb *DB) Path() string {
	return fdb.dbPath
}

// createTables creates the schema if it doesn't exist.
func (fdb *DB) createTables(ctx context.Context) error {
	statements := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			%s,
			url TEXT NOT NULL,
			status_code INTEGER,
			content_type TEXT,
			content %s,
			content_hash TEXT,
			fetched_at TEXT NOT NULL
		)`, fdb.pageTable, fdb.dialect.idColumn, fdb.dialect.blobType),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_url ON %s(url)`, fdb.pageTable, fdb.pageTable),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			%s,
			name TEXT NOT NULL,
			title TEXT NOT NULL,
			office TEXT NOT NULL,
			phone TEXT NOT NULL,
			email TEXT NOT NULL,
			website TEXT NOT NULL
		)`, fdb.recordTable, fdb.dialect.idColumn),
	}

	for _, stmt := range statements {
		if _, err := fdb.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// timestampFormats contains the timestamp formats that may be read back.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
