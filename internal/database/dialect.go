package database

import (
	"fmt"
	"strconv"
	"strings"
)

// Supported drivers.
const (
	// DriverSQLite stores everything in a single file under the data directory.
	DriverSQLite = "sqlite"

	// DriverPostgres connects to a PostgreSQL server through a DSN.
	DriverPostgres = "postgres"
)

// dialect holds the SQL differences between the supported drivers.
// Queries are written with '?' placeholders and rebound per dialect.
type dialect struct {
	// driver is the database/sql driver name.
	driver string

	// idColumn is the auto-increment primary key definition.
	idColumn string

	// blobType is the column type for raw page bytes.
	blobType string

	// numbered reports whether placeholders are $1, $2, ...
	numbered bool

	// containsFunc builds an expression true when column contains the
	// bound argument as a plain substring.
	containsFunc func(column string) string
}

var dialects = map[string]dialect{
	DriverSQLite: {
		driver:   "sqlite",
		idColumn: "id INTEGER PRIMARY KEY AUTOINCREMENT",
		blobType: "BLOB",
		containsFunc: func(column string) string {
			return "instr(" + column + ", ?) > 0"
		},
	},
	DriverPostgres: {
		driver:   "postgres",
		idColumn: "id BIGSERIAL PRIMARY KEY",
		blobType: "BYTEA",
		numbered: true,
		containsFunc: func(column string) string {
			return "strpos(" + column + ", ?) > 0"
		},
	},
}

// lookupDialect returns the dialect for a driver name.
func lookupDialect(driver string) (dialect, error) {
	d, ok := dialects[driver]
	if !ok {
		return dialect{}, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
	return d, nil
}

// rebind rewrites '?' placeholders for dialects that number them.
func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}

	var sb strings.Builder
	sb.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r != '?' {
			sb.WriteRune(r)
			continue
		}
		n++
		sb.WriteByte('$')
		sb.WriteString(strconv.Itoa(n))
	}
	return sb.String()
}
