// Package database provides SQL storage for fetched pages and faculty
// records.
//
// The DB type implements two stores:
//   - the page store: every fetched page is appended with its content,
//     status, content type, hash and fetch time
//   - the record store: the current faculty record set, replaced as a
//     whole in one transaction
//
// Design decision: We use SQLite (via modernc.org/sqlite) by default because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. WAL mode lets the records command read while a crawl writes
//
// PostgreSQL (via github.com/lib/pq) is available for deployments that
// already keep the faculty directory in a shared server. Table names are
// configurable and restricted to plain identifiers.
package database
