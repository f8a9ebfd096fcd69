package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nao1215/facultyscan/internal/model"
)

// StorePage appends a fetched page. Pages are never updated or removed;
// fetching the same URL twice stores two rows.
func (fdb *DB) StorePage(ctx context.Context, page *model.Page) error {
	if page == nil {
		return errors.New("page is nil")
	}

	fetchedAt := page.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}

	query := fdb.dialect.rebind(fmt.Sprintf(`
	INSERT INTO %s (url, status_code, content_type, content, content_hash, fetched_at)
	VALUES (?, ?, ?, ?, ?, ?)
	`, fdb.pageTable))

	_, err := fdb.db.ExecContext(ctx, query,
		page.URL,
		page.StatusCode,
		page.ContentType,
		page.Content,
		page.Hash,
		fetchedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to store page %s: %w", page.URL, err)
	}

	return nil
}

// FindLatestPage returns the most recently stored page whose URL contains
// pattern. It returns ErrPageNotFound when nothing matches.
func (fdb *DB) FindLatestPage(ctx context.Context, pattern string) (*model.Page, error) {
	query := fdb.dialect.rebind(fmt.Sprintf(`
	SELECT url, status_code, content_type, content, content_hash, fetched_at
	FROM %s
	WHERE %s
	ORDER BY id DESC
	LIMIT 1
	`, fdb.pageTable, fdb.dialect.containsFunc("url")))

	var (
		page        model.Page
		statusCode  sql.NullInt64
		contentType sql.NullString
		hash        sql.NullString
		fetchedAt   string
	)
	err := fdb.db.QueryRowContext(ctx, query, pattern).Scan(
		&page.URL,
		&statusCode,
		&contentType,
		&page.Content,
		&hash,
		&fetchedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no stored URL contains %q", ErrPageNotFound, pattern)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find page: %w", err)
	}

	page.StatusCode = int(statusCode.Int64)
	page.ContentType = contentType.String
	page.Hash = hash.String
	page.FetchedAt = parseTimestamp(fetchedAt)

	return &page, nil
}

// CountPages returns the number of stored pages.
func (fdb *DB) CountPages(ctx context.Context) (int, error) {
	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", fdb.pageTable)
	if err := fdb.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pages: %w", err)
	}
	return count, nil
}
