package database

import (
	"context"
	"fmt"

	"github.com/nao1215/facultyscan/internal/model"
)

// ReplaceAll swaps the stored record set for records in one transaction.
// Readers see either the old set or the new one, never a mix. An empty
// slice leaves the table empty.
func (fdb *DB) ReplaceAll(ctx context.Context, records []model.FacultyRecord) (err error) {
	tx, err := fdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", fdb.recordTable)); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, fdb.dialect.rebind(fmt.Sprintf(`
	INSERT INTO %s (name, title, office, phone, email, website)
	VALUES (?, ?, ?, ?, ?, ?)
	`, fdb.recordTable)))
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err = stmt.ExecContext(ctx, r.Name, r.Title, r.Office, r.Phone, r.Email, r.Website); err != nil {
			return fmt.Errorf("failed to insert record %q: %w", r.Name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit records: %w", err)
	}
	return nil
}

// ListRecords returns the stored records in insertion order.
func (fdb *DB) ListRecords(ctx context.Context) ([]model.FacultyRecord, error) {
	query := fmt.Sprintf(`
	SELECT name, title, office, phone, email, website
	FROM %s
	ORDER BY id
	`, fdb.recordTable)

	rows, err := fdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	records := make([]model.FacultyRecord, 0)
	for rows.Next() {
		var r model.FacultyRecord
		if err := rows.Scan(&r.Name, &r.Title, &r.Office, &r.Phone, &r.Email, &r.Website); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, r)
	}

	return records, rows.Err()
}
