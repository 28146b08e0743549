// Package storage captures expense records in a local SQLite database
// before they reach the spreadsheet, so a sheet outage never loses a
// dictation. A sync worker drains the pending rows later.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gagyebu/internal/core"
	ports "gagyebu/internal/sheets"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a record id has no row.
var ErrNotFound = errors.New("record not found")

type SQLiteRepository struct {
	db *sql.DB
}

// Ensure interface conformance
var (
	_ ports.RecordWriter  = (*SQLiteRepository)(nil)
	_ ports.RecordLister  = (*SQLiteRepository)(nil)
	_ ports.StatusChecker = (*SQLiteRepository)(nil)
)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const recordColumns = "id, date, store, category, item, unit_price, quantity, amount, payment, memo, source"

// Append stores records as unsynced rows inside one transaction.
func (r *SQLiteRepository) Append(ctx context.Context, records []core.ExpenseRecord) (ports.AppendResult, error) {
	if len(records) == 0 {
		return ports.AppendResult{}, nil
	}
	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			return ports.AppendResult{}, fmt.Errorf("record %s: %w", rec.ID, err)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return ports.AppendResult{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO expense_records (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return ports.AppendResult{}, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx,
			rec.ID, rec.Date, rec.Store, rec.Category, rec.Item,
			rec.UnitPrice, rec.Quantity, rec.Amount, rec.Payment, rec.Memo, rec.Source,
		); err != nil {
			return ports.AppendResult{}, fmt.Errorf("insert record %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return ports.AppendResult{}, fmt.Errorf("commit: %w", err)
	}

	slog.InfoContext(ctx, "records captured", "count", len(records))
	return ports.AppendResult{UpdatedRows: int64(len(records))}, nil
}

// List returns every captured record in insertion order.
func (r *SQLiteRepository) List(ctx context.Context) ([]core.ExpenseRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM expense_records
		ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// Get returns one record by id.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (core.ExpenseRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM expense_records
		WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.ExpenseRecord{}, fmt.Errorf("record %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("get record %s: %w", id, err)
	}
	return rec, nil
}

// PendingSync returns up to limit records not yet pushed to the sheet,
// oldest first.
func (r *SQLiteRepository) PendingSync(ctx context.Context, limit int) ([]core.ExpenseRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM expense_records
		WHERE synced = 0
		ORDER BY created_at, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending records: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// PendingCount reports how many records still await sync.
func (r *SQLiteRepository) PendingCount(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM expense_records WHERE synced = 0`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count pending records: %w", err)
	}
	return n, nil
}

// MarkSynced flags records as delivered to the sheet.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`UPDATE expense_records SET synced = 1 WHERE id = ?`)
	if err != nil {
		return fmt.Errorf("prepare update: %w", err)
	}
	defer stmt.Close()

	for _, id := range ids {
		if _, err := stmt.ExecContext(ctx, id); err != nil {
			return fmt.Errorf("mark synced %s: %w", id, err)
		}
	}
	return tx.Commit()
}

// MarkSyncError bumps the failure counter so a poisoned record can be
// spotted instead of retrying forever unnoticed.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE expense_records
		SET sync_error_count = sync_error_count + 1
		WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark sync error %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) CheckStatus(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (core.ExpenseRecord, error) {
	var rec core.ExpenseRecord
	err := row.Scan(
		&rec.ID, &rec.Date, &rec.Store, &rec.Category, &rec.Item,
		&rec.UnitPrice, &rec.Quantity, &rec.Amount, &rec.Payment, &rec.Memo, &rec.Source,
	)
	return rec, err
}

func scanRecords(rows *sql.Rows) ([]core.ExpenseRecord, error) {
	var out []core.ExpenseRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return out, nil
}
