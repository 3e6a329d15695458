// Package storage implements the durable transaction store on SQLite.
// Timestamps are kept as unix nanoseconds in UTC so ordering and period
// windows compare exactly regardless of driver time formatting.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
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

	return &SQLiteRepository{db: db, now: time.Now}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Add persists one immutable transaction and returns it with the assigned
// id and creation time. Validation failures surface as core errors before
// anything touches the database, so a row is either complete or absent.
func (r *SQLiteRepository) Add(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	t.CreatedAt = r.now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (user_id, kind, category, amount_cents, created_at, description)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.UserID, string(t.Kind), t.Category, t.Amount.Cents, t.CreatedAt.UnixNano(), t.Description)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("last insert id: %w", err)
	}
	t.ID = id

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID,
		"user_id", t.UserID,
		"kind", t.Kind,
		"category", t.Category,
		"amount_cents", t.Amount.Cents)

	return t, nil
}

// SumByCategory returns category sums for one kind inside the window.
// The map is empty when nothing matches.
func (r *SQLiteRepository) SumByCategory(ctx context.Context, userID int64, kind core.Kind, w core.Window) (map[string]core.Money, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, SUM(amount_cents)
		 FROM transactions
		 WHERE user_id = ? AND kind = ? AND created_at >= ? AND created_at < ?
		 GROUP BY category`,
		userID, string(kind), w.Start.UnixNano(), w.End.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("sum by category: %w", err)
	}
	defer rows.Close()

	sums := make(map[string]core.Money)
	for rows.Next() {
		var category string
		var cents int64
		if err := rows.Scan(&category, &cents); err != nil {
			return nil, fmt.Errorf("scan category sum: %w", err)
		}
		sums[category] = core.Money{Cents: cents}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category sums: %w", err)
	}
	return sums, nil
}

// Totals returns the expense and income totals inside the window. It uses
// the same window bounds as SumByCategory so the two can never disagree.
func (r *SQLiteRepository) Totals(ctx context.Context, userID int64, w core.Window) (expense, income core.Money, err error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT
		     COALESCE(SUM(CASE WHEN kind = 'expense' THEN amount_cents ELSE 0 END), 0),
		     COALESCE(SUM(CASE WHEN kind = 'income' THEN amount_cents ELSE 0 END), 0)
		 FROM transactions
		 WHERE user_id = ? AND created_at >= ? AND created_at < ?`,
		userID, w.Start.UnixNano(), w.End.UnixNano())

	if err := row.Scan(&expense.Cents, &income.Cents); err != nil {
		return core.Money{}, core.Money{}, fmt.Errorf("scan totals: %w", err)
	}
	return expense, income, nil
}

// Recent returns up to limit transactions for the user, newest first.
func (r *SQLiteRepository) Recent(ctx context.Context, userID int64, limit int) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, kind, category, amount_cents, created_at, description
		 FROM transactions
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// Get retrieves one transaction by id; used by the export worker.
func (r *SQLiteRepository) Get(ctx context.Context, id int64) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, kind, category, amount_cents, created_at, description
		 FROM transactions
		 WHERE id = ?`,
		id)

	t, err := scanTransaction(row)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction %d: %w", id, err)
	}
	return t, nil
}

// ListUnexported returns transactions the export worker has not yet pushed
// to the external ledger, oldest first.
func (r *SQLiteRepository) ListUnexported(ctx context.Context, limit int) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, kind, category, amount_cents, created_at, description
		 FROM transactions
		 WHERE exported_at IS NULL
		 ORDER BY created_at ASC, id ASC
		 LIMIT ?`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("query unexported transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// MarkExported records a successful export.
func (r *SQLiteRepository) MarkExported(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET exported_at = ?, export_error = 0 WHERE id = ?`,
		r.now().UTC().UnixNano(), id)
	if err != nil {
		return fmt.Errorf("mark transaction exported: %w", err)
	}
	return nil
}

// MarkExportError flags a transaction whose export failed so the sweep can
// retry it later.
func (r *SQLiteRepository) MarkExportError(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET export_error = export_error + 1 WHERE id = ?`,
		id)
	if err != nil {
		return fmt.Errorf("mark transaction export error: %w", err)
	}
	slog.WarnContext(ctx, "Transaction marked with export error", "id", id)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		t     core.Transaction
		kind  string
		cents int64
		nanos int64
	)
	if err := row.Scan(&t.ID, &t.UserID, &kind, &t.Category, &cents, &nanos, &t.Description); err != nil {
		return core.Transaction{}, err
	}
	t.Kind = core.Kind(kind)
	t.Amount = core.Money{Cents: cents}
	t.CreatedAt = time.Unix(0, nanos).UTC()
	return t, nil
}

func scanTransactions(rows *sql.Rows) ([]core.Transaction, error) {
	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}
