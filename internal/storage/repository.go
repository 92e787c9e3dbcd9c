// Package storage provides a SQLite-backed transaction repository. It is
// used as a local write-behind buffer: writes land here first and a worker
// replays them into the spreadsheet.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/ledger"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

var (
	_ ledger.TransactionAppender = (*SQLiteRepository)(nil)
	_ ledger.TransactionLister   = (*SQLiteRepository)(nil)
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

const insertTransaction = `
INSERT INTO transactions (date, name, type, category, amount_cents, description)
VALUES (?, ?, ?, ?, ?, ?)
`

// Append stores a transaction with sync_status pending and returns its row
// id. The transaction is validated before any write.
func (r *SQLiteRepository) Append(ctx context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}

	res, err := r.db.ExecContext(ctx, insertTransaction,
		tx.Date, tx.Name, string(tx.Type), tx.Category, tx.Amount.Cents, tx.Description)
	if err != nil {
		return "", fmt.Errorf("insert transaction: %w: %w", ledger.ErrStorageUnavailable, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", id,
		"date", tx.Date,
		"type", tx.Type,
		"amount_cents", tx.Amount.Cents)

	return strconv.FormatInt(id, 10), nil
}

const selectMonth = `
SELECT date, name, type, category, amount_cents, description
FROM transactions
WHERE date >= ? AND date < ?
ORDER BY date, id
`

// ListMonth returns the transactions of one calendar month in insertion
// order, with ids assigned by position as the spreadsheet backend does.
func (r *SQLiteRepository) ListMonth(ctx context.Context, p core.Period) ([]core.Transaction, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	start := p.Start().Format(core.DateLayout)
	end := p.End().Format(core.DateLayout)

	rows, err := r.db.QueryContext(ctx, selectMonth, start, end)
	if err != nil {
		return nil, fmt.Errorf("query month: %w: %w", ledger.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		var tx core.Transaction
		var txType string
		if err := rows.Scan(&tx.Date, &tx.Name, &txType, &tx.Category, &tx.Amount.Cents, &tx.Description); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Type = core.TransactionType(txType)
		tx.ID = len(txs) + 1
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return txs, nil
}

// PendingTransaction is a stored transaction waiting to be replayed into
// the spreadsheet.
type PendingTransaction struct {
	ID        int64
	Tx        core.Transaction
	Attempts  int
	CreatedAt time.Time
}

const selectPending = `
SELECT id, date, name, type, category, amount_cents, description, sync_attempts, created_at
FROM transactions
WHERE sync_status = 'pending'
ORDER BY id
LIMIT ?
`

// GetPendingSync returns up to limit transactions still waiting for sync,
// oldest first.
func (r *SQLiteRepository) GetPendingSync(ctx context.Context, limit int) ([]PendingTransaction, error) {
	rows, err := r.db.QueryContext(ctx, selectPending, limit)
	if err != nil {
		return nil, fmt.Errorf("query pending transactions: %w", err)
	}
	defer rows.Close()

	var pending []PendingTransaction
	for rows.Next() {
		var p PendingTransaction
		var txType string
		if err := rows.Scan(&p.ID, &p.Tx.Date, &p.Tx.Name, &txType, &p.Tx.Category,
			&p.Tx.Amount.Cents, &p.Tx.Description, &p.Attempts, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pending transaction: %w", err)
		}
		p.Tx.Type = core.TransactionType(txType)
		pending = append(pending, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending transactions: %w", err)
	}

	return pending, nil
}

const selectByID = `
SELECT id, date, name, type, category, amount_cents, description, sync_attempts, created_at
FROM transactions
WHERE id = ?
`

// GetTransaction retrieves a single stored transaction by row id.
func (r *SQLiteRepository) GetTransaction(ctx context.Context, id int64) (*PendingTransaction, error) {
	var p PendingTransaction
	var txType string
	err := r.db.QueryRowContext(ctx, selectByID, id).Scan(&p.ID, &p.Tx.Date, &p.Tx.Name,
		&txType, &p.Tx.Category, &p.Tx.Amount.Cents, &p.Tx.Description, &p.Attempts, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get transaction by id: %w", err)
	}
	p.Tx.Type = core.TransactionType(txType)
	return &p, nil
}

// MarkSynced records a successful replay into the spreadsheet.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET sync_status = 'synced' WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark transaction synced: %w", err)
	}

	slog.InfoContext(ctx, "Transaction marked as synced", "id", id)
	return nil
}

// MarkSyncError records a failed replay attempt. The row stays visible to
// operators but is no longer retried automatically.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET sync_status = 'error', sync_attempts = sync_attempts + 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark transaction sync error: %w", err)
	}

	slog.WarnContext(ctx, "Transaction marked with sync error", "id", id)
	return nil
}
