// Package storage provides the SQLite-backed transaction repository.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"finreport/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository persists transactions in a local SQLite database. It
// implements ledger.TransactionReader and ledger.TransactionWriter.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens (creating if needed) the database at dbPath and
// applies pending migrations.
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

// Append stores a transaction after validating it.
func (r *SQLiteRepository) Append(ctx context.Context, tx core.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (occurred_on, category, amount, description)
		 VALUES (?, ?, ?, ?)`,
		tx.Date.String(), tx.Category, tx.Amount, tx.Description)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	id, _ := res.LastInsertId()
	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", id,
		"date", tx.Date.String(),
		"category", tx.Category,
		"amount", tx.Amount)
	return nil
}

// ListTransactions returns all stored transactions in date order.
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT occurred_on, category, amount, description
		 FROM transactions
		 ORDER BY occurred_on, id`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListByPeriod returns transactions whose date falls within the period,
// bounds inclusive.
func (r *SQLiteRepository) ListByPeriod(ctx context.Context, period core.Period) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT occurred_on, category, amount, description
		 FROM transactions
		 WHERE occurred_on >= ? AND occurred_on <= ?
		 ORDER BY occurred_on, id`,
		period.Start.String(), period.End.String())
	if err != nil {
		return nil, fmt.Errorf("query transactions by period: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]core.Transaction, error) {
	txs := make([]core.Transaction, 0)
	for rows.Next() {
		var (
			occurredOn string
			tx         core.Transaction
		)
		if err := rows.Scan(&occurredOn, &tx.Category, &tx.Amount, &tx.Description); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		date, err := core.ParseDate(occurredOn)
		if err != nil {
			return nil, fmt.Errorf("parse stored date %q: %w", occurredOn, err)
		}
		tx.Date = date
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, nil
}
