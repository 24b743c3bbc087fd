// Package store persists ledger transactions in a sqlite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerline-dev/ledgerline/internal/model"

	_ "modernc.org/sqlite"
)

// Amounts are stored as decimal strings; sqlite REAL would reintroduce the
// float rounding the decimal type exists to avoid.
const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id               TEXT PRIMARY KEY,
	account_id       TEXT NOT NULL,
	date             TEXT NOT NULL,
	description      TEXT NOT NULL,
	amount           TEXT NOT NULL,
	import_reference TEXT NOT NULL DEFAULT '',
	created_at       TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_account
	ON transactions(account_id);

CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_account_reference
	ON transactions(account_id, import_reference)
	WHERE import_reference != '';
`

// Store wraps the sqlite database. The unique index on
// (account_id, import_reference) is the durable dedup backstop: the checker's
// result is a point-in-time read, not an atomic guarantee.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create persists a transaction. A zero ID is assigned a fresh uuid; the
// stored record is returned.
func (s *Store) Create(ctx context.Context, txn model.Transaction) (model.Transaction, error) {
	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (id, account_id, date, description, amount, import_reference, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		txn.ID,
		txn.AccountID,
		txn.Date.UTC().Format(time.RFC3339),
		txn.Description,
		txn.Amount.String(),
		txn.ImportReference,
		txn.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("inserting transaction: %w", err)
	}
	return txn, nil
}

// FindAllForAccount returns every transaction for an account, oldest first.
func (s *Store) FindAllForAccount(ctx context.Context, accountID string) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, account_id, date, description, amount, import_reference, created_at
		 FROM transactions WHERE account_id = ? ORDER BY date, created_at`,
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	defer rows.Close()

	var txns []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading transactions: %w", err)
	}
	return txns, nil
}

// CountForAccount returns the number of persisted transactions for an account.
func (s *Store) CountForAccount(ctx context.Context, accountID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE account_id = ?`, accountID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting transactions: %w", err)
	}
	return n, nil
}

func scanTransaction(rows *sql.Rows) (model.Transaction, error) {
	var (
		txn       model.Transaction
		date      string
		amount    string
		createdAt string
	)
	if err := rows.Scan(&txn.ID, &txn.AccountID, &date, &txn.Description, &amount, &txn.ImportReference, &createdAt); err != nil {
		return model.Transaction{}, fmt.Errorf("scanning transaction: %w", err)
	}

	var err error
	txn.Date, err = time.Parse(time.RFC3339, date)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", date, err)
	}
	txn.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", amount, err)
	}
	txn.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}
	return txn, nil
}
