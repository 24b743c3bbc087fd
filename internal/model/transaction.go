package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies the direction of a transaction.
type TransactionType string

const (
	TypeIncome   TransactionType = "income"
	TypeExpense  TransactionType = "expense"
	TypeTransfer TransactionType = "transfer"
)

// ParsedTransaction is a single row produced by a statement parser. It is
// the input to the duplicate checker and is never persisted as-is.
type ParsedTransaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal // negative = expense, positive = income
	Type        TransactionType
	Category    string // optional
	Reference   string // optional explicit bank reference
}

// Transaction is a persisted ledger record.
type Transaction struct {
	ID              string
	AccountID       string
	Date            time.Time
	Description     string
	Amount          decimal.Decimal
	ImportReference string // bank reference captured at import time, may be empty
	CreatedAt       time.Time
}

// SameCalendarDay reports whether two times fall on the same calendar date,
// ignoring time of day. Both times are compared in UTC.
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
