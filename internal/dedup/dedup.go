// Package dedup detects duplicate transactions at statement-import time.
//
// A re-imported statement must not re-create transactions that are already in
// the ledger. Each incoming row is checked against the account's persisted
// records through three ordered tiers:
//
//  1. exact reference match — the bank-assigned reference ID is authoritative
//  2. strong match — same date, same amount, near-identical description
//  3. fuzzy match — date within 24h, amount within 1%, similar description
//
// A tier-1 hit short-circuits the weaker tiers. The engine only reads from
// the store; what to do with a detected duplicate (skip, review, force) is
// the caller's decision.
package dedup

import (
	"context"
	"errors"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// Confidence indicates how certain the engine is that a candidate is a
// duplicate of the incoming transaction.
type Confidence string

const (
	// ConfidenceExact means the bank reference IDs match. Score is always 100.
	ConfidenceExact Confidence = "exact"
	// ConfidenceHigh means same date, same amount, description similarity >= 90.
	// Score is in [95, 100].
	ConfidenceHigh Confidence = "high"
	// ConfidencePossible means date/amount proximity plus moderate description
	// similarity. Score is capped at 95.
	ConfidencePossible Confidence = "possible"
)

// Match pairs an incoming transaction with one persisted record believed to
// be the same real-world transaction.
type Match struct {
	Existing   *model.Transaction
	Confidence Confidence
	Reasons    []string // human-readable, in the order the criteria applied
	Score      float64  // 0-100
}

// CheckResult is the outcome of checking one transaction against the store.
// It is built fresh per call and never mutated afterwards.
type CheckResult struct {
	IsNew     bool
	Matches   []Match // sorted descending by score
	BestMatch *Match  // first of Matches, nil when IsNew
}

// Store is the read-only query surface the engine needs from the persistent
// transaction store.
type Store interface {
	FindAllForAccount(ctx context.Context, accountID string) ([]model.Transaction, error)
}

// ErrInvalidInput is returned when a ParsedTransaction is missing a usable
// date. The parser should have rejected such rows already; the checker fails
// fast instead of classifying garbage as "new".
var ErrInvalidInput = errors.New("dedup: invalid transaction input")

// ErrStoreUnavailable wraps store query failures. A failed check is never
// reported as "no duplicates found".
var ErrStoreUnavailable = errors.New("dedup: transaction store unavailable")

func newResult(matches []Match) *CheckResult {
	res := &CheckResult{
		IsNew:   len(matches) == 0,
		Matches: matches,
	}
	if len(matches) > 0 {
		res.BestMatch = &res.Matches[0]
	}
	return res
}
