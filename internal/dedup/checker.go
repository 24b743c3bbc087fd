package dedup

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/reference"
)

// Match reason strings, in the form shown to the user at import time.
const (
	reasonSameReference = "Same transaction reference ID"
	reasonSameDate      = "Same date"
	reasonSameAmount    = "Same amount"
	reasonDateWithin    = "Date within 24 hours"
	reasonAmountWithin  = "Amount within 1%"
)

// Checker runs the tiered duplicate-detection procedure. It holds no mutable
// state between calls; concurrent checks are safe.
type Checker struct {
	store  Store
	cfg    Config
	logger *slog.Logger
}

// NewChecker creates a Checker. A nil logger disables logging.
func NewChecker(store Store, cfg Config, logger *slog.Logger) *Checker {
	if cfg.BatchConcurrency < 1 {
		cfg.BatchConcurrency = DefaultConfig().BatchConcurrency
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Checker{store: store, cfg: cfg, logger: logger}
}

// Check classifies one parsed transaction against the account's persisted
// records. The three tiers run in order; an exact reference hit short-circuits
// the rest. The returned result is fresh and never shared.
func (c *Checker) Check(ctx context.Context, txn model.ParsedTransaction, accountID string) (*CheckResult, error) {
	if txn.Date.IsZero() {
		return nil, fmt.Errorf("%w: transaction has no date", ErrInvalidInput)
	}

	records, err := c.fetchRecords(ctx, accountID)
	if err != nil {
		return nil, err
	}
	sel := newSelector(records, c.cfg)

	// Tier 1: a bank-assigned reference is authoritative. Running the weaker
	// tiers after a reference hit could only add noise.
	if refID, ok := reference.Extract(txn.Reference, txn.Description); ok {
		if rec := sel.byReference(refID); rec != nil {
			c.logger.Debug("duplicate by reference", "account", accountID, "reference", refID, "existing", rec.ID)
			return newResult([]Match{{
				Existing:   rec,
				Confidence: ConfidenceExact,
				Reasons:    []string{reasonSameReference},
				Score:      100,
			}}), nil
		}
	}

	matches := c.strongMatches(sel, txn)
	if len(matches) == 0 {
		matches = c.fuzzyMatches(sel, txn)
	}

	// Stable sort keeps store order for equal scores.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > 0 {
		c.logger.Debug("duplicate candidates found", "account", accountID, "count", len(matches), "best_score", matches[0].Score)
	}
	return newResult(matches), nil
}

func (c *Checker) fetchRecords(ctx context.Context, accountID string) ([]model.Transaction, error) {
	if c.cfg.StoreTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.StoreTimeout)
		defer cancel()
	}
	records, err := c.store.FindAllForAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return records, nil
}

// strongMatches is tier 2: same calendar date, exactly equal amount, and
// description similarity at or above the strong threshold. Multiple records
// can qualify (two identical same-day charges).
func (c *Checker) strongMatches(sel *selector, txn model.ParsedTransaction) []Match {
	var matches []Match
	for _, rec := range sel.byExactDateAmount(txn.Date, txn.Amount) {
		rec := rec
		s := Similarity(txn.Description, rec.Description)
		if s < c.cfg.StrongSimilarityMin {
			continue
		}
		matches = append(matches, Match{
			Existing:   &rec,
			Confidence: ConfidenceHigh,
			Reasons: []string{
				reasonSameDate,
				reasonSameAmount,
				similarityReason(s),
			},
			// Maps similarity in [90,100] into [95,100].
			Score: 95 + s/20,
		})
	}
	return matches
}

// fuzzyMatches is tier 3, the last resort: date within the window, amount
// within the relative tolerance, moderate description similarity. Capped
// below the strong-match score range.
func (c *Checker) fuzzyMatches(sel *selector, txn model.ParsedTransaction) []Match {
	var matches []Match
	for _, rec := range sel.byProximity(txn.Date, txn.Amount) {
		rec := rec
		s := Similarity(txn.Description, rec.Description)
		if s < c.cfg.FuzzySimilarityMin {
			continue
		}
		score := 0.6*s + 20 + 10 // proximity candidates always satisfy both date and amount
		if score > 95 {
			score = 95
		}
		matches = append(matches, Match{
			Existing:   &rec,
			Confidence: ConfidencePossible,
			Reasons: []string{
				reasonDateWithin,
				reasonAmountWithin,
				similarityReason(s),
			},
			Score: score,
		})
	}
	return matches
}

func similarityReason(s float64) string {
	return fmt.Sprintf("%.0f%% description match", s)
}
