package dedup

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// BatchItem is the per-transaction outcome of CheckBatch. Exactly one of
// Result and Err is set.
type BatchItem struct {
	Transaction model.ParsedTransaction
	Result      *CheckResult
	Err         error
}

// CheckBatch checks every transaction in an import batch independently
// against the store. Output order matches input order. Items are evaluated
// concurrently up to Config.BatchConcurrency; one item's failure never aborts
// the others — the caller decides how to handle a partially failed batch.
//
// Rows within the batch are never compared to each other, only to persisted
// records: two identical rows in one file are both classified as new.
func (c *Checker) CheckBatch(ctx context.Context, txns []model.ParsedTransaction, accountID string) []BatchItem {
	items := make([]BatchItem, len(txns))

	var g errgroup.Group
	g.SetLimit(c.cfg.BatchConcurrency)
	for i, txn := range txns {
		i, txn := i, txn
		g.Go(func() error {
			res, err := c.Check(ctx, txn, accountID)
			items[i] = BatchItem{Transaction: txn, Result: res, Err: err}
			return nil
		})
	}
	_ = g.Wait() // per-item errors are carried in items, never returned here
	return items
}
