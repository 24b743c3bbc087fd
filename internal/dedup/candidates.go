package dedup

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/reference"
)

// selector filters one account's records for each tier. Records are fetched
// once per check, so all three tiers see the same point-in-time snapshot.
type selector struct {
	records []model.Transaction
	cfg     Config
}

func newSelector(records []model.Transaction, cfg Config) *selector {
	return &selector{records: records, cfg: cfg}
}

// byReference returns the first record whose stored import reference matches
// refID, or whose description yields a matching reference under the same
// extraction heuristic used at import. At most one record is returned since a
// reference ID is expected to be unique per account.
func (s *selector) byReference(refID string) *model.Transaction {
	for i := range s.records {
		rec := &s.records[i]
		if rec.ImportReference != "" && reference.Match(refID, rec.ImportReference) {
			return rec
		}
		if extracted, ok := reference.Extract("", rec.Description); ok && reference.Match(refID, extracted) {
			return rec
		}
	}
	return nil
}

// byExactDateAmount returns records on the same calendar date with an exactly
// equal amount. Amounts are decimals, so no tolerance is needed.
func (s *selector) byExactDateAmount(date time.Time, amount decimal.Decimal) []model.Transaction {
	var out []model.Transaction
	for _, rec := range s.records {
		if model.SameCalendarDay(rec.Date, date) && rec.Amount.Equal(amount) {
			out = append(out, rec)
		}
	}
	return out
}

// byProximity returns records within the date window whose amount is within
// the relative tolerance.
func (s *selector) byProximity(date time.Time, amount decimal.Decimal) []model.Transaction {
	var out []model.Transaction
	for _, rec := range s.records {
		if s.dateClose(rec.Date, date) && s.amountClose(rec.Amount, amount) {
			out = append(out, rec)
		}
	}
	return out
}

func (s *selector) dateClose(a, b time.Time) bool {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d <= s.cfg.DateWindow
}

// amountClose applies the relative tolerance against the larger absolute
// amount. Two zero amounts match; a zero against a non-zero does not, since
// relative tolerance is undefined there.
func (s *selector) amountClose(a, b decimal.Decimal) bool {
	absA := a.Abs()
	absB := b.Abs()
	if absA.IsZero() && absB.IsZero() {
		return true
	}
	if absA.IsZero() || absB.IsZero() {
		return false
	}
	larger := decimal.Max(absA, absB)
	diff := a.Sub(b).Abs()
	return diff.LessThanOrEqual(larger.Mul(s.cfg.AmountTolerancePct))
}
