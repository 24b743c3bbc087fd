package dedup

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

func record(id, desc, amount, importRef string, date time.Time) model.Transaction {
	return model.Transaction{
		ID:              id,
		AccountID:       "acct",
		Date:            date,
		Description:     desc,
		Amount:          decimal.RequireFromString(amount),
		ImportReference: importRef,
	}
}

func TestSelector_ByReference_StoredReference(t *testing.T) {
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	sel := newSelector([]model.Transaction{
		record("t1", "NEFT Salary", "1500.00", "REF1234567", date),
	}, DefaultConfig())

	rec := sel.byReference("ref1234567")
	require.NotNil(t, rec)
	assert.Equal(t, "t1", rec.ID)
}

func TestSelector_ByReference_ExtractedFromDescription(t *testing.T) {
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	sel := newSelector([]model.Transaction{
		record("t1", "NEFT REF1234567 Salary", "1500.00", "", date),
	}, DefaultConfig())

	rec := sel.byReference("REF1234567")
	require.NotNil(t, rec)
	assert.Equal(t, "t1", rec.ID)
}

func TestSelector_ByReference_NoMatch(t *testing.T) {
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	sel := newSelector([]model.Transaction{
		record("t1", "Coffee", "4.50", "REF111", date),
	}, DefaultConfig())

	assert.Nil(t, sel.byReference("REF999"))
}

func TestSelector_ByReference_FirstMatchWins(t *testing.T) {
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	sel := newSelector([]model.Transaction{
		record("t1", "Salary", "1500.00", "REF777", date),
		record("t2", "Salary repeat", "1500.00", "REF777", date),
	}, DefaultConfig())

	rec := sel.byReference("REF777")
	require.NotNil(t, rec)
	assert.Equal(t, "t1", rec.ID)
}

func TestSelector_ByExactDateAmount(t *testing.T) {
	date := time.Date(2024, 2, 10, 14, 30, 0, 0, time.UTC)
	sel := newSelector([]model.Transaction{
		record("match", "Swiggy", "250.00", "", time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC)),
		record("wrong-day", "Swiggy", "250.00", "", time.Date(2024, 2, 11, 9, 0, 0, 0, time.UTC)),
		record("wrong-amount", "Swiggy", "250.01", "", time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC)),
	}, DefaultConfig())

	out := sel.byExactDateAmount(date, decimal.RequireFromString("250.00"))
	require.Len(t, out, 1)
	assert.Equal(t, "match", out[0].ID)
}

func TestSelector_ByExactDateAmount_IgnoresTimeOfDay(t *testing.T) {
	sel := newSelector([]model.Transaction{
		record("t1", "Swiggy", "250.00", "", time.Date(2024, 2, 10, 23, 59, 0, 0, time.UTC)),
	}, DefaultConfig())

	out := sel.byExactDateAmount(time.Date(2024, 2, 10, 0, 1, 0, 0, time.UTC), decimal.RequireFromString("250.00"))
	assert.Len(t, out, 1)
}

func TestSelector_ByProximity_DateWindow(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	sel := newSelector([]model.Transaction{
		record("in", "ATM", "1000.00", "", base.Add(24*time.Hour)),
		record("out", "ATM", "1000.00", "", base.Add(25*time.Hour)),
	}, DefaultConfig())

	out := sel.byProximity(base, decimal.RequireFromString("1000.00"))
	require.Len(t, out, 1)
	assert.Equal(t, "in", out[0].ID)
}

func TestSelector_ByProximity_AmountTolerance(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	sel := newSelector([]model.Transaction{
		record("in", "ATM", "1005.00", "", date),  // 0.5% above
		record("out", "ATM", "1020.00", "", date), // 2% above
	}, DefaultConfig())

	out := sel.byProximity(date, decimal.RequireFromString("1000.00"))
	require.Len(t, out, 1)
	assert.Equal(t, "in", out[0].ID)
}

func TestSelector_ByProximity_BothZeroAmountsMatch(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	sel := newSelector([]model.Transaction{
		record("t1", "Adjustment", "0.00", "", date),
	}, DefaultConfig())

	out := sel.byProximity(date, decimal.Zero)
	assert.Len(t, out, 1)
}

func TestSelector_ByProximity_OneZeroAmountDoesNotMatch(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	sel := newSelector([]model.Transaction{
		record("t1", "Adjustment", "0.00", "", date),
	}, DefaultConfig())

	out := sel.byProximity(date, decimal.RequireFromString("10.00"))
	assert.Empty(t, out)
}
