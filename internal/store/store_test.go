package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "ledgerline.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func testTxn(account, desc, amount, ref string, date time.Time) model.Transaction {
	return model.Transaction{
		AccountID:       account,
		Date:            date,
		Description:     desc,
		Amount:          decimal.RequireFromString(amount),
		ImportReference: ref,
	}
}

func TestStore_CreateAssignsID(t *testing.T) {
	st := openTestStore(t)

	created, err := st.Create(context.Background(),
		testTxn("acct", "Coffee", "-4.50", "", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestStore_FindAllForAccount(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	_, err := st.Create(ctx, testTxn("a", "Coffee", "-4.50", "", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	_, err = st.Create(ctx, testTxn("a", "Salary", "1500.00", "REF1234567", time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	_, err = st.Create(ctx, testTxn("b", "Rent", "-900.00", "", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	txns, err := st.FindAllForAccount(ctx, "a")
	require.NoError(t, err)
	require.Len(t, txns, 2)

	// Oldest first.
	assert.Equal(t, "Salary", txns[0].Description)
	assert.Equal(t, "REF1234567", txns[0].ImportReference)
	assert.Equal(t, "1500.00", txns[0].Amount.StringFixed(2))
	assert.Equal(t, "Coffee", txns[1].Description)
}

func TestStore_FindAllForAccount_Empty(t *testing.T) {
	st := openTestStore(t)

	txns, err := st.FindAllForAccount(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestStore_AmountRoundTripsExactly(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	_, err := st.Create(ctx, testTxn("a", "Odd amount", "0.10", "", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	txns, err := st.FindAllForAccount(ctx, "a")
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.True(t, txns[0].Amount.Equal(decimal.RequireFromString("0.10")))
}

func TestStore_UniqueReferencePerAccount(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	_, err := st.Create(ctx, testTxn("a", "Salary", "1500.00", "REF1234567", date))
	require.NoError(t, err)

	// Same reference on the same account is rejected by the index.
	_, err = st.Create(ctx, testTxn("a", "Salary again", "1500.00", "REF1234567", date))
	assert.Error(t, err)

	// Same reference on a different account is fine.
	_, err = st.Create(ctx, testTxn("b", "Salary", "1500.00", "REF1234567", date))
	assert.NoError(t, err)
}

func TestStore_EmptyReferencesDoNotCollide(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	_, err := st.Create(ctx, testTxn("a", "Coffee", "-4.50", "", date))
	require.NoError(t, err)
	_, err = st.Create(ctx, testTxn("a", "Tea", "-3.00", "", date))
	assert.NoError(t, err)
}

func TestStore_CountForAccount(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	n, err := st.CountForAccount(ctx, "a")
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = st.Create(ctx, testTxn("a", "Coffee", "-4.50", "", date))
	require.NoError(t, err)

	n, err = st.CountForAccount(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
