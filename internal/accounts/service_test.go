package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline-dev/ledgerline/internal/config"
	"github.com/ledgerline-dev/ledgerline/internal/model"
)

func TestService_GetAndExists(t *testing.T) {
	svc := NewService([]model.Account{
		{ID: "primary", Name: "HDFC Checking", Type: model.AccountTypeChecking},
		{ID: "savings", Name: "HDFC Savings", Type: model.AccountTypeSavings},
	})

	a, ok := svc.Get("primary")
	require.True(t, ok)
	assert.Equal(t, "HDFC Checking", a.Name)

	assert.True(t, svc.Exists("savings"))
	assert.False(t, svc.Exists("missing"))

	_, ok = svc.Get("missing")
	assert.False(t, ok)
}

func TestService_All(t *testing.T) {
	svc := NewService([]model.Account{{ID: "a"}, {ID: "b"}})
	assert.Len(t, svc.All(), 2)
}

func TestFromConfig(t *testing.T) {
	cfg := &config.Config{
		Accounts: []config.BankAccount{
			{ID: "primary", Name: "HDFC Checking", Type: "checking", LastFour: "4242"},
		},
	}
	svc := FromConfig(cfg)

	a, ok := svc.Get("primary")
	require.True(t, ok)
	assert.Equal(t, model.AccountTypeChecking, a.Type)
	assert.Equal(t, "4242", a.LastFour)
}
