package accounts

import (
	"github.com/ledgerline-dev/ledgerline/internal/config"
	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// Service provides in-memory lookup over the configured bank accounts.
type Service struct {
	accounts []model.Account
	byID     map[string]model.Account
}

// NewService creates a Service from a slice of accounts.
func NewService(accounts []model.Account) *Service {
	byID := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}
	return &Service{accounts: accounts, byID: byID}
}

// FromConfig builds a Service from the accounts declared in ledgerline.yaml.
func FromConfig(cfg *config.Config) *Service {
	accts := make([]model.Account, 0, len(cfg.Accounts))
	for _, a := range cfg.Accounts {
		accts = append(accts, model.Account{
			ID:       a.ID,
			Name:     a.Name,
			Type:     model.AccountType(a.Type),
			LastFour: a.LastFour,
		})
	}
	return NewService(accts)
}

// All returns all accounts.
func (s *Service) All() []model.Account {
	return s.accounts
}

// Get returns an account by ID.
func (s *Service) Get(id string) (model.Account, bool) {
	a, ok := s.byID[id]
	return a, ok
}

// Exists reports whether an account ID is configured.
func (s *Service) Exists(id string) bool {
	_, ok := s.byID[id]
	return ok
}
