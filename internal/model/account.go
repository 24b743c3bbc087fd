package model

// AccountType classifies bank accounts configured for import.
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCreditCard AccountType = "credit_card"
	AccountTypeCash       AccountType = "cash"
)

// Account represents a bank account declared in ledgerline.yaml.
type Account struct {
	ID       string
	Name     string
	Type     AccountType
	LastFour string
}
