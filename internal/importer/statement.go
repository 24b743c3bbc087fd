package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// StatementParser parses the generic statement CSV export:
//
//	Date,Description,Amount,Type,Category,Reference
//
// Dates may be RFC 3339 ("2024-01-05") or DD/MM/YYYY. Type and Category may
// be empty; an empty Type is inferred from the amount sign.
type StatementParser struct{}

const (
	stmtNumFields = 6
	stmtColDate   = 0
	stmtColDesc   = 1
	stmtColAmount = 2
	stmtColType   = 3
	stmtColCat    = 4
	stmtColRef    = 5
)

var stmtDateFormats = []string{"2006-01-02", "02/01/2006"}

// Format returns the parser name.
func (p *StatementParser) Format() string { return "statement" }

// Parse reads a statement CSV and returns ParsedTransactions.
func (p *StatementParser) Parse(r io.Reader) ([]model.ParsedTransaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = stmtNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var txns []model.ParsedTransaction
	for i, rec := range records[1:] {
		txn, err := parseStatementRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func parseStatementRow(rec []string) (model.ParsedTransaction, error) {
	date, err := parseStatementDate(rec[stmtColDate])
	if err != nil {
		return model.ParsedTransaction{}, err
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(rec[stmtColAmount]))
	if err != nil {
		return model.ParsedTransaction{}, fmt.Errorf("parsing amount %q: %w", rec[stmtColAmount], err)
	}

	txnType := model.TransactionType(strings.ToLower(strings.TrimSpace(rec[stmtColType])))
	switch txnType {
	case model.TypeIncome, model.TypeExpense, model.TypeTransfer:
	case "":
		if amount.IsNegative() {
			txnType = model.TypeExpense
		} else {
			txnType = model.TypeIncome
		}
	default:
		return model.ParsedTransaction{}, fmt.Errorf("unknown transaction type %q", rec[stmtColType])
	}

	return model.ParsedTransaction{
		Date:        date,
		Description: rec[stmtColDesc],
		Amount:      amount,
		Type:        txnType,
		Category:    strings.TrimSpace(rec[stmtColCat]),
		Reference:   strings.TrimSpace(rec[stmtColRef]),
	}, nil
}

func parseStatementDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range stmtDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing date %q: unrecognized format", s)
}
