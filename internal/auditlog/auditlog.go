// Package auditlog records every import decision in an append-only CSV, so a
// user can trace why a statement row was imported, skipped, or flagged.
package auditlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Decision is the import-time outcome for one statement row.
type Decision string

const (
	DecisionImported    Decision = "imported"
	DecisionSkipped     Decision = "skipped-duplicate"
	DecisionNeedsReview Decision = "needs-review"
	DecisionFailed      Decision = "failed"
)

// Entry is one row in the import log.
type Entry struct {
	Timestamp   time.Time
	RunID       string // import run, e.g. "IMP-20250105-001"
	File        string
	AccountID   string
	Description string
	Amount      string
	Decision    Decision
	MatchScore  string // empty when no match
	MatchedID   string // empty when no match
}

// Header is the CSV header for import-log.csv.
const Header = "timestamp,run_id,file,account_id,description,amount,decision,match_score,matched_id"

const (
	numFields      = 9
	logDir         = "logs"
	logFile        = "logs/import-log.csv"
	colTimestamp   = 0
	colRunID       = 1
	colFile        = 2
	colAccountID   = 3
	colDescription = 4
	colAmount      = 5
	colDecision    = 6
	colMatchScore  = 7
	colMatchedID   = 8
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colRunID] = e.RunID
	row[colFile] = e.File
	row[colAccountID] = e.AccountID
	row[colDescription] = e.Description
	row[colAmount] = e.Amount
	row[colDecision] = string(e.Decision)
	row[colMatchScore] = e.MatchScore
	row[colMatchedID] = e.MatchedID
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	return Entry{
		Timestamp:   ts,
		RunID:       record[colRunID],
		File:        record[colFile],
		AccountID:   record[colAccountID],
		Description: record[colDescription],
		Amount:      record[colAmount],
		Decision:    Decision(record[colDecision]),
		MatchScore:  record[colMatchScore],
		MatchedID:   record[colMatchedID],
	}, nil
}

// Append writes entries to <root>/logs/import-log.csv, creating the file and
// header if needed.
func Append(root string, entries []Entry) error {
	dir := filepath.Join(root, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(root, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <root>/logs/import-log.csv. Returns nil if
// the file does not exist.
func Read(root string) ([]Entry, error) {
	path := filepath.Join(root, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading import log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
