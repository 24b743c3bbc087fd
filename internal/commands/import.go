package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/accounts"
	"github.com/ledgerline-dev/ledgerline/internal/auditlog"
	"github.com/ledgerline-dev/ledgerline/internal/dedup"
	"github.com/ledgerline-dev/ledgerline/internal/id"
	"github.com/ledgerline-dev/ledgerline/internal/importer"
	"github.com/ledgerline-dev/ledgerline/internal/logging"
	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/reference"
	"github.com/ledgerline-dev/ledgerline/internal/store"
)

type importOptions struct {
	dir     string
	account string
	format  string
	all     bool
	force   bool
	dryRun  bool
}

func newImportCommand() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a bank statement, skipping already-imported transactions",
		Long: `Import parses a statement file, checks every row against the account's
persisted transactions, and imports only the rows that are not duplicates.
Exact reference matches are skipped automatically; weaker matches are flagged
for review and left unimported unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !opts.all {
				return fmt.Errorf("provide a statement file or --all")
			}
			var file string
			if len(args) > 0 {
				file = args[0]
			}
			return runImport(cmd.Context(), opts, file)
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", ".", "ledger directory")
	cmd.Flags().StringVar(&opts.account, "account", "", "account ID to import into (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&opts.format, "format", "statement", "statement format")
	cmd.Flags().BoolVar(&opts.all, "all", false, "import every file in the import/ directory")
	cmd.Flags().BoolVar(&opts.force, "force", false, "import rows flagged as possible duplicates")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "detect duplicates but write nothing")

	return cmd
}

type importSummary struct {
	imported int
	skipped  int
	review   int
	failed   int
}

func runImport(ctx context.Context, opts importOptions, file string) error {
	cfg, err := loadConfig(opts.dir)
	if err != nil {
		return err
	}
	logger := logging.NewLogger(cfg.Logging)

	accts := accounts.FromConfig(cfg)
	if !accts.Exists(opts.account) {
		return fmt.Errorf("unknown account %q (declare it in ledgerline.yaml)", opts.account)
	}

	parser := importer.DefaultRegistry().Get(opts.format)
	if parser == nil {
		return fmt.Errorf("unknown statement format %q", opts.format)
	}

	st, err := store.Open(databasePath(opts.dir, cfg))
	if err != nil {
		return err
	}
	defer st.Close()

	checker := dedup.NewChecker(st, dedupConfig(cfg.Matching), logger)

	files, err := resolveFiles(opts, file)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("Nothing to import.")
		return nil
	}

	runID, err := nextRunID(opts.dir)
	if err != nil {
		return err
	}

	total := importSummary{}
	for _, f := range files {
		sum, err := importFile(ctx, opts, f, runID, parser, checker, st)
		if err != nil {
			return fmt.Errorf("importing %s: %w", f.Name, err)
		}
		total.imported += sum.imported
		total.skipped += sum.skipped
		total.review += sum.review
		total.failed += sum.failed

		if opts.all && !opts.dryRun {
			if err := importer.MarkProcessed(opts.dir, f.Name); err != nil {
				return err
			}
		}
	}

	fmt.Printf("%s: %d imported, %d skipped as duplicates, %d need review, %d failed\n",
		runID, total.imported, total.skipped, total.review, total.failed)
	if total.failed > 0 {
		return fmt.Errorf("%d transaction(s) could not be checked", total.failed)
	}
	return nil
}

func resolveFiles(opts importOptions, file string) ([]importer.FileInfo, error) {
	if opts.all {
		return importer.Scan(opts.dir)
	}
	info, err := os.Stat(file)
	if err != nil {
		return nil, fmt.Errorf("statement file: %w", err)
	}
	return []importer.FileInfo{{
		Name: filepath.Base(file),
		Path: file,
		Size: info.Size(),
	}}, nil
}

func nextRunID(dir string) (string, error) {
	entries, err := auditlog.Read(dir)
	if err != nil {
		return "", err
	}
	seen := make([]string, 0, len(entries))
	for _, e := range entries {
		seen = append(seen, e.RunID)
	}
	now := time.Now()
	return id.FormatRunID(now, id.NextRunSeq(now, seen)), nil
}

func importFile(
	ctx context.Context,
	opts importOptions,
	f importer.FileInfo,
	runID string,
	parser importer.Parser,
	checker *dedup.Checker,
	st *store.Store,
) (importSummary, error) {
	r, err := os.Open(f.Path)
	if err != nil {
		return importSummary{}, fmt.Errorf("opening statement: %w", err)
	}
	defer r.Close()

	txns, err := parser.Parse(r)
	if err != nil {
		return importSummary{}, err
	}

	items := checker.CheckBatch(ctx, txns, opts.account)

	sum := importSummary{}
	var entries []auditlog.Entry
	for _, item := range items {
		entry, err := applyDecision(ctx, opts, f.Name, runID, item, st)
		if err != nil {
			return importSummary{}, err
		}
		entries = append(entries, entry)

		switch entry.Decision {
		case auditlog.DecisionImported:
			sum.imported++
		case auditlog.DecisionSkipped:
			sum.skipped++
		case auditlog.DecisionNeedsReview:
			sum.review++
		case auditlog.DecisionFailed:
			sum.failed++
		}
	}

	if !opts.dryRun {
		if err := auditlog.Append(opts.dir, entries); err != nil {
			return importSummary{}, err
		}
	}
	return sum, nil
}

// applyDecision maps one check outcome onto the import policy: exact matches
// are skipped, weaker matches flagged for review (unless forced), new rows
// are persisted.
func applyDecision(
	ctx context.Context,
	opts importOptions,
	fileName, runID string,
	item dedup.BatchItem,
	st *store.Store,
) (auditlog.Entry, error) {
	entry := auditlog.Entry{
		Timestamp:   time.Now().UTC(),
		RunID:       runID,
		File:        fileName,
		AccountID:   opts.account,
		Description: item.Transaction.Description,
		Amount:      item.Transaction.Amount.StringFixed(2),
	}

	if item.Err != nil {
		entry.Decision = auditlog.DecisionFailed
		fmt.Printf("  FAILED   %s: %v\n", item.Transaction.Description, item.Err)
		return entry, nil
	}

	res := item.Result
	if best := res.BestMatch; best != nil {
		entry.MatchScore = fmt.Sprintf("%.1f", best.Score)
		entry.MatchedID = best.Existing.ID

		if best.Confidence == dedup.ConfidenceExact {
			entry.Decision = auditlog.DecisionSkipped
			fmt.Printf("  SKIP     %s (%s)\n", item.Transaction.Description, best.Reasons[0])
			return entry, nil
		}
		if !opts.force {
			entry.Decision = auditlog.DecisionNeedsReview
			fmt.Printf("  REVIEW   %s (score %.1f: %v)\n", item.Transaction.Description, best.Score, best.Reasons)
			return entry, nil
		}
	}

	entry.Decision = auditlog.DecisionImported
	if opts.dryRun {
		fmt.Printf("  IMPORT   %s (dry run)\n", item.Transaction.Description)
		return entry, nil
	}

	ref, _ := reference.Extract(item.Transaction.Reference, item.Transaction.Description)
	created, err := st.Create(ctx, model.Transaction{
		AccountID:       opts.account,
		Date:            item.Transaction.Date,
		Description:     item.Transaction.Description,
		Amount:          item.Transaction.Amount,
		ImportReference: ref,
	})
	if err != nil {
		return auditlog.Entry{}, fmt.Errorf("persisting transaction: %w", err)
	}
	fmt.Printf("  IMPORT   %s (%s)\n", created.Description, created.Amount.StringFixed(2))
	return entry, nil
}
