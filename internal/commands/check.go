package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/dedup"
	"github.com/ledgerline-dev/ledgerline/internal/importer"
	"github.com/ledgerline-dev/ledgerline/internal/logging"
	"github.com/ledgerline-dev/ledgerline/internal/store"
)

func newCheckCommand() *cobra.Command {
	var dir string
	var account string
	var format string

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Show which statement rows would be duplicates, without importing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), dir, account, format, args[0])
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "ledger directory")
	cmd.Flags().StringVar(&account, "account", "", "account ID to check against (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&format, "format", "statement", "statement format")

	return cmd
}

func runCheck(ctx context.Context, dir, account, format, file string) error {
	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}
	logger := logging.NewLogger(cfg.Logging)

	parser := importer.DefaultRegistry().Get(format)
	if parser == nil {
		return fmt.Errorf("unknown statement format %q", format)
	}

	r, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("opening statement: %w", err)
	}
	defer r.Close()

	txns, err := parser.Parse(r)
	if err != nil {
		return err
	}

	st, err := store.Open(databasePath(dir, cfg))
	if err != nil {
		return err
	}
	defer st.Close()

	checker := dedup.NewChecker(st, dedupConfig(cfg.Matching), logger)
	items := checker.CheckBatch(ctx, txns, account)

	failed := 0
	for _, item := range items {
		switch {
		case item.Err != nil:
			failed++
			fmt.Printf("ERROR      %s: %v\n", item.Transaction.Description, item.Err)
		case item.Result.IsNew:
			fmt.Printf("NEW        %s (%s)\n", item.Transaction.Description, item.Transaction.Amount.StringFixed(2))
		default:
			best := item.Result.BestMatch
			fmt.Printf("DUPLICATE  %s (%s, score %.1f): %v\n",
				item.Transaction.Description, best.Confidence, best.Score, best.Reasons)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d transaction(s) could not be checked", failed)
	}
	return nil
}
