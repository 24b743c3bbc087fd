package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/config"
	"github.com/ledgerline-dev/ledgerline/internal/store"
)

func newInitCommand() *cobra.Command {
	var accountID string
	var accountName string
	var accountType string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new ledgerline ledger",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, accountID, accountName, accountType)
		},
	}

	cmd.Flags().StringVar(&accountID, "account-id", "primary", "ID of the first bank account")
	cmd.Flags().StringVar(&accountName, "account-name", "", "name of the first bank account (required)")
	_ = cmd.MarkFlagRequired("account-name")
	cmd.Flags().StringVar(&accountType, "account-type", "checking", "type of the first bank account")

	return cmd
}

func runInit(dir, accountID, accountName, accountType string) error {
	// Create directory structure.
	dirs := []string{
		"import",
		filepath.Join("import", "processed"),
		"logs",
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write ledgerline.yaml.
	cfg := config.Default()
	cfg.Accounts = []config.BankAccount{{
		ID:   accountID,
		Name: accountName,
		Type: accountType,
	}}
	if err := config.Save(filepath.Join(dir, "ledgerline.yaml"), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Create the database with its schema.
	st, err := store.Open(databasePath(dir, cfg))
	if err != nil {
		return fmt.Errorf("creating database: %w", err)
	}
	if err := st.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}

	fmt.Printf("Initialized ledgerline ledger at %s\n", dir)
	return nil
}
