package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/buildinfo"
	"github.com/ledgerline-dev/ledgerline/internal/config"
	"github.com/ledgerline-dev/ledgerline/internal/dedup"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "ledgerline",
		Short:   "Personal finance ledger with duplicate-aware statement import",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newCheckCommand())

	return rootCmd
}

// loadConfig reads <dir>/ledgerline.yaml.
func loadConfig(dir string) (*config.Config, error) {
	return config.Load(filepath.Join(dir, "ledgerline.yaml"))
}

// databasePath resolves the configured database path against the ledger dir.
func databasePath(dir string, cfg *config.Config) string {
	p := cfg.Storage.DatabasePath
	if p == "" {
		p = "ledgerline.db"
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// dedupConfig translates the YAML matching section into engine thresholds,
// falling back to defaults for unset values.
func dedupConfig(m config.MatchingConfig) dedup.Config {
	cfg := dedup.DefaultConfig()
	if m.StrongSimilarityMin > 0 {
		cfg.StrongSimilarityMin = m.StrongSimilarityMin
	}
	if m.FuzzySimilarityMin > 0 {
		cfg.FuzzySimilarityMin = m.FuzzySimilarityMin
	}
	if m.DateWindowHours > 0 {
		cfg.DateWindow = time.Duration(m.DateWindowHours) * time.Hour
	}
	if m.AmountTolerancePct > 0 {
		cfg.AmountTolerancePct = decimal.NewFromFloat(m.AmountTolerancePct)
	}
	if m.StoreTimeoutSeconds > 0 {
		cfg.StoreTimeout = time.Duration(m.StoreTimeoutSeconds) * time.Second
	}
	if m.BatchConcurrency > 0 {
		cfg.BatchConcurrency = m.BatchConcurrency
	}
	return cfg
}
