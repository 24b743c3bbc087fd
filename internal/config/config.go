package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level ledgerline.yaml configuration.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Logging  LoggingConfig  `yaml:"logging"`
	Accounts []BankAccount  `yaml:"accounts,omitempty"`
	Matching MatchingConfig `yaml:"matching"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// BankAccount declares an account statements can be imported into.
type BankAccount struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	LastFour string `yaml:"last_four,omitempty"`
}

// MatchingConfig holds duplicate-detection thresholds.
type MatchingConfig struct {
	StrongSimilarityMin float64 `yaml:"strong_similarity_min"`
	FuzzySimilarityMin  float64 `yaml:"fuzzy_similarity_min"`
	DateWindowHours     int     `yaml:"date_window_hours"`
	AmountTolerancePct  float64 `yaml:"amount_tolerance_pct"`
	StoreTimeoutSeconds int     `yaml:"store_timeout_seconds"`
	BatchConcurrency    int     `yaml:"batch_concurrency"`
}

// Load reads a ledgerline.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	applyEnv(&cfg)
	return &cfg, nil
}

// Environment overrides, applied after file parsing. Populated from the
// process environment or a .env file loaded at startup.
const (
	EnvDatabasePath = "LEDGERLINE_DB"
	EnvLogLevel     = "LEDGERLINE_LOG_LEVEL"
)

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvDatabasePath); v != "" {
		cfg.Storage.DatabasePath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new ledger.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			DatabasePath: "ledgerline.db",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Matching: MatchingConfig{
			StrongSimilarityMin: 90,
			FuzzySimilarityMin:  70,
			DateWindowHours:     24,
			AmountTolerancePct:  0.01,
			StoreTimeoutSeconds: 10,
			BatchConcurrency:    4,
		},
	}
}
