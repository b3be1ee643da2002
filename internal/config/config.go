package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/tallybook/tally/internal/accounts"
)

const (
	// FileName is the config file at the root of a book.
	FileName = "tally.yaml"
	// EnvFile holds local overrides next to the config file.
	EnvFile = ".env"

	EnvLogLevel     = "TALLY_LOG_LEVEL"
	EnvLogFormat    = "TALLY_LOG_FORMAT"
	EnvBaseCurrency = "TALLY_BASE_CURRENCY"
)

// Config represents the top-level tally.yaml configuration.
type Config struct {
	Business     BusinessConfig `yaml:"business"`
	Fiscal       FiscalConfig   `yaml:"fiscal"`
	BankAccounts []BankAccount  `yaml:"bank_accounts,omitempty"`
	Ledger       LedgerConfig   `yaml:"ledger"`
	Logging      LoggingConfig  `yaml:"logging"`
	Git          GitConfig      `yaml:"git"`
}

// BusinessConfig identifies the business and its unit of account.
type BusinessConfig struct {
	Name         string `yaml:"name"`
	BaseCurrency string `yaml:"base_currency"`
}

// FiscalConfig defines the fiscal year boundaries.
type FiscalConfig struct {
	YearStart string `yaml:"year_start"` // "MM-DD" format, e.g. "01-01"
}

// BankAccount maps a bank export to a chart-of-accounts entry.
type BankAccount struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"` // importer parser name, e.g. "chase"
	LastFour  string `yaml:"last_four"`
	AccountID string `yaml:"account_id"`
}

// LedgerConfig names the accounts that play a fixed role in reports and schedulers.
type LedgerConfig struct {
	RetainedEarnings        string `yaml:"retained_earnings"`
	CashGroup               string `yaml:"cash_group"`
	FixedAssetGroup         string `yaml:"fixed_asset_group"`
	DepreciationExpense     string `yaml:"depreciation_expense"`
	AccumulatedDepreciation string `yaml:"accumulated_depreciation"`
	UncategorizedIncome     string `yaml:"uncategorized_income"`
	UncategorizedExpense    string `yaml:"uncategorized_expense"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or console
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a tally.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
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

// ApplyEnv overrides cfg from the environment and from the .env file in root.
// Variables already set in the process environment win over the file.
func ApplyEnv(cfg *Config, root string) error {
	fileEnv, err := godotenv.Read(filepath.Join(root, EnvFile))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading %s: %w", EnvFile, err)
	}
	lookup := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fileEnv[key]
	}

	if v := lookup(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := lookup(EnvLogFormat); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := lookup(EnvBaseCurrency); v != "" {
		cfg.Business.BaseCurrency = strings.ToUpper(v)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new book.
func Default(businessName, baseCurrency string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name:         businessName,
			BaseCurrency: strings.ToUpper(baseCurrency),
		},
		Fiscal: FiscalConfig{
			YearStart: "01-01",
		},
		Ledger: LedgerConfig{
			RetainedEarnings:        accounts.RetainedEarningsID,
			CashGroup:               accounts.CashGroupID,
			FixedAssetGroup:         accounts.FixedAssetsGroupID,
			DepreciationExpense:     accounts.DepreciationExpenseID,
			AccumulatedDepreciation: accounts.AccumulatedDepreciationID,
			UncategorizedIncome:     accounts.ConsultingRevenueID,
			UncategorizedExpense:    accounts.GroceriesID,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Tally",
			AuthorEmail: "tally@localhost",
		},
	}
}
