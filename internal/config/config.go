package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v8"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/siklus/internal/closing"
	"github.com/cleared-dev/siklus/internal/statement"
)

// FileName is the workspace config file.
const FileName = "siklus.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SIKLUS_"

// Store backends.
const (
	BackendFile     = "file"
	BackendDir      = "dir"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config represents the top-level siklus.yaml configuration.
type Config struct {
	Business       BusinessConfig       `yaml:"business"`
	Store          StoreConfig          `yaml:"store"`
	Classification ClassificationConfig `yaml:"classification"`
	Closing        ClosingConfig        `yaml:"closing"`
	Journal        JournalConfig        `yaml:"journal"`
	Export         ExportConfig         `yaml:"export"`
	Log            LogConfig            `yaml:"log"`
	Git            GitConfig            `yaml:"git"`
}

// BusinessConfig identifies the business and its reporting currency.
type BusinessConfig struct {
	Name     string `yaml:"name"`
	Currency string `yaml:"currency" env:"CURRENCY"`
}

// StoreConfig selects where user records live.
type StoreConfig struct {
	Backend     string `yaml:"backend" env:"STORE_BACKEND"`
	Path        string `yaml:"path" env:"STORE_PATH"` // file or directory, relative to the workspace
	RedisAddr   string `yaml:"redis_addr,omitempty" env:"REDIS_ADDR"`
	RedisPrefix string `yaml:"redis_prefix,omitempty" env:"REDIS_PREFIX"`
	PostgresDSN string `yaml:"postgres_dsn,omitempty" env:"POSTGRES_DSN"`
}

// ClassificationConfig controls how trial balance accounts are grouped
// into statement lines.
type ClassificationConfig struct {
	Strict    bool     `yaml:"strict" env:"CLASSIFICATION_STRICT"`
	Revenue   []string `yaml:"revenue"`
	Expense   []string `yaml:"expense"`
	Asset     []string `yaml:"asset"`
	Liability []string `yaml:"liability"`
}

// ClosingConfig names the accounts used by closing entries.
type ClosingConfig struct {
	RevenueAccount string `yaml:"revenue_account"`
	ExpenseAccount string `yaml:"expense_account"`
	SummaryAccount string `yaml:"summary_account"`
	CapitalAccount string `yaml:"capital_account"`
	LegacyLossSign bool   `yaml:"legacy_loss_sign"`
}

// JournalConfig controls journal input validation.
type JournalConfig struct {
	RestrictAccounts bool `yaml:"restrict_accounts" env:"RESTRICT_ACCOUNTS"`
}

// ExportConfig controls the spreadsheet export.
type ExportConfig struct {
	FileName string `yaml:"file_name"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"` // console or json
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit" env:"GIT_AUTO_COMMIT"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a siklus.yaml file from disk. Keys missing from the file keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadWithEnv loads path, or the defaults when path does not exist, then
// applies the optional dotenv file and SIKLUS_* environment overrides.
func LoadWithEnv(path, dotenvPath string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = Default(""), nil
	}
	if err != nil {
		return nil, err
	}

	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", dotenvPath, err)
		}
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg fields from SIKLUS_* environment variables.
// Unset variables leave the field as is.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}
	return nil
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

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile, BackendDir:
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the %s backend", c.Store.Backend)
		}
	case BackendRedis:
		if c.Store.RedisAddr == "" {
			return errors.New("store.redis_addr is required for the redis backend")
		}
	case BackendPostgres:
		if c.Store.PostgresDSN == "" {
			return errors.New("store.postgres_dsn is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	for _, f := range []struct{ key, name string }{
		{"closing.revenue_account", c.Closing.RevenueAccount},
		{"closing.expense_account", c.Closing.ExpenseAccount},
		{"closing.summary_account", c.Closing.SummaryAccount},
		{"closing.capital_account", c.Closing.CapitalAccount},
	} {
		if strings.TrimSpace(f.name) == "" {
			return fmt.Errorf("%s is required", f.key)
		}
	}
	if c.Log.Format != "" && c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new workspace.
func Default(businessName string) *Config {
	kw := statement.DefaultKeywords()
	closeAccts := closing.DefaultAccounts()
	return &Config{
		Business: BusinessConfig{
			Name:     businessName,
			Currency: "IDR",
		},
		Store: StoreConfig{
			Backend:     BackendFile,
			Path:        "data_user.json",
			RedisPrefix: "siklus:",
		},
		Classification: ClassificationConfig{
			Revenue:   kw.Revenue,
			Expense:   kw.Expense,
			Asset:     kw.Asset,
			Liability: kw.Liability,
		},
		Closing: ClosingConfig{
			RevenueAccount: closeAccts.Revenue,
			ExpenseAccount: closeAccts.Expense,
			SummaryAccount: closeAccts.Summary,
			CapitalAccount: closeAccts.Capital,
		},
		Export: ExportConfig{
			FileName: "laporan_keuangan.xlsx",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Siklus",
			AuthorEmail: "siklus@localhost",
		},
	}
}
