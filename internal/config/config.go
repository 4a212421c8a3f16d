package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kanakku/kanakku/internal/domain"
)

// EnvConfigPath overrides the default config file location
const EnvConfigPath = "KANAKKU_CONFIG"

type Config struct {
	// Database settings
	Database DatabaseConfig `yaml:"database"`

	// Document numbering
	Documents DocumentsConfig `yaml:"documents"`

	// Currency used when printing amounts
	Currency CurrencyConfig `yaml:"currency"`

	Log LogConfig `yaml:"log"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"` // Path to SQLite database
}

type DocumentsConfig struct {
	PurchaseOrderPrefix string `yaml:"purchase_order_prefix"` // e.g. "PO"
	DebitNotePrefix     string `yaml:"debit_note_prefix"`     // e.g. "DN"
	PurchasePrefix      string `yaml:"purchase_prefix"`       // e.g. "PUR"
}

type CurrencyConfig struct {
	Code   string `yaml:"code"`
	Symbol string `yaml:"symbol"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Dir returns ~/.config/kanakku
func Dir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "kanakku")
	}
	return filepath.Join(homeDir, ".config", "kanakku")
}

// DefaultConfigPath returns $KANAKKU_CONFIG or ~/.config/kanakku/config.yaml
func DefaultConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(Dir(), "kanakku.db"),
		},
		Documents: DocumentsConfig{
			PurchaseOrderPrefix: "PO",
			DebitNotePrefix:     "DN",
			PurchasePrefix:      "PUR",
		},
		Currency: CurrencyConfig{
			Code:   "INR",
			Symbol: "₹",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// LoadEnv loads .env files from the working directory and the config
// directory. Variables already set in the environment win, and missing
// files are not an error.
func LoadEnv() error {
	for _, path := range []string{".env", filepath.Join(Dir(), ".env")} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return err
		}
	}
	return nil
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	// If file doesn't exist, return defaults
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates the database directory
func (c *Config) EnsureDirectories() error {
	return os.MkdirAll(filepath.Dir(c.Database.Path), 0755)
}

// Prefix returns the numbering prefix for a document kind
func (c *Config) Prefix(kind domain.DocumentKind) string {
	var p string
	switch kind {
	case domain.KindPurchaseOrder:
		p = c.Documents.PurchaseOrderPrefix
	case domain.KindDebitNote:
		p = c.Documents.DebitNotePrefix
	case domain.KindPurchase:
		p = c.Documents.PurchasePrefix
	}
	if p == "" {
		return DefaultConfig().Prefix(kind)
	}
	return p
}
