package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rustyeddy/stocksim/journal"
	"github.com/rustyeddy/stocksim/market"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config represents the complete simulator configuration
type Config struct {
	Account AccountConfig `json:"account" yaml:"account"`
	Market  MarketConfig  `json:"market" yaml:"market"`
	State   StateConfig   `json:"state" yaml:"state"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
}

// AccountConfig sets up a fresh portfolio
type AccountConfig struct {
	Currency     string `json:"currency" yaml:"currency"`
	StartingCash Amount `json:"starting_cash" yaml:"starting_cash"`
}

// MarketConfig overrides the built-in catalog when Instruments is non-empty
type MarketConfig struct {
	Instruments []InstrumentConfig `json:"instruments,omitempty" yaml:"instruments,omitempty"`
}

type InstrumentConfig struct {
	Symbol string `json:"symbol" yaml:"symbol"`
	Name   string `json:"name" yaml:"name"`
	Price  Amount `json:"price" yaml:"price"`
}

// StateConfig points at the saved portfolio. A ".xz" suffix compresses it.
type StateConfig struct {
	Path string `json:"path" yaml:"path"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type    string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	CSVPath string `json:"csv_path,omitempty" yaml:"csv_path,omitempty"`
	DBPath  string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// Amount is a decimal that reads and writes as a plain YAML scalar.
type Amount struct {
	decimal.Decimal
}

func NewAmount(s string) Amount {
	return Amount{decimal.RequireFromString(s)}
}

func (a Amount) MarshalYAML() (any, error) {
	return a.StringFixed(2), nil
}

func (a *Amount) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: amount must be a number", n.Line)
	}
	d, err := decimal.NewFromString(strings.TrimSpace(n.Value))
	if err != nil {
		return fmt.Errorf("line %d: amount %q: %w", n.Line, n.Value, err)
	}
	a.Decimal = d
	return nil
}

// LoadFromFile loads configuration from a file (JSON or YAML based on extension)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = &Config{}
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if !market.ValidCurrency(c.Account.Currency) {
		return fmt.Errorf("account.currency %q is not an ISO currency code", c.Account.Currency)
	}
	if !c.Account.StartingCash.IsPositive() {
		return fmt.Errorf("account.starting_cash must be positive")
	}
	if _, err := c.Catalog(); err != nil {
		return fmt.Errorf("market.instruments: %w", err)
	}
	if c.State.Path == "" {
		return fmt.Errorf("state.path is required")
	}
	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.CSVPath == "" {
			return fmt.Errorf("journal csv_path required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	return nil
}

// Catalog builds the market from the configured instruments, or returns the
// built-in catalog when none are configured.
func (c *Config) Catalog() (*market.Catalog, error) {
	if len(c.Market.Instruments) == 0 {
		return market.DefaultCatalog(), nil
	}
	insts := make([]market.Instrument, 0, len(c.Market.Instruments))
	for _, ic := range c.Market.Instruments {
		insts = append(insts, market.Instrument{
			Symbol: ic.Symbol,
			Name:   ic.Name,
			Price:  ic.Price.Decimal,
		})
	}
	return market.NewCatalog(insts...)
}

// OpenJournal opens the configured journal backend. Journaling that is
// switched off yields journal.Discard.
func (c *Config) OpenJournal() (journal.Journal, error) {
	switch c.Journal.Type {
	case "csv":
		return journal.NewCSV(c.Journal.CSVPath)
	case "sqlite":
		return journal.NewSQLite(c.Journal.DBPath)
	default:
		return journal.Discard, nil
	}
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			Currency:     market.DefaultCurrency,
			StartingCash: NewAmount("10000.00"),
		},
		State: StateConfig{
			Path: "portfolio.json",
		},
		Journal: JournalConfig{
			Type: "none",
		},
	}
}
