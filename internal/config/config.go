// Package config provides configuration loading and structs for the lookalike pipeline.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug      bool             `yaml:"debug"`
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
	Lookalike  LookalikeConfig  `yaml:"lookalike"`
	Similarity SimilarityConfig `yaml:"similarity"`
	Watch      WatchConfig      `yaml:"watch"`
}

// InputConfig describes where the customers, products, and transactions tables come from.
type InputConfig struct {
	// Format is one of "csv", "xlsx", or "sqlite".
	Format           string      `yaml:"format"`
	CustomersPath    string      `yaml:"customers_path"`
	ProductsPath     string      `yaml:"products_path"`
	TransactionsPath string      `yaml:"transactions_path"`
	WorkbookPath     string      `yaml:"workbook_path"`
	DatabasePath     string      `yaml:"database_path"`
	Delimiter        string      `yaml:"delimiter"`
	Sheets           SheetConfig `yaml:"sheets"`
}

// SheetConfig names the workbook sheets (xlsx) or tables (sqlite) for each record set.
type SheetConfig struct {
	Customers    string `yaml:"customers"`
	Products     string `yaml:"products"`
	Transactions string `yaml:"transactions"`
}

// OutputConfig holds the lookalike output file settings.
type OutputConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
}

// LookalikeConfig holds ranking settings.
type LookalikeConfig struct {
	TopK int `yaml:"top_k"`
	// QueryCount selects the first N customers (ascending ID) when QueryIDs is empty.
	// Nil means the default; 0 means every customer.
	QueryCount *int     `yaml:"query_count"`
	QueryIDs   []string `yaml:"query_ids"`
}

// QueryCountOrDefault returns the configured query count, or DefaultQueryCount when unset.
func (l *LookalikeConfig) QueryCountOrDefault() int {
	if l.QueryCount != nil {
		return *l.QueryCount
	}
	return DefaultQueryCount
}

// SimilarityConfig holds matrix computation settings.
type SimilarityConfig struct {
	// Workers bounds the row-parallel matrix fill; 0 uses GOMAXPROCS.
	Workers int `yaml:"workers"`
}

// WatchConfig holds input watch settings.
type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	cfg.ExpandPaths(filepath.Dir(path))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault behaves like Load but returns a default config when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = &Config{}
		ApplyDefaults(cfg)
		return cfg, nil
	}
	return cfg, err
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ExpandPaths resolves every file path in cfg against configDir.
func (c *Config) ExpandPaths(configDir string) {
	c.Input.CustomersPath = expandPath(c.Input.CustomersPath, configDir)
	c.Input.ProductsPath = expandPath(c.Input.ProductsPath, configDir)
	c.Input.TransactionsPath = expandPath(c.Input.TransactionsPath, configDir)
	c.Input.WorkbookPath = expandPath(c.Input.WorkbookPath, configDir)
	c.Input.DatabasePath = expandPath(c.Input.DatabasePath, configDir)
	c.Output.Path = expandPath(c.Output.Path, configDir)
}

// Validate reports settings that cannot produce a run.
func (c *Config) Validate() error {
	switch c.Input.Format {
	case FormatCSV, FormatXLSX, FormatSQLite:
	default:
		return fmt.Errorf("unknown input format %q", c.Input.Format)
	}
	switch c.Output.Format {
	case OutputCSV, OutputJSON:
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}
	if c.Lookalike.TopK <= 0 {
		return fmt.Errorf("lookalike.top_k must be positive, got %d", c.Lookalike.TopK)
	}
	if n := c.Lookalike.QueryCountOrDefault(); n < 0 {
		return fmt.Errorf("lookalike.query_count must not be negative, got %d", n)
	}
	if len([]rune(c.Input.Delimiter)) != 1 {
		return fmt.Errorf("input.delimiter must be a single character, got %q", c.Input.Delimiter)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are left relative to the working directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
