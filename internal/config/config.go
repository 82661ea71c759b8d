package config

import (
	"fmt"
	"os"

	"github.com/gyeh/medcost/internal/schema"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime configuration for a medcheck run.
type Config struct {
	DSN        string
	FilePath   string
	Format     string // "csv", "parquet" or "" to infer from the extension
	OutputPath string
	LogFormat  string // "text" or "json"
	Verbose    bool
	Schemas    []string `yaml:"schemas"` // subset of schema.Names() to run
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	Schemas []string `yaml:"schemas"`
	Format  string   `yaml:"format"`
	Output  string   `yaml:"output"`
}

// LoadFromFile reads a YAML config file and merges its values into Config.
// Values already set from flags win over the file.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if len(c.Schemas) == 0 {
		c.Schemas = yc.Schemas
	}
	if c.Format == "" {
		c.Format = yc.Format
	}
	if c.OutputPath == "" {
		c.OutputPath = yc.Output
	}
	return c.validateSchemas()
}

// validateSchemas checks that every entry in Schemas is a known schema name.
// If Schemas is empty, it defaults to all schema names.
func (c *Config) validateSchemas() error {
	if len(c.Schemas) == 0 {
		c.Schemas = schema.Names()
		return nil
	}
	for _, name := range c.Schemas {
		if _, ok := schema.Lookup(name); !ok {
			return fmt.Errorf("unknown schema %q in config", name)
		}
	}
	return nil
}

// Validate checks required fields and returns an error if the config is invalid.
func (c *Config) Validate() error {
	if c.FilePath == "" {
		return fmt.Errorf("--file is required")
	}
	if _, err := os.Stat(c.FilePath); err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}
	if err := c.validateSchemas(); err != nil {
		return err
	}
	if c.OutputPath != "" && len(c.Schemas) > 1 {
		return fmt.Errorf("--out needs exactly one schema, got %d", len(c.Schemas))
	}
	return nil
}

// ValidateWithDSN checks both file and DSN fields.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or MEDCOST_DB_URL is required")
	}
	return nil
}
