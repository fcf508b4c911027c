// Package config loads and validates the process-wide sync configuration.
// The configuration is read once before a run and never mutated.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Mode selects the data flow direction for the whole run.
type Mode string

const (
	ModeExport Mode = "export"
	ModeImport Mode = "import"
)

// Format selects the file codec for the whole run.
// Its value doubles as the file extension.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Connection describes how to reach a database: an adapter type alias and
// the engine-specific connection url.
type Connection struct {
	Type string `yaml:"type"`
	URL  string `yaml:"url"`
}

type Config struct {
	Source      Connection `yaml:"source"`
	Destination Connection `yaml:"destination"`
	Tables      []string   `yaml:"tables"`
	Folder      string     `yaml:"folder"`
	Format      Format     `yaml:"format"`
	Mode        Mode       `yaml:"mode"`
}

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	var cfg Config
	err = yaml.Unmarshal(raw, &cfg)
	if err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Mode {
	case ModeExport, ModeImport:
	default:
		return fmt.Errorf("unknown mode %q (want %q or %q)", c.Mode, ModeExport, ModeImport)
	}

	switch c.Format {
	case FormatCSV, FormatXLSX:
	default:
		return fmt.Errorf("unknown format %q (want %q or %q)", c.Format, FormatCSV, FormatXLSX)
	}

	if len(c.Tables) == 0 {
		return errors.New("no tables configured")
	}
	if c.Folder == "" {
		return errors.New("no file folder configured")
	}

	conn := c.ActiveConnection()
	if conn.Type == "" || conn.URL == "" {
		return fmt.Errorf("mode %q needs a connection with both type and url", c.Mode)
	}

	return nil
}

// ActiveConnection returns the connection the configured mode operates on:
// the source for exports, the destination for imports.
func (c *Config) ActiveConnection() Connection {
	if c.Mode == ModeImport {
		return c.Destination
	}
	return c.Source
}
