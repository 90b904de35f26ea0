// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the application configuration that can be loaded from a
// JSON file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	// Paths
	MasterPath    string `json:"master_path,omitempty"`    // Path to the master document JSON file
	SelectionsDir string `json:"selections_dir,omitempty"` // Directory holding per-slug selection files
	Template      string `json:"template,omitempty"`       // Path to the HTML template
	DistDir       string `json:"dist_dir,omitempty"`       // Output directory for rendered documents

	// Server
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL; empty means file storage

	// Behavior
	APIKey  string `json:"api_key,omitempty"` // Gemini API key for drafting
	Verbose bool   `json:"verbose,omitempty"` // Print detailed progress information
}

// Defaults returns the built-in configuration used when no file or flag
// overrides a value.
func Defaults() Config {
	return Config{
		MasterPath:    "data/master.json",
		SelectionsDir: "data/selections",
		Template:      "templates/base.html",
		DistDir:       "dist",
		Port:          8080,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	// Validate file paths exist (if specified)
	if c.Template != "" {
		if _, err := os.Stat(c.Template); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.Template)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.MasterPath == "" {
		result.MasterPath = defaults.MasterPath
	}
	if result.SelectionsDir == "" {
		result.SelectionsDir = defaults.SelectionsDir
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.DistDir == "" {
		result.DistDir = defaults.DistDir
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
