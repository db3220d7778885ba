package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/harrison/rfind/internal/glob"
	"gopkg.in/yaml.v3"
)

// HistoryConfig represents search history configuration
type HistoryConfig struct {
	// Enabled records every search in the history database
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the history database, relative paths are
	// resolved against the rfind home directory
	DBPath string `yaml:"db_path"`
}

// Config represents rfind configuration options
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where run logs are written (empty = console only)
	LogDir string `yaml:"log_dir"`

	// IgnoreFolders replaces the default list of folders never expanded
	IgnoreFolders []string `yaml:"ignore_folders"`

	// AutoRecurse searches patterns without separators at every depth
	AutoRecurse bool `yaml:"auto_recurse"`

	// History contains search history configuration
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel:      "info",
		LogDir:        "",
		IgnoreFolders: slices.Clone(glob.DefaultIgnoreFolders),
		AutoRecurse:   false,
		History: HistoryConfig{
			Enabled: false,
			DBPath:  "history.db",
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var yamlCfg Config
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from file (merging with defaults)
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(yamlCfg.LogLevel)
	}
	if yamlCfg.LogDir != "" {
		cfg.LogDir = yamlCfg.LogDir
	}
	if yamlCfg.AutoRecurse {
		cfg.AutoRecurse = true
	}

	// Keys that may legitimately be set to their zero value need the raw
	// document to tell "absent" from "empty"
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if _, exists := rawMap["ignore_folders"]; exists {
			cfg.IgnoreFolders = yamlCfg.IgnoreFolders
			if cfg.IgnoreFolders == nil {
				cfg.IgnoreFolders = []string{}
			}
		}

		if historySection, exists := rawMap["history"]; exists && historySection != nil {
			historyMap, _ := historySection.(map[string]interface{})
			if _, exists := historyMap["enabled"]; exists {
				cfg.History.Enabled = yamlCfg.History.Enabled
			}
			if _, exists := historyMap["db_path"]; exists {
				cfg.History.DBPath = yamlCfg.History.DBPath
			}
		}
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .rfind/config.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, homeDirName, configFileName))
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(logLevel *string, logDir *string, autoRecurse *bool, noIgnore *bool, history *bool) {
	if logLevel != nil {
		c.LogLevel = strings.ToLower(*logLevel)
	}
	if logDir != nil {
		c.LogDir = *logDir
	}
	if autoRecurse != nil {
		c.AutoRecurse = *autoRecurse
	}
	if noIgnore != nil && *noIgnore {
		c.IgnoreFolders = []string{}
	}
	if history != nil {
		c.History.Enabled = *history
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	for _, name := range c.IgnoreFolders {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("ignore_folders cannot contain empty names")
		}
		if strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("ignore_folders entry %q must be a folder name, not a path", name)
		}
	}

	if c.History.Enabled && c.History.DBPath == "" {
		return fmt.Errorf("history.db_path cannot be empty when history is enabled")
	}

	return nil
}

// GlobOptions returns the pattern options described by the configuration.
func (c *Config) GlobOptions() glob.Options {
	opts := glob.DefaultOptions()
	opts.IgnoreFolders = slices.Clone(c.IgnoreFolders)
	if opts.IgnoreFolders == nil {
		opts.IgnoreFolders = []string{}
	}
	opts.AutoRecurse = c.AutoRecurse
	return opts
}
