// Package config loads sweep's application settings from
// .sweep/config.yaml. Settings cover ambient behavior (verbosity default,
// excluded directories, file size caps, history); the scan rules themselves
// live in the rule file, not here.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the settings file location relative to the working
// directory.
const DefaultConfigPath = ".sweep/config.yaml"

// HistoryConfig controls the scan-history database.
type HistoryConfig struct {
	// Enabled toggles run recording. History failures never fail a scan.
	Enabled bool `yaml:"enabled"`

	// DBPath is the SQLite database location.
	DBPath string `yaml:"db_path"`
}

// Config holds sweep's application settings.
type Config struct {
	// Verbose makes verbose output the default; the --verbose flag still
	// overrides per run.
	Verbose bool `yaml:"verbose"`

	// ExcludeDirs lists directory names skipped during every walk
	// (e.g. ".git"). Empty means walk everything, which matches the
	// scanner's documented behavior.
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// MaxFileSize caps content reads in bytes. Zero means unlimited.
	MaxFileSize int64 `yaml:"max_file_size"`

	// History contains scan-history settings.
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns the settings used when no config file exists:
// nothing excluded, no size cap, history enabled.
func DefaultConfig() *Config {
	return &Config{
		Verbose:     false,
		ExcludeDirs: nil,
		MaxFileSize: 0,
		History: HistoryConfig{
			Enabled: true,
			DBPath:  filepath.Join(".sweep", "history.db"),
		},
	}
}

// LoadConfig loads settings from path, merging file values over defaults.
// A missing file is not an error; a malformed one is.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if fileCfg.Verbose {
		cfg.Verbose = true
	}
	if len(fileCfg.ExcludeDirs) > 0 {
		cfg.ExcludeDirs = fileCfg.ExcludeDirs
	}
	if fileCfg.MaxFileSize > 0 {
		cfg.MaxFileSize = fileCfg.MaxFileSize
	}

	// The history section only overrides fields it actually sets, so a
	// config with just db_path keeps history enabled.
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if historySection, exists := rawMap["history"]; exists && historySection != nil {
			historyMap, _ := historySection.(map[string]interface{})
			if _, exists := historyMap["enabled"]; exists {
				cfg.History.Enabled = fileCfg.History.Enabled
			}
			if _, exists := historyMap["db_path"]; exists {
				cfg.History.DBPath = fileCfg.History.DBPath
			}
		}
	}

	return cfg, nil
}

// LoadConfigFromDir loads settings from dir/.sweep/config.yaml.
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, DefaultConfigPath))
}
