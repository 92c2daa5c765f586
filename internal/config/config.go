// Package config loads the engine configuration from an optional YAML
// file, merging file values over defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the conventional config location, relative to
// the working directory.
const DefaultConfigFile = ".scenarist.yaml"

// Config holds the engine configuration options.
type Config struct {
	// FeaturesDir is the root of the feature specification tree.
	FeaturesDir string `yaml:"features_dir"`

	// AutomationDir is the root of the automation sources indexed for
	// gap analysis.
	AutomationDir string `yaml:"automation_dir"`

	// IndexDBPath is the path of the artifact index database.
	IndexDBPath string `yaml:"index_db_path"`

	// FileExtensions lists specification file extensions.
	FileExtensions []string `yaml:"file_extensions"`

	// ExcludeDirs lists directory names skipped while scanning.
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// CacheCapacity bounds the corpus query cache.
	CacheCapacity int `yaml:"cache_capacity"`

	// SearchLimit is the default maximum number of search results.
	SearchLimit int `yaml:"search_limit"`

	// MinScore is the default relevance search score floor.
	MinScore float64 `yaml:"min_score"`

	// LogLevel sets logging verbosity (trace, debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		FeaturesDir:    "features",
		AutomationDir:  "automation",
		IndexDBPath:    ".scenarist/index.db",
		FileExtensions: []string{".feature", ".txt"},
		ExcludeDirs:    []string{"node_modules", "vendor"},
		CacheCapacity:  128,
		SearchLimit:    10,
		MinScore:       0.1,
		LogLevel:       "info",
	}
}

// LoadConfig loads configuration from path. A missing file is not an
// error: defaults are returned. A malformed file is an error.
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

	if fileCfg.FeaturesDir != "" {
		cfg.FeaturesDir = fileCfg.FeaturesDir
	}
	if fileCfg.AutomationDir != "" {
		cfg.AutomationDir = fileCfg.AutomationDir
	}
	if fileCfg.IndexDBPath != "" {
		cfg.IndexDBPath = fileCfg.IndexDBPath
	}
	if len(fileCfg.FileExtensions) > 0 {
		cfg.FileExtensions = fileCfg.FileExtensions
	}
	if len(fileCfg.ExcludeDirs) > 0 {
		cfg.ExcludeDirs = fileCfg.ExcludeDirs
	}
	if fileCfg.CacheCapacity > 0 {
		cfg.CacheCapacity = fileCfg.CacheCapacity
	}
	if fileCfg.SearchLimit > 0 {
		cfg.SearchLimit = fileCfg.SearchLimit
	}
	if fileCfg.MinScore > 0 {
		cfg.MinScore = fileCfg.MinScore
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}

	return cfg, nil
}
