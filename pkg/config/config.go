// Package config loads chrono configuration from TOML, YAML, or JSON
// files, falling back to defaults when no file is present.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for chrono.
type Config struct {
	// Timeline layout settings
	Timeline TimelineConfig `koanf:"timeline" toml:"timeline"`

	// History loading and analysis generation
	Analysis AnalysisConfig `koanf:"analysis" toml:"analysis"`

	// Cache settings
	Cache CacheConfig `koanf:"cache" toml:"cache"`

	// Output settings
	Output OutputConfig `koanf:"output" toml:"output"`
}

// TimelineConfig controls bucketing, positioning, and clustering.
type TimelineConfig struct {
	// Granularity of period buckets: day, week, two_weeks, month, quarter, year.
	Granularity string `koanf:"granularity" toml:"granularity"`
	// ThresholdPreset names a clustering preset: tight, normal, loose, very_loose.
	ThresholdPreset string `koanf:"threshold_preset" toml:"threshold_preset"`
	// Threshold overrides the preset with an explicit percentage when > 0.
	Threshold float64 `koanf:"threshold" toml:"threshold"`
	// GroupBy selects the default analysis grouping: type, author, date.
	GroupBy string `koanf:"group_by" toml:"group_by"`
}

// AnalysisConfig controls commit loading and derived metrics.
type AnalysisConfig struct {
	// Days limits git history to the last n days. Zero means unlimited.
	Days int `koanf:"days" toml:"days"`
	// MaxThemes caps the number of theme segments.
	MaxThemes int `koanf:"max_themes" toml:"max_themes"`
	// File is the analysis document path.
	File string `koanf:"file" toml:"file"`
}

// CacheConfig controls caching behavior.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled" toml:"enabled"`
	Dir     string `koanf:"dir" toml:"dir"`
	TTL     int    `koanf:"ttl" toml:"ttl"` // TTL in hours
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format" toml:"format"` // text, json, markdown
	Color   bool   `koanf:"color" toml:"color"`
	Verbose bool   `koanf:"verbose" toml:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Timeline: TimelineConfig{
			Granularity:     "week",
			ThresholdPreset: "normal",
			GroupBy:         "type",
		},
		Analysis: AnalysisConfig{
			Days:      0,
			MaxThemes: 6,
			File:      ".chrono/analyses.json",
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".chrono/cache",
			TTL:     24,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries to load config from standard locations or returns defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"chrono.toml",
		"chrono.yaml",
		"chrono.yml",
		"chrono.json",
		".chrono.toml",
		".chrono.yaml",
		".chrono.yml",
		".chrono.json",
	}

	searchDirs := []string{".", ".chrono"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := Load(path)
				if err == nil {
					return cfg
				}
			}
		}
	}

	return DefaultConfig()
}
