package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Repository RepositoryConfig `json:"repository" toml:"repository"`
	Filters    FilterConfig     `json:"filters" toml:"filters"`
	Bugfix     BugfixConfig     `json:"bugfix" toml:"bugfix"`
	Output     OutputConfig     `json:"output" toml:"output"`
	Log        LogConfig        `json:"log" toml:"log"`
}

// RepositoryConfig holds repository defaults.
type RepositoryConfig struct {
	DefaultPath string `json:"defaultPath" toml:"defaultPath"` // Used when a query binds no repository. Default: "."
}

// FilterConfig holds file path filtering options for the stats relation.
type FilterConfig struct {
	Include []string `json:"include" toml:"include"`
	Exclude []string `json:"exclude" toml:"exclude"`
}

// BugfixConfig holds bugfix detection configuration.
type BugfixConfig struct {
	Patterns []string `json:"patterns" toml:"patterns"` // Regex patterns behind is_bugfix()
}

// OutputConfig holds result output defaults.
type OutputConfig struct {
	Format string `json:"format" toml:"format"` // console, json, csv, markdown, ndjson
	Top    int    `json:"top" toml:"top"`       // 0 prints every row
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level       string `json:"level" toml:"level"` // debug, info, warn, error
	Development bool   `json:"development" toml:"development"`
}

// DefaultFileNames are searched, in order, in the working directory and then
// in the home directory when no config path is given.
var DefaultFileNames = []string{".gitsql.json", ".gitsql.toml"}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Repository: RepositoryConfig{
			DefaultPath: ".",
		},
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
		Bugfix: BugfixConfig{
			Patterns: []string{
				`\bfix(ed|es)?\b`,
				`\bbug\b`,
				`\bhotfix\b`,
				`\bpatch\b`,
			},
		},
		Output: OutputConfig{
			Format: "console",
			Top:    0,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// LoadConfig loads configuration from a file, merging with defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = findDefault()
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if isTOML(path) {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return cfg, nil
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to a file, as TOML when path ends in
// .toml and as JSON otherwise.
func SaveConfig(cfg *Config, path string) error {
	if isTOML(path) {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return toml.NewEncoder(f).Encode(cfg)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func findDefault() string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs, home)
	} else if envHome := os.Getenv("HOME"); envHome != "" {
		dirs = append(dirs, envHome)
	}
	for _, dir := range dirs {
		for _, name := range DefaultFileNames {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}
	return ""
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
