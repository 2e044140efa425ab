// Package config handles guardrail configuration stored in .guardrail/config.json.
// Every field has a default so a project with no config file still gets a fully
// working setup. Environment variables (GUARDRAIL_*) override file values.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// GuardrailDir is the per-project state directory.
	GuardrailDir = ".guardrail"

	// ConfigFile is the config file name inside GuardrailDir.
	ConfigFile = "config.json"

	// CurrentVersion is the config schema version written by Save.
	CurrentVersion = 1
)

// Config holds all guardrail configuration.
type Config struct {
	Version int `json:"version"`

	Project   ProjectConfig   `json:"project"`
	Rules     RulesConfig     `json:"rules"`
	Generator GeneratorConfig `json:"generator"`
	Checks    ChecksConfig    `json:"checks"`
	Hooks     HooksConfig     `json:"hooks"`
	Server    ServerConfig    `json:"server"`
	Logging   LoggingConfig   `json:"logging"`
}

// ProjectConfig identifies the project guardrail manages.
type ProjectConfig struct {
	Name string `json:"name,omitempty"`
}

// RulesConfig configures rule document management.
type RulesConfig struct {
	// Dir is where rendered rule documents live, relative to the project root.
	Dir string `json:"dir"`

	// Documents limits which built-in documents `rules init` renders.
	// Empty means all of them.
	Documents []string `json:"documents,omitempty"`
}

// GeneratorConfig configures the component scaffolder.
type GeneratorConfig struct {
	OutputDir   string `json:"output_dir"`
	Style       string `json:"style"`   // function, arrow
	Styling     string `json:"styling"` // css-modules, styled, none
	WithTests   bool   `json:"with_tests"`
	WithStories bool   `json:"with_stories"`
}

// ChecksConfig configures the enforcement check engine.
type ChecksConfig struct {
	// Include globs select files to check. Matched against the base name or
	// the slash-separated relative path.
	Include []string `json:"include,omitempty"`

	// Exclude lists directory names that are never descended into.
	Exclude []string `json:"exclude,omitempty"`

	// Concurrency bounds the parallel checker runners. 0 means NumCPU.
	Concurrency int `json:"concurrency,omitempty"`

	// Checkers maps checker ID to its settings. Unlisted checkers run with
	// their built-in defaults.
	Checkers map[string]CheckerConfig `json:"checkers,omitempty"`
}

// CheckerConfig holds per-checker settings.
type CheckerConfig struct {
	Severity string   `json:"severity,omitempty"` // error, warning, off
	Patterns []string `json:"patterns,omitempty"` // extra regex patterns, checker-specific
}

// HooksConfig configures git hook installation.
type HooksConfig struct {
	PreCommit  bool `json:"pre_commit"`
	FailOnWarn bool `json:"fail_on_warn"`
}

// ServerConfig configures the diagnostics server started by `guard serve`.
type ServerConfig struct {
	Addr       string `json:"addr"`
	DebounceMS int    `json:"debounce_ms"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Rules: RulesConfig{
			Dir: ".",
		},
		Generator: GeneratorConfig{
			OutputDir:   "src/components",
			Style:       "function",
			Styling:     "css-modules",
			WithTests:   true,
			WithStories: true,
		},
		Checks: ChecksConfig{
			Include: []string{"**/*.js", "**/*.jsx", "**/*.ts", "**/*.tsx", "**/*.md"},
			Exclude: []string{"node_modules", "dist", "build", "coverage", ".git", GuardrailDir},
		},
		Hooks: HooksConfig{
			PreCommit: true,
		},
		Server: ServerConfig{
			Addr:       "127.0.0.1:7414",
			DebounceMS: 400,
		},
		Logging: LoggingConfig{
			DebugMode: false,
			Format:    "text",
		},
	}
}

// Path returns the config file path for a project root.
func Path(root string) string {
	return filepath.Join(root, GuardrailDir, ConfigFile)
}

// Load reads config.json from the project root. A missing file yields
// DefaultConfig. Values present in the file override defaults; environment
// overrides are applied last.
func Load(root string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path(root))
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ConfigFile, err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the config to .guardrail/config.json, creating the directory
// if needed.
func (c *Config) Save(root string) error {
	path := Path(root)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	c.Version = CurrentVersion
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// FindProjectRoot walks up from the working directory looking for a
// .guardrail directory, then a .git directory. Falls back to the working
// directory itself.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	originalDir := dir
	for {
		if _, err := os.Stat(filepath.Join(dir, GuardrailDir)); err == nil {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return originalDir, nil
}

// applyEnvOverrides layers GUARDRAIL_* environment variables over the loaded
// config. Empty values are ignored.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("GUARDRAIL_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Logging.DebugMode = b
		}
	}
	if v := os.Getenv("GUARDRAIL_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("GUARDRAIL_SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("GUARDRAIL_OUTPUT_DIR"); v != "" {
		c.Generator.OutputDir = v
	}
	if v := os.Getenv("GUARDRAIL_FAIL_ON_WARN"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Hooks.FailOnWarn = b
		}
	}
	if v := os.Getenv("GUARDRAIL_CHECKS_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Checks.Concurrency = n
		}
	}
}

// CheckerSeverity returns the configured severity for a checker ID, or the
// given default when unset.
func (c *ChecksConfig) CheckerSeverity(id, def string) string {
	if cc, ok := c.Checkers[id]; ok && cc.Severity != "" {
		return strings.ToLower(cc.Severity)
	}
	return def
}

// ExtraPatterns returns user-supplied patterns for a checker ID.
func (c *ChecksConfig) ExtraPatterns(id string) []string {
	if cc, ok := c.Checkers[id]; ok {
		return cc.Patterns
	}
	return nil
}
