package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	fsutil "github.com/kk-code-lab/fxplorer/internal/fs"
	"github.com/kk-code-lab/fxplorer/internal/logger"
)

// Config represents fxplorer configuration options
type Config struct {
	// ShowHidden lists hidden entries and searches inside hidden directories
	ShowHidden bool `yaml:"show_hidden" toml:"show_hidden"`

	// StartDir is the directory opened on launch (empty = home directory)
	StartDir string `yaml:"start_dir" toml:"start_dir"`

	// HiddenRule is "auto", "dot" or "attribute"
	HiddenRule string `yaml:"hidden_rule" toml:"hidden_rule"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level" toml:"log_level"`

	// LogFile receives log output; empty disables logging
	LogFile string `yaml:"log_file" toml:"log_file"`

	// TickInterval is how often search results are drained into the view
	TickInterval time.Duration `yaml:"-" toml:"-"`

	// ResultBuffer is the capacity of each search session's result channel
	ResultBuffer int `yaml:"result_buffer" toml:"result_buffer"`
}

// fileConfig mirrors Config with the duration as text.
type fileConfig struct {
	ShowHidden   *bool  `yaml:"show_hidden" toml:"show_hidden"`
	StartDir     string `yaml:"start_dir" toml:"start_dir"`
	HiddenRule   string `yaml:"hidden_rule" toml:"hidden_rule"`
	LogLevel     string `yaml:"log_level" toml:"log_level"`
	LogFile      string `yaml:"log_file" toml:"log_file"`
	TickInterval string `yaml:"tick_interval" toml:"tick_interval"`
	ResultBuffer int    `yaml:"result_buffer" toml:"result_buffer"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		ShowHidden:   false,
		HiddenRule:   "auto",
		LogLevel:     "info",
		TickInterval: 50 * time.Millisecond,
		ResultBuffer: 256,
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			home = "."
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "fxplorer", "config.yaml")
}

// LoadConfig loads configuration from path. A missing file yields the
// defaults; a malformed one is an error. ".toml" files are read as TOML,
// anything else as YAML.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &fc)
	} else {
		err = yaml.Unmarshal(data, &fc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.ShowHidden != nil {
		cfg.ShowHidden = *fc.ShowHidden
	}
	if fc.StartDir != "" {
		cfg.StartDir = expandHome(fc.StartDir)
	}
	if fc.HiddenRule != "" {
		cfg.HiddenRule = fc.HiddenRule
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogFile != "" {
		cfg.LogFile = expandHome(fc.LogFile)
	}
	if fc.TickInterval != "" {
		tick, err := time.ParseDuration(fc.TickInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid tick_interval %q: %w", fc.TickInterval, err)
		}
		cfg.TickInterval = tick
	}
	if fc.ResultBuffer != 0 {
		cfg.ResultBuffer = fc.ResultBuffer
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	rule, err := fsutil.ParseHiddenRule(c.HiddenRule)
	if err != nil {
		return fmt.Errorf("invalid hidden_rule: %w", err)
	}
	if rule == fsutil.RuleAttribute && !fsutil.AttributesSupported() {
		return fmt.Errorf("invalid hidden_rule %q: %w", c.HiddenRule, fsutil.ErrAttributesUnsupported)
	}
	if !logger.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %s", c.TickInterval)
	}
	if c.ResultBuffer <= 0 {
		return fmt.Errorf("result_buffer must be positive, got %d", c.ResultBuffer)
	}
	return nil
}

// Rule returns the parsed hidden rule. Call after Validate.
func (c *Config) Rule() fsutil.HiddenRule {
	rule, _ := fsutil.ParseHiddenRule(c.HiddenRule)
	return rule
}

// ResolveStartDir picks the directory to open: override, then StartDir,
// then the home directory, then the working directory.
func (c *Config) ResolveStartDir(override string) (string, error) {
	dir := override
	if dir == "" {
		dir = c.StartDir
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			dir = home
		} else if dir, err = os.Getwd(); err != nil {
			return "", fmt.Errorf("cannot determine start directory: %w", err)
		}
	}
	abs, err := filepath.Abs(expandHome(dir))
	if err != nil {
		return "", fmt.Errorf("cannot resolve %s: %w", dir, err)
	}
	return fsutil.CleanPath(abs), nil
}

func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if len(path) == 1 {
		return home
	}
	if path[1] != '/' && path[1] != '\\' {
		return path
	}
	return filepath.Join(home, path[2:])
}
