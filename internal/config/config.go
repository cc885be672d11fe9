// Package config loads the optional .tsmend.yaml file at the project root.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up relative to the project directory when no
// --config flag is given.
const DefaultFile = ".tsmend.yaml"

// CheckerConfig bounds the type-checker subprocess.
type CheckerConfig struct {
	Command        []string `yaml:"command"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
	Attempts       int      `yaml:"attempts"`
	BackoffSeconds int      `yaml:"backoff_seconds"`
}

// ReportConfig controls the write-once run report.
type ReportConfig struct {
	Enabled      bool   `yaml:"enabled"`
	JSONPath     string `yaml:"json_path"`
	MarkdownPath string `yaml:"markdown_path"`
}

// Config is the full orchestrator configuration. Zero values are filled from
// Default before unmarshalling, so a partial file only overrides what it
// names.
type Config struct {
	Checker                  CheckerConfig `yaml:"checker"`
	Tolerance                int           `yaml:"tolerance"`
	MaxIterationsPerStrategy int           `yaml:"max_iterations_per_strategy"`
	StrategyDelayMS          int           `yaml:"strategy_delay_ms"`
	Report                   ReportConfig  `yaml:"report"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Checker: CheckerConfig{
			Command:        []string{"npx", "tsc", "--noEmit", "--pretty", "false"},
			TimeoutSeconds: 30,
			Attempts:       3,
			BackoffSeconds: 2,
		},
		Tolerance:                1,
		MaxIterationsPerStrategy: 3,
		StrategyDelayMS:          500,
		Report: ReportConfig{
			Enabled:      true,
			JSONPath:     "tsmend-report.json",
			MarkdownPath: "tsmend-report.md",
		},
	}
}

// Load reads a config file over the defaults. A missing file is not an
// error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if len(c.Checker.Command) == 0 {
		return fmt.Errorf("checker.command must not be empty")
	}
	if c.Checker.Attempts < 1 {
		return fmt.Errorf("checker.attempts must be at least 1")
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("tolerance must not be negative")
	}
	if c.MaxIterationsPerStrategy < 1 {
		return fmt.Errorf("max_iterations_per_strategy must be at least 1")
	}
	return nil
}

// CheckerTimeout returns the base subprocess timeout.
func (c Config) CheckerTimeout() time.Duration {
	return time.Duration(c.Checker.TimeoutSeconds) * time.Second
}

// CheckerBackoff returns the delay between checker retries.
func (c Config) CheckerBackoff() time.Duration {
	return time.Duration(c.Checker.BackoffSeconds) * time.Second
}

// StrategyDelay returns the pause inserted between strategy runs.
func (c Config) StrategyDelay() time.Duration {
	return time.Duration(c.StrategyDelayMS) * time.Millisecond
}
