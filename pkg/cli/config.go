package cli

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rill-lang/rill/internal/config"
)

// Config is the optional per-project configuration, read from .rill.yaml
// in the script's directory.
type Config struct {
	// Color controls diagnostic colorization: "auto", "always" or "never".
	Color string `yaml:"color,omitempty"`

	// MaxDepth overrides the evaluator's recursion guard.
	MaxDepth int `yaml:"max_depth,omitempty"`

	// History is the REPL history file path. Defaults to ~/.rill_history.
	History string `yaml:"history,omitempty"`
}

func defaultConfig() *Config {
	return &Config{Color: "auto"}
}

// LoadConfig reads dir/.rill.yaml. A missing file yields the defaults; a
// malformed one is reported via the returned error alongside defaults so
// the run can continue.
func LoadConfig(dir string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(filepath.Join(dir, config.ProjectConfigFile))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return defaultConfig(), err
	}
	if cfg.Color == "" {
		cfg.Color = "auto"
	}
	return cfg, nil
}

// HistoryPath resolves the REPL history file location.
func (c *Config) HistoryPath() string {
	if c.History != "" {
		return c.History
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return config.HistoryFile
	}
	return filepath.Join(home, config.HistoryFile)
}
