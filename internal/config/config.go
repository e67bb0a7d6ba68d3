package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for leakgate.
type FileConfig struct {
	Format      *string `yaml:"format,omitempty"`
	NoColor     *bool   `yaml:"no_color,omitempty"`
	Workers     *int    `yaml:"workers,omitempty"`
	LogLevel    *string `yaml:"log_level,omitempty"`
	AuditLog    *string `yaml:"audit_log,omitempty"`
	DecisionDir *string `yaml:"decision_dir,omitempty"`
}

// ErrNotFound is returned when no config file exists at the searched places.
var ErrNotFound = errors.New("no config file")

var formats = map[string]bool{"text": true, "json": true, "sarif": true}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated and numeric fields.
func (c FileConfig) Validate() error {
	if c.Format != nil && !formats[*c.Format] {
		return fmt.Errorf("unknown format %q (want text, json or sarif)", *c.Format)
	}
	if c.Workers != nil && *c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", *c.Workers)
	}
	return nil
}

// LoadLocal searches for a config file in the scanned root.
// It supports .leakgate.yml/.yaml and leakgate.yml/.yaml.
// The scanned tree is not trusted to choose where leakgate writes, so
// path-valued keys (audit_log, decision_dir) are dropped from the result.
func LoadLocal(root string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".leakgate.yml", ".leakgate.yaml", "leakgate.yml", "leakgate.yaml"} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			cfg, err := LoadFile(p)
			if err != nil {
				return cfg, err
			}
			cfg.AuditLog = nil
			cfg.DecisionDir = nil
			return cfg, nil
		}
	}
	return cfg, ErrNotFound
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, ErrNotFound
	}
	p := filepath.Join(base, "leakgate", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, ErrNotFound
}
