// Package config loads the biomelink configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConnectTimeout bounds a whole connect attempt unless configured.
const DefaultConnectTimeout = 10 * time.Second

// Config is the on-disk configuration. Keys absent from the file keep their
// Default value; keys present, including explicit false or 0, override it.
type Config struct {
	Enable               bool          `yaml:"enable"`
	RequireConfiguration bool          `yaml:"requireConfiguration"`
	Bin                  string        `yaml:"bin"`
	TmpDir               string        `yaml:"tmpDir"`
	ConnectTimeout       time.Duration `yaml:"connectTimeout"`
	LogLevel             string        `yaml:"logLevel"`
	Trace                bool          `yaml:"trace"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Enable:               true,
		RequireConfiguration: true,
		ConnectTimeout:       DefaultConnectTimeout,
		LogLevel:             "info",
	}
}

// Load decodes the config file over Default. A missing file or an empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return cfg, nil
	}
	expanded, err := expandPath(trimmed)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(expanded)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", expanded, err)
	}
	if cfg.Bin != "" {
		if cfg.Bin, err = expandPath(cfg.Bin); err != nil {
			return nil, err
		}
	}
	if cfg.TmpDir != "" {
		if cfg.TmpDir, err = expandPath(cfg.TmpDir); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Validate rejects values the connector cannot act on.
func (c *Config) Validate() error {
	if c.ConnectTimeout < 0 {
		return fmt.Errorf("connectTimeout must not be negative, got %s", c.ConnectTimeout)
	}
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown logLevel %q", c.LogLevel)
	}
	if strings.ContainsRune(c.Bin, 0) {
		return fmt.Errorf("bin contains NUL byte")
	}
	return nil
}

func expandPath(path string) (string, error) {
	switch {
	case strings.HasPrefix(path, "~/"):
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	case path == "~":
		return os.UserHomeDir()
	case filepath.IsAbs(path):
		return path, nil
	default:
		return filepath.Abs(path)
	}
}
