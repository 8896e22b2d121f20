package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// EnvHome overrides the configuration directory.
	EnvHome = "BIOMELINK_HOME"
	// EnvConfig points at a configuration file.
	EnvConfig = "BIOMELINK_CONFIG"
)

// DefaultConfigDir returns $BIOMELINK_HOME or ~/.biomelink.
func DefaultConfigDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(EnvHome)); dir != "" {
		return expandPath(dir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".biomelink"), nil
}

// DefaultConfigPath returns the config.yaml inside DefaultConfigDir.
func DefaultConfigPath() (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// ResolvePath picks the file to load: the flag value, then $BIOMELINK_CONFIG,
// then DefaultConfigPath.
func ResolvePath(flagValue string) (string, error) {
	if p := strings.TrimSpace(flagValue); p != "" {
		return p, nil
	}
	if p := strings.TrimSpace(os.Getenv(EnvConfig)); p != "" {
		return p, nil
	}
	return DefaultConfigPath()
}
