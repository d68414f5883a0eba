// Package config loads the optional gh-search config file and resolves
// the API token. All other behaviour is controlled by explicit flags; no
// ambient process-wide state is kept here.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/ghsearch-cli/internal/logger"
)

// EnvToken is the environment variable consulted when no --token flag is
// given.
const EnvToken = "GITHUB_TOKEN"

// Config holds the file-backed settings.
type Config struct {
	Token string `toml:"token"`
}

// DefaultPath returns the default config file location,
// ~/.gh-search/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".gh-search", "config.toml"), nil
}

// Load reads the TOML config at path. A missing file is not an error; it
// yields an empty config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	logger.Debug("loaded config from %s", path)
	return &cfg, nil
}

// ResolveToken applies the token precedence chain: the --token flag wins,
// then the GITHUB_TOKEN environment variable, then the config file.
func (c *Config) ResolveToken(flagToken string) string {
	if flagToken != "" {
		return flagToken
	}
	if env := os.Getenv(EnvToken); env != "" {
		return env
	}
	return c.Token
}
