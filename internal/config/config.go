// Package config provides configuration loading and validation for braid.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Validation errors.
var (
	ErrInvalidBackendURL = errors.New("backend URL is not a valid http(s) URL")
	ErrInvalidPrefix     = errors.New("id prefix contains invalid characters")
	ErrInvalidLogLevel   = errors.New("log level must be debug, info, warn, or error")
)

// Defaults applied when the config file is missing or a field is unset.
const (
	DefaultBackendURL = "http://localhost:7777"
	DefaultLogLevel   = "info"
)

// EnvBackendURL overrides the configured backend URL when set.
const EnvBackendURL = "BRAID_URL"

// Config is the braid client configuration, loaded from
// ~/.config/braid/config.toml.
type Config struct {
	// BackendURL is the base URL of the issue backend.
	BackendURL string `toml:"backend-url"`

	// IDPrefix is used when allocating tentative issue ids.
	IDPrefix string `toml:"id-prefix"`

	// SnapshotPath is where export/import read and write the local
	// NDJSON snapshot. Empty means ~/.braid/issues.jsonl.
	SnapshotPath string `toml:"snapshot-path"`

	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `toml:"log-level"`

	// LogPath is the log file location. Empty means the default.
	LogPath string `toml:"log-path"`
}

// Path returns the location of the braid config file.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "braid", "config.toml"), nil
}

// Load reads the config file and applies environment overrides. A
// missing file is not an error: defaults apply.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads the config from a specific path. A missing file
// yields a config with every field unset.
func LoadFromPath(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}
	if env := os.Getenv(EnvBackendURL); env != "" {
		cfg.BackendURL = env
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every set field. Unset fields are fine: getters
// supply defaults.
func (c *Config) Validate() error {
	if c.BackendURL != "" {
		u, err := url.Parse(c.BackendURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidBackendURL, c.BackendURL)
		}
	}
	if c.IDPrefix != "" && !validPrefix(c.IDPrefix) {
		return fmt.Errorf("%w: %q", ErrInvalidPrefix, c.IDPrefix)
	}
	if c.LogLevel != "" {
		switch strings.ToLower(c.LogLevel) {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
		}
	}
	return nil
}

// validPrefix accepts prefixes like "BD-" or "issue_": printable ASCII
// with no whitespace. A trailing digit would corrupt id allocation.
func validPrefix(p string) bool {
	for _, r := range p {
		if r <= ' ' || r > '~' {
			return false
		}
	}
	last := p[len(p)-1]
	return last < '0' || last > '9'
}

// GetBackendURL returns the configured backend URL or the default.
func (c *Config) GetBackendURL() string {
	if c != nil && c.BackendURL != "" {
		return c.BackendURL
	}
	return DefaultBackendURL
}

// GetIDPrefix returns the configured id prefix, or empty to let the
// allocator use its own default.
func (c *Config) GetIDPrefix() string {
	if c == nil {
		return ""
	}
	return c.IDPrefix
}

// GetSnapshotPath returns the configured snapshot path or the default
// under the user's home directory.
func (c *Config) GetSnapshotPath() (string, error) {
	if c != nil && c.SnapshotPath != "" {
		return c.SnapshotPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".braid", "issues.jsonl"), nil
}

// GetLogLevel returns the configured log level or the default.
func (c *Config) GetLogLevel() string {
	if c != nil && c.LogLevel != "" {
		return c.LogLevel
	}
	return DefaultLogLevel
}

// GetLogPath returns the configured log path, or empty for the
// logging package's default.
func (c *Config) GetLogPath() string {
	if c == nil {
		return ""
	}
	return c.LogPath
}
