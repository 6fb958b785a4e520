// Package config handles ironlog configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/ironlog/internal/store"
)

// Session store backends.
const (
	SessionStoreMemory = "memory"
	SessionStoreSQLite = "sqlite"
)

// DefaultSessionDB is the session database path relative to the data dir.
const DefaultSessionDB = ".ironlog/sessions.db"

// Config represents the ironlog configuration.
type Config struct {
	// DataDir holds the master log, the logs/ directory and the digest.
	// A leading "~/" expands to the home directory.
	DataDir string `toml:"data_dir"`

	// MasterFile, LogsDir and RecentFile override the document locations.
	// Relative values resolve against DataDir.
	MasterFile string `toml:"master_file"`
	LogsDir    string `toml:"logs_dir"`
	RecentFile string `toml:"recent_file"`

	// RecentLimit is the number of dates kept in the digest (default 7).
	RecentLimit int `toml:"recent_limit"`

	// SessionStore selects where capture sessions live: "memory" or "sqlite".
	SessionStore string `toml:"session_store"`

	// SessionDB is the SQLite database path when SessionStore is "sqlite".
	SessionDB string `toml:"session_db"`

	// Areas is the body-part catalog offered during capture.
	Areas []string `toml:"areas"`

	// AllowedUser restricts capture to a single user id when set.
	AllowedUser string `toml:"allowed_user"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown rendering.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`

	// CodeTheme sets the Glamour/Chroma theme used for rendered markdown code blocks.
	CodeTheme string `toml:"code_theme"`
}

// Validate reports configuration values that cannot be used.
func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.SessionStore)) {
	case "", SessionStoreMemory, SessionStoreSQLite:
	default:
		return fmt.Errorf("unknown session_store %q (use %q or %q)", c.SessionStore, SessionStoreMemory, SessionStoreSQLite)
	}
	if c.RecentLimit < 0 {
		return fmt.Errorf("recent_limit must not be negative, got %d", c.RecentLimit)
	}
	return nil
}

// DataPath returns the data directory with "~" expanded.
// Empty falls back to ~/ironlog.
func (c *Config) DataPath() (string, error) {
	dir := strings.TrimSpace(c.DataDir)
	if dir == "" {
		dir = "~/ironlog"
	}
	return expandHome(dir)
}

// StoreConfig returns the log store configuration.
func (c *Config) StoreConfig() (store.Config, error) {
	dir, err := c.DataPath()
	if err != nil {
		return store.Config{}, err
	}
	return store.Config{
		DataDir:     dir,
		MasterFile:  c.MasterFile,
		LogsDir:     c.LogsDir,
		RecentFile:  c.RecentFile,
		RecentLimit: c.RecentLimit,
	}, nil
}

// SessionBackend returns the normalized session store name.
func (c *Config) SessionBackend() string {
	if strings.EqualFold(strings.TrimSpace(c.SessionStore), SessionStoreSQLite) {
		return SessionStoreSQLite
	}
	return SessionStoreMemory
}

// SessionDBPath returns the SQLite session database path.
func (c *Config) SessionDBPath() (string, error) {
	dir, err := c.DataPath()
	if err != nil {
		return "", err
	}
	path := strings.TrimSpace(c.SessionDB)
	if path == "" {
		return filepath.Join(dir, filepath.FromSlash(DefaultSessionDB)), nil
	}
	path, err = expandHome(path)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	return path, nil
}

// AreaLabels returns the configured areas, or nil to use the built-in catalog.
func (c *Config) AreaLabels() []string {
	var labels []string
	for _, a := range c.Areas {
		if a = strings.TrimSpace(a); a != "" {
			labels = append(labels, a)
		}
	}
	return labels
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	return LoadOrDefault(DefaultPath())
}

// LoadOrDefault loads the configuration at path, returning an empty
// config when the file doesn't exist.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &config, nil
}

// ResolveConfigPath returns the explicit path if set, else DefaultPath.
func ResolveConfigPath(explicit string) string {
	if p := strings.TrimSpace(explicit); p != "" {
		return p
	}
	return DefaultPath()
}

// DefaultPath returns the default config file path.
// Checks ~/.config/ironlog/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if xdgPath, err := XDGPath(); err == nil {
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "ironlog", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// XDGPath returns the XDG-style config path (~/.config/ironlog/config.toml).
func XDGPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ironlog", "config.toml"), nil
}
