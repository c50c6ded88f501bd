// Package config handles the configuration directory, config.toml and
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"ltask/internal/kvstore"
)

const (
	// AppName is the application directory name.
	AppName = "ltask"

	// ConfigFile is the optional TOML settings file inside the config dir.
	ConfigFile = "config.toml"

	// DataFile is the default file-store path, relative to the config dir.
	DataFile = "todos.json"

	// DefaultKey is the default storage key for the task list.
	DefaultKey = "todos"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// LogFile receives log records while the tui owns the terminal.
	LogFile = "ltask.log"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `toml:"-"`

	// Debug enables debug logging.
	Debug bool `toml:"-"`

	// Quiet suppresses informational output.
	Quiet bool `toml:"-"`

	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
}

// StorageConfig selects where the task list is persisted.
type StorageConfig struct {
	Driver string `toml:"driver"` // file, memory, postgres, mysql
	Path   string `toml:"path"`   // file driver; relative paths resolve against Dir
	DSN    string `toml:"dsn"`    // postgres and mysql drivers
	Key    string `toml:"key"`
}

// LogConfig controls the diagnostic logger.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// New creates a Config with defaults for the given or default config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/ltask or $HOME/.config/ltask.
func New(configDir string) *Config {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}
	setDefaults(cfg)
	return cfg
}

// Load builds a Config from defaults, then <dir>/config.toml, then LTASK_*
// environment variables.
func Load(configDir string) (*Config, error) {
	cfg := New(configDir)

	if err := loadConfigFile(cfg, cfg.FilePath()); err != nil {
		return nil, fmt.Errorf("loading config file %s: %w", cfg.FilePath(), err)
	}
	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.Storage = StorageConfig{
		Driver: "file",
		Path:   DataFile,
		Key:    DefaultKey,
	}
	cfg.Log = LogConfig{Level: "info"}
}

// loadConfigFile decodes path into cfg. A missing file is not an error.
func loadConfigFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	_, err := toml.DecodeFile(path, cfg)
	return err
}

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("LTASK_STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("LTASK_STORAGE_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("LTASK_STORAGE_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("LTASK_STORAGE_KEY"); v != "" {
		cfg.Storage.Key = v
	}
	if v := os.Getenv("LTASK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// Validate checks the settings that have a fixed set of values.
func (c *Config) Validate() error {
	if !kvstore.ValidDriver(c.Storage.Driver) {
		return fmt.Errorf("invalid storage driver: %s", c.Storage.Driver)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// FilePath returns the path to config.toml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// DataPath returns the file-store path, resolved against Dir when relative.
func (c *Config) DataPath() string {
	p := c.Storage.Path
	if p == "" {
		p = DataFile
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// StorageKey returns the configured storage key or the default.
func (c *Config) StorageKey() string {
	if c.Storage.Key == "" {
		return DefaultKey
	}
	return c.Storage.Key
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// LogPath returns the path to the tui log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.Dir, LogFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
