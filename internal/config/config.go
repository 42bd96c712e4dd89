// Package config loads and saves the application configuration from
// ~/.deckforge/config.toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	// Card data cache configuration
	Cache CacheConfig `toml:"cache"`

	// Local API server configuration
	API APIConfig `toml:"api"`

	// Database and collection file configuration
	Storage StorageConfig `toml:"storage"`

	// General application settings
	App AppConfig `toml:"app"`
}

// CacheConfig contains card data cache settings.
type CacheConfig struct {
	TTL          string `toml:"ttl"`           // Result memoization window (e.g., "5m")
	RequestDelay string `toml:"request_delay"` // Min delay between live requests (e.g., "100ms")
}

// APIConfig contains local REST API settings.
type APIConfig struct {
	Port           int      `toml:"port"`            // Listen port
	AllowedOrigins []string `toml:"allowed_origins"` // CORS origins
}

// StorageConfig contains persistence settings.
type StorageConfig struct {
	DatabasePath   string `toml:"database_path"`   // SQLite database file
	CollectionFile string `toml:"collection_file"` // Collection export to watch (optional)
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode     bool   `toml:"debug_mode"`     // Enable debug logging
	DefaultFormat string `toml:"default_format"` // Format when none is given
	DefaultCount  int    `toml:"default_count"`  // Recommendation count when none is given
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			TTL:          "5m",
			RequestDelay: "100ms",
		},
		API: APIConfig{
			Port:           8787,
			AllowedOrigins: []string{"http://localhost:*"},
		},
		Storage: StorageConfig{
			DatabasePath:   "",
			CollectionFile: "",
		},
		App: AppConfig{
			DebugMode:     false,
			DefaultFormat: "standard",
			DefaultCount:  20,
		},
	}
}

// configDir returns the configuration directory, creating it if needed.
func configDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	dir := filepath.Join(homeDir, ".deckforge")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return dir, nil
}

// configPath returns the path to the configuration file.
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads the configuration from disk. Returns default config if
// the file doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return &config, nil
}

// Save saves the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if _, err := time.ParseDuration(c.Cache.TTL); err != nil {
		return fmt.Errorf("invalid cache ttl %q: %w", c.Cache.TTL, err)
	}
	if _, err := time.ParseDuration(c.Cache.RequestDelay); err != nil {
		return fmt.Errorf("invalid request delay %q: %w", c.Cache.RequestDelay, err)
	}
	if c.API.Port < 1 || c.API.Port > 65535 {
		return fmt.Errorf("invalid api port %d", c.API.Port)
	}
	if c.App.DefaultCount < 1 {
		return fmt.Errorf("invalid default count %d", c.App.DefaultCount)
	}
	return nil
}

// CacheTTL returns the parsed cache TTL, falling back to the default
// when unset or malformed.
func (c *Config) CacheTTL() time.Duration {
	if d, err := time.ParseDuration(c.Cache.TTL); err == nil && d > 0 {
		return d
	}
	return 5 * time.Minute
}

// RequestDelay returns the parsed minimum request delay, falling back
// to the default when unset or malformed.
func (c *Config) RequestDelay() time.Duration {
	if d, err := time.ParseDuration(c.Cache.RequestDelay); err == nil && d > 0 {
		return d
	}
	return 100 * time.Millisecond
}

// DatabasePath returns the configured database path, defaulting to
// deckforge.db in the configuration directory.
func (c *Config) DatabasePath() (string, error) {
	if c.Storage.DatabasePath != "" {
		return c.Storage.DatabasePath, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "deckforge.db"), nil
}
