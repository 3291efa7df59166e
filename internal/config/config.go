package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
	DriverMySQL    = "mysql"
)

// ErrInvalidConfig is returned when configuration validation fails.
var ErrInvalidConfig = errors.New("armada: invalid configuration")

// Config represents the armada configuration file.
type Config struct {
	Database Database `toml:"database"`
	Log      Log      `toml:"log"`
	Units    Units    `toml:"units"`
	Exchange Exchange `toml:"exchange"`
}

// Database selects the storage engine.
type Database struct {
	Driver string `toml:"driver"`
	DSN    string `toml:"dsn"`
}

// Log configures the zerolog logger.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "console" or "json"
}

// Units points at the static unit catalog.
type Units struct {
	Path  string `toml:"path"`  // empty means the embedded catalog
	Group string `toml:"group"` // unit group holding fleet-capable ships
}

// Exchange holds resource exchange rates used to express costs in metal.
type Exchange struct {
	Metal     float64 `toml:"metal"`
	Crystal   float64 `toml:"crystal"`
	Deuterium float64 `toml:"deuterium"`
}

// DefaultConfig returns a configuration backed by a SQLite file under dir.
func DefaultConfig(dir string) *Config {
	return &Config{
		Database: Database{
			Driver: DriverSQLite,
			DSN:    "file:" + filepath.Join(dir, "armada.db") + "?_foreign_keys=on&_txlock=immediate&_busy_timeout=5000",
		},
		Log:      Log{Level: "info", Format: "console"},
		Units:    Units{Group: "fleet"},
		Exchange: Exchange{Metal: 1, Crystal: 2, Deuterium: 4},
	}
}

// DefaultDir returns ~/.armada.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".armada"), nil
}

// DefaultConfigPath returns ~/.armada/armada.toml, or "" if home is not accessible.
func DefaultConfigPath() string {
	dir, err := DefaultDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "armada.toml")
}

// LoadConfig reads the TOML config at path on top of DefaultConfig.
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig(filepath.Dir(path))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes cfg as TOML to path, creating parent directories.
func SaveConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// ApplyEnv overrides config values from ARMADA_* environment variables.
func ApplyEnv(cfg *Config) {
	if v, ok := os.LookupEnv("ARMADA_DB_DRIVER"); ok && v != "" {
		cfg.Database.Driver = v
	}
	if v, ok := os.LookupEnv("ARMADA_DB_DSN"); ok && v != "" {
		cfg.Database.DSN = v
	}
	if v, ok := os.LookupEnv("ARMADA_LOG_LEVEL"); ok && v != "" {
		cfg.Log.Level = v
	}
	if v, ok := os.LookupEnv("ARMADA_UNITS_PATH"); ok {
		cfg.Units.Path = v
	}
}

// Validate checks the configuration for values the rest of the program cannot handle.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres, DriverMySQL:
	default:
		return fmt.Errorf("%w: unsupported database driver %q", ErrInvalidConfig, c.Database.Driver)
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("%w: database dsn is empty", ErrInvalidConfig)
	}
	if c.Units.Group == "" {
		return fmt.Errorf("%w: units group is empty", ErrInvalidConfig)
	}
	if c.Exchange.Metal <= 0 || c.Exchange.Crystal <= 0 || c.Exchange.Deuterium <= 0 {
		return fmt.Errorf("%w: exchange rates must be positive", ErrInvalidConfig)
	}
	return nil
}
