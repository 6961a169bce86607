// Package config resolves where mappy keeps its database.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in <config-dir>/mappy/config.yml.
type Config struct {
	DBPath string `yaml:"db_path,omitempty"` // Overrides the default database location
}

const (
	// AppDir is the directory name under the user config directory.
	AppDir = "mappy"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
	// DBFile is the database file name.
	DBFile = "maps.db"
	// DBEnvVar overrides the database path.
	DBEnvVar = "MAPPY_DB"
)

var (
	// ErrConfigDirUnavailable is returned when no user config directory can be determined.
	ErrConfigDirUnavailable = errors.New("user config directory unavailable")

	// ErrInvalidConfig is returned when config.yml cannot be read or parsed.
	ErrInvalidConfig = errors.New("invalid config file")

	// ErrDirCreate is returned when the database directory cannot be created.
	ErrDirCreate = errors.New("creating database directory")
)

// ConfigDir returns the mappy config directory.
// Respects XDG_CONFIG_HOME, otherwise uses the platform default.
func ConfigDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppDir), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConfigDirUnavailable, err)
	}
	return filepath.Join(base, AppDir), nil
}

// DefaultDBPath returns <config-dir>/mappy/maps.db.
func DefaultDBPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DBFile), nil
}

// Load reads config.yml from dir.
// Returns an empty config (not an error) if the file doesn't exist.
func Load(dir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, ConfigFile))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrInvalidConfig, ConfigFile, err)
	}

	if cfg.DBPath != "" {
		cfg.DBPath = ExpandTilde(cfg.DBPath)
	}

	return &cfg, nil
}

// ResolveDBPath picks the database path. The first non-empty source wins:
// flagValue, the MAPPY_DB environment variable, db_path in config.yml, then
// the default location.
func ResolveDBPath(flagValue string) (string, error) {
	if flagValue != "" {
		return ExpandTilde(flagValue), nil
	}
	if env := os.Getenv(DBEnvVar); env != "" {
		return ExpandTilde(env), nil
	}

	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	cfg, err := Load(dir)
	if err != nil {
		return "", err
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	return filepath.Join(dir, DBFile), nil
}

// EnsureDir creates the directory that will hold dbPath if it is missing.
func EnsureDir(dbPath string) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrDirCreate, err)
	}
	return nil
}

// ExpandTilde expands a leading ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandTilde(path string) string {
	if path != "~" && (len(path) < 2 || path[:2] != "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
