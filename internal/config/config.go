// Package config loads ieltspro configuration.
//
// Values are resolved in priority order: command-line flags (applied by the
// caller), IELTSPRO_* environment variables, the YAML file named by
// --config or IELTSPRO_CONFIG, then defaults. A .env file in the working
// directory is merged into the environment first by LoadDotEnv.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/son-ta-minh/ielts-pro-sub004/internal/srs"
)

// CurrentVersion is the config format version written by this release.
// Files with the same major version are accepted.
const CurrentVersion = "v1.0.0"

// Driver names accepted by Database.Driver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var (
	ErrUnsupportedVersion = errors.New("config: unsupported version")
	ErrInvalid            = errors.New("config: invalid value")
)

// Config is the full application configuration.
type Config struct {
	// Version is the config format version, e.g. "v1" or "v1.0.0".
	Version string `yaml:"version"`

	// Owner is the learner whose items commands operate on.
	Owner string `yaml:"owner"`

	Database DatabaseConfig `yaml:"database"`
	Session  SessionConfig  `yaml:"session"`
	Log      LogConfig      `yaml:"log"`
	Reminder ReminderConfig `yaml:"reminder"`
}

// DatabaseConfig selects the item store backend.
type DatabaseConfig struct {
	// Driver is "sqlite" (default) or "postgres".
	Driver string `yaml:"driver"`
	// DSN is a file path for sqlite or a connection URL for postgres.
	// Empty sqlite DSN resolves to the default data path.
	DSN string `yaml:"dsn"`
}

// SessionConfig holds session assembly limits.
type SessionConfig struct {
	Limit    int `yaml:"limit"`     // Default: 25
	NewLimit int `yaml:"new_limit"` // Default: 10
}

// LogConfig configures the logger.
type LogConfig struct {
	Mode string `yaml:"mode"` // "dev", "debug" or "prod"
}

// ReminderConfig configures the due-item reminder job.
type ReminderConfig struct {
	Interval       time.Duration `yaml:"interval"` // Default: 1h
	Owners         []string      `yaml:"owners"`
	LeechThreshold int           `yaml:"leech_threshold"` // Default: 8
}

// Default returns a Config with defaults for every field.
func Default() Config {
	return Config{
		Version: CurrentVersion,
		Owner:   "default",
		Database: DatabaseConfig{
			Driver: DriverSQLite,
		},
		Session: SessionConfig{
			Limit:    srs.DefaultSessionLimit,
			NewLimit: srs.DefaultNewLimit,
		},
		Log: LogConfig{
			Mode: "dev",
		},
		Reminder: ReminderConfig{
			Interval:       time.Hour,
			LeechThreshold: srs.DefaultLeechThreshold,
		},
	}
}

// LoadDotEnv merges variables from the given .env files (default ".env")
// into the process environment. Missing files are ignored. Variables
// already set are never overridden.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load builds a Config from defaults, the YAML file at path (or
// IELTSPRO_CONFIG when path is empty) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("IELTSPRO_CONFIG")
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := cfg.decode(raw); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// decode validates raw YAML against the config schema, then overlays it on cfg.
func (c *Config) decode(raw []byte) error {
	if err := validateDocument(raw); err != nil {
		return err
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("decode yaml: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("IELTSPRO_OWNER"); v != "" {
		c.Owner = v
	}
	if v := os.Getenv("IELTSPRO_DB_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("IELTSPRO_DB"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("IELTSPRO_LOG_MODE"); v != "" {
		c.Log.Mode = v
	}
	if v := os.Getenv("IELTSPRO_SESSION_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: IELTSPRO_SESSION_LIMIT=%q", ErrInvalid, v)
		}
		c.Session.Limit = n
	}
	if v := os.Getenv("IELTSPRO_NEW_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: IELTSPRO_NEW_LIMIT=%q", ErrInvalid, v)
		}
		c.Session.NewLimit = n
	}
	if v := os.Getenv("IELTSPRO_REMIND_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: IELTSPRO_REMIND_INTERVAL=%q", ErrInvalid, v)
		}
		c.Reminder.Interval = d
	}
	if v := os.Getenv("IELTSPRO_REMIND_OWNERS"); v != "" {
		c.Reminder.Owners = splitList(v)
	}
	return nil
}

// Validate checks value ranges and version compatibility.
func (c Config) Validate() error {
	v := c.Version
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedVersion, v)
	}
	if semver.Major(v) != semver.Major(CurrentVersion) {
		return fmt.Errorf("%w: %s (want %s.x)", ErrUnsupportedVersion, v, semver.Major(CurrentVersion))
	}

	switch c.Database.Driver {
	case DriverSQLite:
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("%w: postgres requires database.dsn", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: database.driver %q", ErrInvalid, c.Database.Driver)
	}

	if c.Owner == "" {
		return fmt.Errorf("%w: owner is empty", ErrInvalid)
	}
	if c.Session.Limit <= 0 || c.Session.NewLimit <= 0 {
		return fmt.Errorf("%w: session limits must be positive", ErrInvalid)
	}
	if c.Reminder.Interval <= 0 {
		return fmt.Errorf("%w: reminder.interval must be positive", ErrInvalid)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
