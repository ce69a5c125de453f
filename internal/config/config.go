// Package config loads roster configuration from defaults, an optional
// YAML file, and ROSTER_* environment variables, in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backend names.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// ValidBackends defines the allowed storage backends.
var ValidBackends = []string{BackendMemory, BackendFile, BackendSQLite, BackendRedis, BackendPostgres}

// DefaultFile is the config file read when no path is given and it exists.
const DefaultFile = "roster.yaml"

// Config holds all roster configuration.
type Config struct {
	Storage Storage `yaml:"storage"`
	Log     Log     `yaml:"log"`
}

// Storage selects and configures the persistence backend.
type Storage struct {
	// Backend is one of ValidBackends.
	Backend string `yaml:"backend"`

	// Slot names the single key/row holding the serialized records.
	Slot string `yaml:"slot"`

	// SQLitePath is the database file for the sqlite backend.
	SQLitePath string `yaml:"sqlite_path"`

	// FilePath is the JSON file for the file backend.
	FilePath string `yaml:"file_path"`

	Redis Redis `yaml:"redis"`

	// PostgresDSN is the connection string for the postgres backend.
	PostgresDSN string `yaml:"postgres_dsn"`
}

// Redis configures the redis backend.
type Redis struct {
	Addr        string        `yaml:"addr"`
	Password    string        `yaml:"password"`
	DB          int           `yaml:"db"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
}

// Log configures slog output.
type Log struct {
	// Level is debug, info, warn or error.
	Level string `yaml:"level"`

	// Format is text or json.
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Storage: Storage{
			Backend:    BackendSQLite,
			Slot:       "student_data",
			SQLitePath: "roster.db",
			FilePath:   "roster.json",
			Redis: Redis{
				Addr:        "localhost:6379",
				DialTimeout: 5 * time.Second,
			},
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Override adjusts a loaded configuration before validation, e.g. from
// command-line flags.
type Override func(*Config)

// Load builds the configuration.
//
// If path is empty, DefaultFile is read when it exists; an explicit path
// must exist. Unknown YAML keys are rejected. Environment overrides are
// applied after the file and overrides after that, then the result is
// validated.
func Load(path string, overrides ...Override) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decodeYAML(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// no config file, defaults apply
	default:
		return Config{}, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, fmt.Errorf("config env: %w", err)
	}
	for _, o := range overrides {
		o(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // Reject unknown fields
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

// applyEnv overrides fields from ROSTER_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"ROSTER_BACKEND":        &c.Storage.Backend,
		"ROSTER_SLOT":           &c.Storage.Slot,
		"ROSTER_DB":             &c.Storage.SQLitePath,
		"ROSTER_FILE":           &c.Storage.FilePath,
		"ROSTER_REDIS_ADDR":     &c.Storage.Redis.Addr,
		"ROSTER_REDIS_PASSWORD": &c.Storage.Redis.Password,
		"ROSTER_POSTGRES_DSN":   &c.Storage.PostgresDSN,
		"ROSTER_LOG_LEVEL":      &c.Log.Level,
		"ROSTER_LOG_FORMAT":     &c.Log.Format,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup("ROSTER_REDIS_DB"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ROSTER_REDIS_DB: %w", err)
		}
		c.Storage.Redis.DB = n
	}
	return nil
}

// Validate checks the configuration for the selected backend.
func (c Config) Validate() error {
	var errs []error

	switch c.Storage.Backend {
	case BackendMemory:
	case BackendFile:
		if c.Storage.FilePath == "" {
			errs = append(errs, errors.New("storage.file_path is required for the file backend"))
		}
	case BackendSQLite:
		if c.Storage.SQLitePath == "" {
			errs = append(errs, errors.New("storage.sqlite_path is required for the sqlite backend"))
		}
	case BackendRedis:
		if c.Storage.Redis.Addr == "" {
			errs = append(errs, errors.New("storage.redis.addr is required for the redis backend"))
		}
	case BackendPostgres:
		if c.Storage.PostgresDSN == "" {
			errs = append(errs, errors.New("storage.postgres_dsn is required for the postgres backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid backend %q: must be one of %v", c.Storage.Backend, ValidBackends))
	}

	if strings.TrimSpace(c.Storage.Slot) == "" {
		errs = append(errs, errors.New("storage.slot must be non-empty"))
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("invalid log format %q", c.Log.Format))
	}

	return errors.Join(errs...)
}
