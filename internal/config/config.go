package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	AuthModeRemote = "remote"
	AuthModeStatic = "static"
)

type Config struct {
	Env      string   `yaml:"env" env:"ENV" env-default:"local"`
	Log      Log      `yaml:"log"`
	Database Database `yaml:"database"`
	Server   Server   `yaml:"server"`
	Auth     Auth     `yaml:"auth"`
	Journal  Journal  `yaml:"journal"`
}

type Log struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

type Database struct {
	// Driver is either "sqlite" or "postgres"
	Driver string `yaml:"driver" env:"DATABASE_DRIVER" env-default:"sqlite"`
	// DSN is a file path for sqlite or a postgres:// URL
	DSN string `yaml:"dsn" env:"DATABASE_DSN" env-default:"mastery.db"`
}

type Server struct {
	Port           int           `yaml:"port" env:"SERVER_PORT" env-default:"8080"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"15s"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" env-default:"60s"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"SERVER_REQUEST_TIMEOUT" env-default:"10s"`
	AllowedOrigins []string      `yaml:"allowed_origins" env:"SERVER_ALLOWED_ORIGINS" env-default:"*"`
}

type Auth struct {
	// Mode is "remote" (identity provider over HTTP) or "static" (token map, local only)
	Mode    string        `yaml:"mode" env:"AUTH_MODE" env-default:"remote"`
	BaseURL string        `yaml:"base_url" env:"AUTH_BASE_URL"`
	APIKey  string        `yaml:"api_key" env:"AUTH_API_KEY"`
	Timeout time.Duration `yaml:"timeout" env:"AUTH_TIMEOUT" env-default:"5s"`
	// StaticTokens maps bearer token to user id
	StaticTokens map[string]string `yaml:"static_tokens" env:"AUTH_STATIC_TOKENS"`
}

type Journal struct {
	Timezone string `yaml:"timezone" env:"JOURNAL_TIMEZONE" env-default:"UTC"`
}

// LoadConfig loads an optional .env file, then the YAML file at path, then environment overrides.
// A missing YAML file falls back to environment variables and defaults.
func LoadConfig(path string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := os.Stat(path); path != "" && err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read config from env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cross-field constraints cleanenv cannot express
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database dsn is required")
	}

	switch c.Auth.Mode {
	case AuthModeRemote:
		if c.Auth.BaseURL == "" {
			return errors.New("auth base_url is required in remote mode")
		}
	case AuthModeStatic:
		if len(c.Auth.StaticTokens) == 0 {
			return errors.New("auth static_tokens is required in static mode")
		}
	default:
		return fmt.Errorf("unsupported auth mode %q", c.Auth.Mode)
	}

	if _, err := time.LoadLocation(c.Journal.Timezone); err != nil {
		return fmt.Errorf("invalid journal timezone %q: %w", c.Journal.Timezone, err)
	}

	return nil
}

// Location returns the configured journal timezone
func (j Journal) Location() *time.Location {
	loc, err := time.LoadLocation(j.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
