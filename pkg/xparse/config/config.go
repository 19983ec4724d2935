// Package config loads runtime settings from .env files and the environment.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// LogFileDisabled turns off the log file when used as XPARSE_LOG_FILE.
const LogFileDisabled = "-"

// Config holds the environment settings. Command-line flags override them.
type Config struct {
	LogLevel  string `env:"XPARSE_LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"XPARSE_LOG_FORMAT" envDefault:"console"`
	LogFile   string `env:"XPARSE_LOG_FILE"   envDefault:"xparse.log"`
	// Dictionaries is a .toml or .json file, or a directory of CSV files.
	Dictionaries      string `env:"XPARSE_DICTIONARIES"       envDefault:"dictionaries.toml"`
	GoogleCredentials string `env:"XPARSE_GOOGLE_CREDENTIALS" envDefault:"credentials.json"`
	// Database is an optional SQLite path; empty disables the run store.
	Database string `env:"XPARSE_DB"`
}

// Load reads the given .env files, or ./.env when none are named, and then
// parses the environment. Missing .env files are not an error; dotenv
// reports whether any were loaded.
func Load(files ...string) (cfg Config, dotenv bool, err error) {
	dotenv = godotenv.Load(files...) == nil
	if err := env.Parse(&cfg); err != nil {
		return Config{}, dotenv, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, dotenv, err
	}
	return cfg, dotenv, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("XPARSE_LOG_FORMAT: %w: %q", errInvalidValue, c.LogFormat)
	}
	return nil
}

// LogFilePath returns the log file path, or "" when file logging is off.
func (c Config) LogFilePath() string {
	if c.LogFile == LogFileDisabled {
		return ""
	}
	return c.LogFile
}

var errInvalidValue = errors.New("invalid value")
