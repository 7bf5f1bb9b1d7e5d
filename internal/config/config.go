// Package config reads the runtime configuration from the environment and
// builds the process logger.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/roach88/ttscore/internal/store"
)

// Prefix is the envconfig prefix. Each variable is read as
// TTSCORE_<SECTION>_<NAME> first and as the bare <NAME> second.
const Prefix = "ttscore"

type Config struct {
	Store Store
	Log   Log
}

type Store struct {
	Driver      string `envconfig:"DB_DRIVER" default:"sqlite"`
	SQLiteFile  string `envconfig:"SQLITE_FILE" default:"ttscore.db"`
	PostgresDSN string `envconfig:"POSTGRES_DSN"`
}

type Log struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"`
}

// New loads the given .env files (".env" when none are named), then reads
// the environment. Missing .env files are skipped; variables already set in
// the environment take precedence over .env values.
func New(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var c Config
	if err := envconfig.Process(Prefix, &c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if !slices.Contains(store.Drivers, c.Store.Driver) {
		return fmt.Errorf("DB_DRIVER must be one of %v, got %q", store.Drivers, c.Store.Driver)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Log.Format != FormatText && c.Log.Format != FormatJSON {
		return fmt.Errorf("LOG_FORMAT must be %q or %q, got %q", FormatText, FormatJSON, c.Log.Format)
	}
	return nil
}

// DSN returns the data source for the configured driver.
func (s Store) DSN() string {
	switch s.Driver {
	case store.DriverSQLite:
		return s.SQLiteFile
	case store.DriverPostgres:
		return s.PostgresDSN
	}
	return ""
}
