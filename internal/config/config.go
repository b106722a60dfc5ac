// Package config loads runtime settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Store backends accepted by HANGMAN_STORE.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config controls logging, persistence, word lists and the stats view.
type Config struct {
	LogLevel   string `env:"LOG_LEVEL"          envDefault:"info"`
	LogFile    string `env:"HANGMAN_LOG_FILE"   envDefault:"game_log/hangman.log"`
	LogDir     string `env:"HANGMAN_LOG_DIR"    envDefault:"game_log"`
	Store      string `env:"HANGMAN_STORE"      envDefault:"sqlite"`
	DBPath     string `env:"HANGMAN_DB_PATH"    envDefault:"game_log/hangman.db"`
	WordsDir   string `env:"HANGMAN_WORDS_DIR"`
	DailySalt  string `env:"HANGMAN_DAILY_SALT" envDefault:"local_dev_salt"`
	HTTPAddr   string `env:"HANGMAN_HTTP_ADDR"`
	CORSOrigin string `env:"HANGMAN_CORS_ORIGIN"`
	NoColor    string `env:"NO_COLOR"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Colorless reports whether NO_COLOR is set to any non-empty value.
func (c Config) Colorless() bool { return c.NoColor != "" }

// Validate rejects settings the program cannot run with.
func (c Config) Validate() error {
	switch c.Store {
	case StoreSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("HANGMAN_DB_PATH is required for the %s store", StoreSQLite)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown HANGMAN_STORE %q (want %s or %s)", c.Store, StoreSQLite, StoreMemory)
	}
	if c.LogDir == "" {
		return fmt.Errorf("HANGMAN_LOG_DIR must not be empty")
	}
	return nil
}
