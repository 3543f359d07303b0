// Package config loads runtime settings from the environment, after an
// optional .env file in the working directory.
package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the CLI needs to reach the backend and its local store.
type Config struct {
	APIBaseURL    string
	DBPath        string
	HTTPTimeoutMs int
	FanOut        int
	LogCalls      bool
	LogLevel      slog.Level
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	dbPath := "travelsay.db"
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".travelsay", "travelsay.db")
	}
	return Config{
		APIBaseURL:    "http://localhost:8080",
		DBPath:        dbPath,
		HTTPTimeoutMs: 30000,
		FanOut:        4,
		LogCalls:      false,
		LogLevel:      slog.LevelWarn,
	}
}

// LoadConfig reads .env (when present) and then environment variables,
// falling back to defaults for any unset or malformed value.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}
	return FromEnv(), nil
}

// FromEnv applies environment overrides to DefaultConfig without touching .env.
func FromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("TRAVELSAY_API_URL"); v != "" {
		cfg.APIBaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("TRAVELSAY_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("TRAVELSAY_HTTP_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTPTimeoutMs = n
		}
	}
	if v := os.Getenv("TRAVELSAY_FANOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FanOut = n
		}
	}
	if v := os.Getenv("TRAVELSAY_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("TRAVELSAY_LOG_LEVEL"); v != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(v)); err == nil {
			cfg.LogLevel = lvl
		}
	}

	return cfg
}
