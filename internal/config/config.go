package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr             string
	DBPath           string
	MigrationsPath   string
	AutoSaveInterval time.Duration
	AutoSaveMinGap   time.Duration
	MaxBackups       int
	LogLevel         string
	LogFormat        string
}

func Default() Config {
	return Config{
		Addr:             ":8080",
		DBPath:           "cochonnet.db?_journal_mode=WAL",
		MigrationsPath:   "file://migrations",
		AutoSaveInterval: 5 * time.Minute,
		AutoSaveMinGap:   30 * time.Second,
		MaxBackups:       3,
		LogLevel:         "info",
		LogFormat:        "text",
	}
}

// Load reads the configuration from the environment, so a .env file has to
// be loaded before. Unset variables keep their defaults.
func Load() (*Config, error) {
	cfg := Default()

	setString(&cfg.Addr, "ADDR")
	setString(&cfg.DBPath, "DB_PATH")
	setString(&cfg.MigrationsPath, "MIGRATIONS_PATH")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.LogFormat, "LOG_FORMAT")

	if err := setDuration(&cfg.AutoSaveInterval, "AUTOSAVE_INTERVAL"); err != nil {
		return nil, err
	}
	if err := setDuration(&cfg.AutoSaveMinGap, "AUTOSAVE_MIN_GAP"); err != nil {
		return nil, err
	}

	if v := os.Getenv("MAX_BACKUPS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid MAX_BACKUPS %q: must be a positive integer", v)
		}
		cfg.MaxBackups = n
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}

	return &cfg, nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fmt.Errorf("invalid %s %q: must be a positive duration", key, v)
	}
	*dst = d
	return nil
}
