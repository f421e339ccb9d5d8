package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const maxWorkers = 10

var ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")

type Config struct {
	DatabaseURL string       `yaml:"database_url"`
	Port        string       `yaml:"port"`
	Log         LogConfig    `yaml:"log"`
	Import      ImportConfig `yaml:"import"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type ImportConfig struct {
	BaseDir       string `yaml:"base_dir"`
	Workers       int    `yaml:"workers"`
	LeaseSeconds  int    `yaml:"lease_seconds"`
	PreviewRows   int    `yaml:"preview_rows"`
	MaxAttempts   int    `yaml:"max_attempts"`
	ProgressEvery int    `yaml:"progress_every"`
}

func (c ImportConfig) LeaseDuration() time.Duration {
	return time.Duration(c.LeaseSeconds) * time.Second
}

func Default() Config {
	return Config{
		Port: "8080",
		Log:  LogConfig{Level: "info"},
		Import: ImportConfig{
			BaseDir:       ".",
			Workers:       maxWorkers,
			LeaseSeconds:  60,
			PreviewRows:   5,
			MaxAttempts:   5,
			ProgressEvery: 100,
		},
	}
}

// Load applies defaults, then the YAML file named by CONFIG_FILE (if any),
// then environment overrides.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(filepath.Clean(path), &cfg); err != nil {
			return cfg, err
		}
	}

	applyEnv(&cfg)
	cfg.Import.Workers = clampWorkers(cfg.Import.Workers)
	return cfg, nil
}

// Validate reports settings the API server cannot start without.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return ErrMissingDatabaseURL
	}
	return nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Import.BaseDir = getEnv("IMPORT_BASE_DIR", cfg.Import.BaseDir)
	cfg.Import.Workers = parseIntEnv("IMPORT_WORKERS", cfg.Import.Workers)
	cfg.Import.LeaseSeconds = parseIntEnv("IMPORT_JOB_LEASE_SECONDS", cfg.Import.LeaseSeconds)
	cfg.Import.PreviewRows = parseIntEnv("IMPORT_PREVIEW_ROWS", cfg.Import.PreviewRows)
	cfg.Import.MaxAttempts = parseIntEnv("IMPORT_MAX_ATTEMPTS", cfg.Import.MaxAttempts)
}

func clampWorkers(workers int) int {
	if workers <= 0 || workers > maxWorkers {
		return maxWorkers
	}
	return workers
}

func parseIntEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
