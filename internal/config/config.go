package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Tracker database
	DatabasePath string

	// Corpus directories
	SourceDir        string
	ProcessedDir     string
	ReconstructedDir string

	// Catalog overrides the embedded source catalog when set.
	CatalogPath string

	// VecLite
	VecLitePath   string // Path to VecLite database (default: data/records.veclite)
	VecLiteConfig string // Path to veclite.yaml (optional)

	// Logging
	LogLevel string

	// Processing
	Workers         int
	WatchDebounce   time.Duration
	DownloadTimeout time.Duration
}

// Load reads configuration from environment variables.
// It automatically loads .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DatabasePath:     getEnv("DATABASE_PATH", "data/scribe.db"),
		SourceDir:        getEnv("SOURCE_DIR", "source_material"),
		ProcessedDir:     getEnv("PROCESSED_DIR", "processed_corpus"),
		ReconstructedDir: getEnv("RECONSTRUCTED_DIR", "reconstructed"),
		CatalogPath:      getEnv("CATALOG_PATH", ""),
		VecLitePath:      getEnv("VECLITE_PATH", "data/records.veclite"),
		VecLiteConfig:    getEnv("VECLITE_CONFIG", ""),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}

	workers, err := strconv.Atoi(getEnv("WORKERS", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid WORKERS: %w", err)
	}
	cfg.Workers = workers

	cfg.WatchDebounce, err = time.ParseDuration(getEnv("WATCH_DEBOUNCE", "2s"))
	if err != nil {
		return nil, fmt.Errorf("invalid WATCH_DEBOUNCE: %w", err)
	}

	cfg.DownloadTimeout, err = time.ParseDuration(getEnv("DOWNLOAD_TIMEOUT", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DOWNLOAD_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	return nil
}

// ValidateForProcessing checks configuration needed to run the pipeline.
func (c *Config) ValidateForProcessing() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.SourceDir == "" {
		return fmt.Errorf("SOURCE_DIR is required")
	}
	if c.ProcessedDir == "" {
		return fmt.Errorf("PROCESSED_DIR is required")
	}
	if c.Workers < 1 {
		return fmt.Errorf("WORKERS must be at least 1, got %d", c.Workers)
	}
	return nil
}

// ValidateForWatch checks configuration needed for watch mode.
func (c *Config) ValidateForWatch() error {
	if err := c.ValidateForProcessing(); err != nil {
		return err
	}
	if c.WatchDebounce <= 0 {
		return fmt.Errorf("WATCH_DEBOUNCE must be positive")
	}
	return nil
}

// ValidateForVecLite checks configuration needed for VecLite.
func (c *Config) ValidateForVecLite() error {
	if c.VecLitePath == "" {
		return fmt.Errorf("VECLITE_PATH is required")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
