package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	ServerURL string `json:"serverUrl"` // base URL of the resource API
	PageSize  int    `json:"pageSize"`  // link page size
	ExportDir string `json:"exportDir"` // directory exports are written to, "" = ~/Downloads
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		ServerURL: "http://localhost:8080",
		PageSize:  20,
	}
}

// Load reads config from the JSON file at path, fills missing fields with
// defaults, and applies environment overrides (a local .env file is
// honored when present). Creates the file with defaults if it doesn't
// exist.
func Load(path string) (*Config, error) {
	cfg, err := loadFile(path)
	if err != nil {
		return nil, err
	}

	_ = godotenv.Load() // ignore error if .env not found

	cfg.ServerURL = getEnv("LP_SERVER_URL", cfg.ServerURL)
	cfg.ExportDir = getEnv("LP_EXPORT_DIR", cfg.ExportDir)
	if v := os.Getenv("LP_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PageSize = n
		}
	}

	return cfg, nil
}

// loadFile reads the JSON config file, creating it with defaults when missing.
func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := DefaultConfig()
			// Non-fatal: return defaults even if the save fails
			_ = Save(path, &cfg)
			return &cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Apply defaults for missing fields
	defaults := DefaultConfig()
	if cfg.ServerURL == "" {
		cfg.ServerURL = defaults.ServerURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaults.PageSize
	}

	return &cfg, nil
}

// Save writes config to the JSON file, creating the directory if needed.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultPath returns the default config path: ~/.config/lp/config.json
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "lp", "config.json"), nil
}

// getEnv returns the environment value for key, or fallback when unset.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
