// Package config provides configuration loading for the document uploader.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names, kept identical to the web app's deployment so
// the same .env.local works for both.
const (
	EnvSupabaseURL        = "NEXT_PUBLIC_SUPABASE_URL"
	EnvSupabaseServiceKey = "SUPABASE_SERVICE_ROLE_KEY"
)

// Config holds all settings for one uploader run. It is built once at
// startup and passed into components explicitly.
type Config struct {
	Debug    bool           `yaml:"debug"`
	Storage  StorageConfig  `yaml:"storage"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Download DownloadConfig `yaml:"download"`

	// Credentials come from the environment, never from the yaml file.
	Credentials Credentials `yaml:"-"`
}

// StorageConfig names the object-store bucket uploads go to.
type StorageConfig struct {
	Bucket string `yaml:"bucket"`
}

// CatalogConfig names the catalog table records are inserted into.
type CatalogConfig struct {
	Table string `yaml:"table"`
}

// DownloadConfig holds fetcher settings.
type DownloadConfig struct {
	ChunkSize int `yaml:"chunk_size"`
}

// Credentials are the two required Supabase settings.
type Credentials struct {
	URL        string
	ServiceKey string
}

// Load reads the optional yaml config at path (a missing file means all
// defaults), applies defaults, then resolves credentials from the
// environment. envFile is loaded first when it exists (the deployment keeps
// credentials in .env.local); values already set in the environment win.
// Missing credentials are an error — nothing network-facing runs without
// them.
func Load(path, envFile string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	ApplyDefaults(&cfg)

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
			}
		}
	}
	cfg.Credentials.URL = os.Getenv(EnvSupabaseURL)
	cfg.Credentials.ServiceKey = os.Getenv(EnvSupabaseServiceKey)
	if cfg.Credentials.URL == "" || cfg.Credentials.ServiceKey == "" {
		return nil, fmt.Errorf("supabase credentials not found: %s and %s must be set",
			EnvSupabaseURL, EnvSupabaseServiceKey)
	}
	return &cfg, nil
}
