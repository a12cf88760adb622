// Package config loads service configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Storage mode selectors. The choice is process-wide and made once at
// startup; backends are never mixed per request.
const (
	StorageLocal = "local"
	StorageR2    = "r2"
	StorageBolt  = "bolt"
)

// Config holds all environment-derived settings.
type Config struct {
	Port        int    `env:"PORT" envDefault:"8000"`
	StorageType string `env:"STORAGE_TYPE" envDefault:"local"`

	LocalStoragePath string `env:"LOCAL_STORAGE_PATH" envDefault:"./data"`
	BoltPath         string `env:"BOLT_PATH" envDefault:"./data/corpus.db"`

	R2Bucket    string `env:"R2_BUCKET" envDefault:"voice-runner-recordings"`
	R2Endpoint  string `env:"R2_ENDPOINT"`
	R2AccessKey string `env:"R2_ACCESS_KEY"`
	R2SecretKey string `env:"R2_SECRET_KEY"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
