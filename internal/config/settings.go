// Copyright © 2025 Sergio Mota <smota@gmail.com>
// SPDX-License-Identifier: MIT

// Package config loads process settings from the environment and the pairs
// file that declares which origin/destination combinations to track.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Settings are the environment-derived knobs. The provider credential is the
// only required value.
type Settings struct {
	APIKey     string        `env:"GOOGLE_MAPS_API_KEY"`
	CacheDir   string        `env:"DTRACK_CACHE_DIR"`
	Timeout    time.Duration `env:"DTRACK_TIMEOUT" envDefault:"10s"`
	Checkpoint int           `env:"DTRACK_CHECKPOINT" envDefault:"25"`
}

// LoadSettings reads .env (if present) and then the environment. A missing
// API key is a *CredentialError and fatal to the run.
func LoadSettings() (Settings, error) {
	_ = godotenv.Load()

	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse environment: %w", err)
	}
	if strings.TrimSpace(s.APIKey) == "" {
		return Settings{}, &CredentialError{Var: "GOOGLE_MAPS_API_KEY"}
	}
	return s, nil
}

// ResolveCacheDir picks the durable cache location: the explicit override,
// else the user cache dir, else a local .cache directory.
func (s Settings) ResolveCacheDir() string {
	if s.CacheDir != "" {
		return s.CacheDir
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "distancetrack")
	}
	return ".cache"
}

// DefaultPairsPath resolves the pairs file location before flag parsing:
// DTRACK_CONFIG wins, otherwise pairs.yaml in the working directory.
func DefaultPairsPath() string {
	if p := os.Getenv("DTRACK_CONFIG"); p != "" {
		return p
	}
	return "pairs.yaml"
}
