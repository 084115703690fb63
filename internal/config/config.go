// Package config reads and writes the flat SpecMentor configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the flat SpecMentor configuration.
type Config struct {
	Version      string `json:"version"`
	DatabasePath string `json:"database_path,omitempty"` // overrides ~/.specmentor/specmentor.db
	RedisAddr    string `json:"redis_addr,omitempty"`    // empty means in-memory cache
	AIGatewayURL string `json:"ai_gateway_url,omitempty"` // empty means AI review disabled
	AIGatewayKey string `json:"ai_gateway_key,omitempty"`
	AITimeoutSec int    `json:"ai_timeout_seconds,omitempty"`
	// UserID identifies the acting user for CLI operations.
	UserID string `json:"user_id,omitempty"`
}

// LoadConfig reads .specmentor/config.json from the specified directory.
// Resolution order: cwd only (no home fallback).
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".specmentor", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// SaveConfig writes config.json to the directory.
func SaveConfig(dir string, cfg *Config) error {
	confDir := filepath.Join(dir, ".specmentor")
	if err := os.MkdirAll(confDir, 0755); err != nil {
		return fmt.Errorf("failed to create .specmentor dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(confDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
