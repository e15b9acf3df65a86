// Package config provides configuration management for the logic controls
// services.
package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
)

// RenderConfig holds configuration for the render pipeline.
// DeferredClient selects the pass strategy: false removes hidden subtrees
// server-side, true emits the tree intact with per-element outcomes for the
// client to apply on its data-ready signal.
type RenderConfig struct {
	DatabaseURL    string
	LogLevel       string
	LogFormat      string
	MaxPageSize    int
	DeferredClient bool
}

// DefaultRenderConfig returns configuration with default values.
func DefaultRenderConfig() *RenderConfig {
	return &RenderConfig{
		DatabaseURL:    "sqlite://./logic.db",
		LogLevel:       "info",
		LogFormat:      "text",
		MaxPageSize:    512,
		DeferredClient: false,
	}
}

// TokenSecrets extracts entry token secrets from environment variables.
// Supports LC_TOKEN_SECRET (single) and LC_TOKEN_SECRET_N (rotation).
// Secrets are returned in order, newest first by convention, so the
// verifier tries the active secret before retired ones.
func TokenSecrets() ([][]byte, error) {
	var secrets [][]byte

	if val := os.Getenv("LC_TOKEN_SECRET"); val != "" {
		decoded, err := ParseTokenSecret(val)
		if err != nil {
			return nil, fmt.Errorf("LC_TOKEN_SECRET: %w", err)
		}
		secrets = append(secrets, decoded)
	}

	// Numbered secrets LC_TOKEN_SECRET_1, LC_TOKEN_SECRET_2, etc.
	// Multiple secrets enable rotation: old and new keys valid during migration
	for i := 1; ; i++ {
		key := fmt.Sprintf("LC_TOKEN_SECRET_%d", i)
		val := os.Getenv(key)
		if val == "" {
			break
		}
		decoded, err := ParseTokenSecret(val)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		secrets = append(secrets, decoded)
	}

	return secrets, nil
}

// ParseTokenSecret decodes a base64-encoded token secret.
func ParseTokenSecret(envValue string) ([]byte, error) {
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(envValue))
	if err != nil {
		return nil, fmt.Errorf("invalid base64 encoding: %w", err)
	}
	if len(decoded) < 32 {
		return nil, fmt.Errorf("secret must be at least 32 bytes, got %d", len(decoded))
	}
	return decoded, nil
}
