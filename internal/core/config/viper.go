package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence.
func LoadConfig(configPath string) (*RenderConfig, error) {
	v := viper.New()

	// Set defaults matching DefaultRenderConfig
	v.SetDefault("render.database_url", "sqlite://./logic.db")
	v.SetDefault("render.log_level", "info")
	v.SetDefault("render.log_format", "text")
	v.SetDefault("render.max_page_size", 512)
	v.SetDefault("render.deferred_client", false)

	// Bind environment variables with LC_ prefix
	v.SetEnvPrefix("LC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Security check: reject secrets in config files
	// Secrets must be environment-only per 12-factor principles
	if err := validateNoSecretsInConfig(v); err != nil {
		return nil, err
	}

	cfg := &RenderConfig{
		DatabaseURL:    v.GetString("render.database_url"),
		LogLevel:       v.GetString("render.log_level"),
		LogFormat:      v.GetString("render.log_format"),
		MaxPageSize:    v.GetInt("render.max_page_size"),
		DeferredClient: v.GetBool("render.deferred_client"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateConfig checks the database URL scheme, log settings and page size.
func validateConfig(cfg *RenderConfig) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database_url must not be empty")
	}
	if !strings.HasPrefix(cfg.DatabaseURL, "sqlite://") && !strings.HasPrefix(cfg.DatabaseURL, "postgres://") {
		return fmt.Errorf("database_url must use sqlite:// or postgres:// scheme, got %q", cfg.DatabaseURL)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error, got %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", cfg.LogFormat)
	}
	if cfg.MaxPageSize <= 0 {
		return fmt.Errorf("max_page_size must be positive, got %d", cfg.MaxPageSize)
	}
	return nil
}

// validateNoSecretsInConfig enforces environment-only secrets (12-factor principle).
func validateNoSecretsInConfig(v *viper.Viper) error {
	if v.IsSet("token_secret") || v.IsSet("render.token_secret") {
		return fmt.Errorf("token secrets not allowed in config files (use LC_TOKEN_SECRET environment variable)")
	}
	return nil
}
