package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	OpenRouter OpenRouterConfig
	Scraper    ScraperConfig
	Similarity SimilarityConfig
	Export     ExportConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// OpenRouterConfig holds OpenRouter API configuration
type OpenRouterConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
}

// ScraperConfig holds configuration for the page extractor
type ScraperConfig struct {
	Origin      string        `mapstructure:"origin"`
	WaitTimeout time.Duration `mapstructure:"wait_timeout"`
	Headless    bool          `mapstructure:"headless"`
}

// SimilarityConfig holds the copy-similarity guard configuration
type SimilarityConfig struct {
	Threshold float64 `mapstructure:"threshold"`
}

// ExportConfig holds spreadsheet export configuration
type ExportConfig struct {
	Dir    string `mapstructure:"dir"`
	Prefix string `mapstructure:"prefix"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Environment variable settings
	v.SetEnvPrefix("LISTER")
	v.AutomaticEnv()

	// The deployment sets the bare variable, keep accepting it alongside the
	// prefixed form.
	_ = v.BindEnv("openrouter.api_key", "LISTER_OPENROUTER_API_KEY", "OPENROUTER_API_KEY")

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "5001")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// OpenRouter defaults. The API key has no default: without one the
	// enrichment stage runs in deterministic fallback mode.
	v.SetDefault("openrouter.base_url", "https://openrouter.ai/api/v1/chat/completions")
	v.SetDefault("openrouter.model", "openai/gpt-4o-mini")
	v.SetDefault("openrouter.timeout", "30s")
	v.SetDefault("openrouter.temperature", 0.7)
	v.SetDefault("openrouter.max_tokens", 700)

	// Scraper defaults
	v.SetDefault("scraper.origin", "https://www.dm.de")
	v.SetDefault("scraper.wait_timeout", "12s")
	v.SetDefault("scraper.headless", true)

	// Similarity guard defaults
	v.SetDefault("similarity.threshold", 0.75)

	// Export defaults
	v.SetDefault("export.dir", "exports")
	v.SetDefault("export.prefix", "ebay_export")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port must not be empty")
	}

	if config.Similarity.Threshold < 0 || config.Similarity.Threshold > 1 {
		return fmt.Errorf("similarity threshold must be in [0,1], got: %v", config.Similarity.Threshold)
	}

	if config.Scraper.WaitTimeout <= 0 {
		return fmt.Errorf("scraper wait timeout must be positive, got: %v", config.Scraper.WaitTimeout)
	}

	if config.OpenRouter.Timeout <= 0 {
		return fmt.Errorf("openrouter timeout must be positive, got: %v", config.OpenRouter.Timeout)
	}

	if config.Export.Dir == "" {
		return fmt.Errorf("export directory must not be empty")
	}

	return nil
}
