package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("LISTER_SERVER_PORT")
		os.Unsetenv("LISTER_SERVER_ENVIRONMENT")
		os.Unsetenv("LISTER_OPENROUTER_API_KEY")
		os.Unsetenv("OPENROUTER_API_KEY")
		os.Unsetenv("LISTER_OPENROUTER_MODEL")
		os.Unsetenv("LISTER_SCRAPER_ORIGIN")
		os.Unsetenv("LISTER_SCRAPER_WAIT_TIMEOUT")
		os.Unsetenv("LISTER_SIMILARITY_THRESHOLD")
		os.Unsetenv("LISTER_EXPORT_DIR")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		// Check defaults
		if cfg.Server.Port != "5001" {
			t.Errorf("Server.Port = %s, want 5001", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.OpenRouter.BaseURL != "https://openrouter.ai/api/v1/chat/completions" {
			t.Errorf("OpenRouter.BaseURL = %s, want openrouter chat completions URL", cfg.OpenRouter.BaseURL)
		}
		if cfg.OpenRouter.Timeout != 30*time.Second {
			t.Errorf("OpenRouter.Timeout = %v, want 30s", cfg.OpenRouter.Timeout)
		}
		if cfg.Scraper.Origin != "https://www.dm.de" {
			t.Errorf("Scraper.Origin = %s, want https://www.dm.de", cfg.Scraper.Origin)
		}
		if cfg.Scraper.WaitTimeout != 12*time.Second {
			t.Errorf("Scraper.WaitTimeout = %v, want 12s", cfg.Scraper.WaitTimeout)
		}
		if cfg.Similarity.Threshold != 0.75 {
			t.Errorf("Similarity.Threshold = %v, want 0.75", cfg.Similarity.Threshold)
		}
		if cfg.Export.Dir != "exports" {
			t.Errorf("Export.Dir = %s, want exports", cfg.Export.Dir)
		}
		if cfg.Export.Prefix != "ebay_export" {
			t.Errorf("Export.Prefix = %s, want ebay_export", cfg.Export.Prefix)
		}
	})

	t.Run("missing API key is not an error", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.OpenRouter.APIKey != "" {
			t.Errorf("OpenRouter.APIKey = %q, want empty", cfg.OpenRouter.APIKey)
		}
	})

	t.Run("accepts bare OPENROUTER_API_KEY variable", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("OPENROUTER_API_KEY", "sk-test")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.OpenRouter.APIKey != "sk-test" {
			t.Errorf("OpenRouter.APIKey = %q, want sk-test", cfg.OpenRouter.APIKey)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("LISTER_SERVER_PORT", "9000")
		os.Setenv("LISTER_SCRAPER_WAIT_TIMEOUT", "5s")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.Server.Port != "9000" {
			t.Errorf("Server.Port = %s, want 9000", cfg.Server.Port)
		}
		if cfg.Scraper.WaitTimeout != 5*time.Second {
			t.Errorf("Scraper.WaitTimeout = %v, want 5s", cfg.Scraper.WaitTimeout)
		}
	})

	t.Run("rejects out-of-range similarity threshold", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("LISTER_SIMILARITY_THRESHOLD", "1.5")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Fatal("Load() error = nil, want threshold validation error")
		}
	})
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:     ServerConfig{Port: "5001"},
			OpenRouter: OpenRouterConfig{Timeout: 30 * time.Second},
			Scraper:    ScraperConfig{WaitTimeout: 12 * time.Second},
			Similarity: SimilarityConfig{Threshold: 0.75},
			Export:     ExportConfig{Dir: "exports"},
		}
	}

	t.Run("valid config passes", func(t *testing.T) {
		if err := validate(base()); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("empty port fails", func(t *testing.T) {
		cfg := base()
		cfg.Server.Port = ""
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want port error")
		}
	})

	t.Run("zero wait timeout fails", func(t *testing.T) {
		cfg := base()
		cfg.Scraper.WaitTimeout = 0
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want timeout error")
		}
	})

	t.Run("empty export dir fails", func(t *testing.T) {
		cfg := base()
		cfg.Export.Dir = ""
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want export dir error")
		}
	})
}
