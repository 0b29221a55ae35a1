package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/produktlister/backend/config"
	httpDelivery "github.com/produktlister/backend/internal/delivery/http"
	"github.com/produktlister/backend/internal/export"
	"github.com/produktlister/backend/internal/infrastructure/browser"
	"github.com/produktlister/backend/internal/infrastructure/dm"
	"github.com/produktlister/backend/internal/infrastructure/openrouter"
	"github.com/produktlister/backend/internal/usecase"
)

func main() {
	// A .env file is optional; the deployment usually sets real env vars.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	if cfg.Server.Environment == "development" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	logger.Info("starting produktlister backend",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port)

	if cfg.OpenRouter.APIKey == "" {
		logger.Warn("no OpenRouter API key configured, enrichment runs in fallback mode")
	}

	// Initialize infrastructure dependencies
	renderer := browser.NewRenderer(cfg.Scraper.Headless, cfg.Scraper.WaitTimeout, logger)
	extractor := dm.NewExtractor(renderer, dm.DefaultSelectors(), cfg.Scraper.Origin, logger)

	aiClient := openrouter.NewClient(openrouter.Config{
		APIKey:      cfg.OpenRouter.APIKey,
		BaseURL:     cfg.OpenRouter.BaseURL,
		Model:       cfg.OpenRouter.Model,
		Timeout:     cfg.OpenRouter.Timeout,
		Temperature: cfg.OpenRouter.Temperature,
		MaxTokens:   cfg.OpenRouter.MaxTokens,
	}, logger)

	// Initialize usecase layer
	guard := usecase.NewSimilarityGuard(cfg.Similarity.Threshold)
	enricher := usecase.NewEnrichmentService(aiClient, guard, logger)
	products := usecase.NewProductService(extractor, enricher, logger)

	exporter := export.NewExporter(cfg.Export.Dir, cfg.Export.Prefix, logger)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(products, exporter, aiClient, export.Headers)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("server listening", "addr", addr)

	if err := router.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
