package usecase

import (
	"context"
	"log/slog"

	"github.com/produktlister/backend/internal/domain"
)

// ProductService runs one URL through the pipeline.
// Flow: extract -> enrich -> return. Every call works on its own record and
// its own browser session, so concurrent requests stay independent.
type ProductService struct {
	extractor domain.ProductExtractor
	enricher  *EnrichmentService
	logger    *slog.Logger
}

// NewProductService creates a product service with dependencies
func NewProductService(extractor domain.ProductExtractor, enricher *EnrichmentService, logger *slog.Logger) *ProductService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductService{
		extractor: extractor,
		enricher:  enricher,
		logger:    logger,
	}
}

// Fetch extracts a product record for url and, when extraction succeeded,
// enriches it in place. Failure records pass through untouched so the caller
// always gets a complete, structured result.
func (s *ProductService) Fetch(ctx context.Context, url string) *domain.ProductRecord {
	rec := s.extractor.Extract(ctx, url)
	if !rec.Success {
		return rec
	}

	s.enricher.Enrich(ctx, rec)
	return rec
}
