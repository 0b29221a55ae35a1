package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/produktlister/backend/internal/domain"
)

// Structural bounds every enriched record satisfies, whether the copy came
// from the AI client or from the deterministic fallbacks.
const (
	maxTitleLen  = 80
	maxBulletLen = 160
	minBullets   = 4
	maxBullets   = 6
)

// genericBulletPrefix pads the bullet list when the model delivers fewer
// than the minimum.
const genericBulletPrefix = "Hochwertige Qualität für "

// EnrichmentService produces marketplace copy for an extracted record. The
// client reports failures as typed errors; the fallback selection lives here
// so it stays independently testable. Enrich never fails the caller.
type EnrichmentService struct {
	generator domain.TextGenerator
	guard     *SimilarityGuard
	logger    *slog.Logger
}

// NewEnrichmentService creates an enrichment service with dependencies
func NewEnrichmentService(generator domain.TextGenerator, guard *SimilarityGuard, logger *slog.Logger) *EnrichmentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EnrichmentService{
		generator: generator,
		guard:     guard,
		logger:    logger,
	}
}

// Enrich fills the record's marketplace copy in place. Enrichment is
// additive: raw extracted fields are never modified.
func (s *EnrichmentService) Enrich(ctx context.Context, rec *domain.ProductRecord) {
	brand := rec.Specs[domain.SpecBrand]

	title, err := s.generator.GenerateTitle(ctx, rec.Title, brand, "")
	if err != nil {
		s.logger.Warn("using fallback title", "url", rec.URL, "reason", err)
		title = FallbackTitle(brand, rec.Title)
	}
	rec.EbayTitle = truncateRunes(title, maxTitleLen)

	bullets, err := s.generator.GenerateBulletPoints(ctx, rec.Title, rec.Description, rec.Specs)
	if err != nil {
		s.logger.Warn("using fallback bullets", "url", rec.URL, "reason", err)
		bullets = nil
	}
	rec.BulletPoints = NormalizeBullets(bullets, rec.Title)

	htmlDesc, err := s.generator.GenerateHTMLDescription(ctx, rec.Title, rec.Description, rec.BulletPoints, rec.Specs)
	if err == nil {
		check := s.guard.Check(rec.Description, htmlDesc)
		rec.SimilarityCheck = &check
		if check.Status == domain.SimilarityStatusTooSimilar {
			s.logger.Warn("generated description too close to source",
				"url", rec.URL, "similarity", check.Similarity)
			err = domain.ErrTooSimilar
		}
	} else {
		s.logger.Warn("using fallback description", "url", rec.URL, "reason", err)
	}
	if err != nil {
		htmlDesc = FallbackHTMLDescription(rec.Title, rec.BulletPoints)
	}
	rec.HTMLDescription = htmlDesc
}

// FallbackTitle is the deterministic title: brand plus product name,
// truncated to the title limit.
func FallbackTitle(brand, productName string) string {
	return truncateRunes(strings.TrimSpace(brand+" "+productName), maxTitleLen)
}

// NormalizeBullets enforces the bullet contract on any source: blanks
// dropped, each entry capped, at most six kept, and padded with a generic
// bullet until at least four are present.
func NormalizeBullets(bullets []string, productName string) []string {
	out := make([]string, 0, maxBullets)
	for _, b := range bullets {
		b = strings.TrimSpace(b)
		if b == "" {
			continue
		}
		out = append(out, truncateRunes(b, maxBulletLen))
		if len(out) == maxBullets {
			break
		}
	}
	for len(out) < minBullets {
		out = append(out, truncateRunes(genericBulletPrefix+productName, maxBulletLen))
	}
	return out
}

// FallbackHTMLDescription is the deterministic description: the bullet list
// followed by a paragraph naming the product.
func FallbackHTMLDescription(productName string, bullets []string) string {
	var sb strings.Builder
	sb.WriteString("<ul>")
	for i, b := range bullets {
		if i == maxBullets {
			break
		}
		sb.WriteString("<li>")
		sb.WriteString(b)
		sb.WriteString("</li>")
	}
	sb.WriteString("</ul><p>")
	sb.WriteString(productName)
	sb.WriteString("</p>")
	return sb.String()
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
