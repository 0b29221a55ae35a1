package domain

import "errors"

var (
	// ErrMissingAPIKey is returned when no OpenRouter credential is configured
	ErrMissingAPIKey = errors.New("API key eksik")

	// ErrAIRequestFailed is returned when the OpenRouter request fails at the
	// transport level or with a non-2xx status
	ErrAIRequestFailed = errors.New("API isteği başarısız")

	// ErrMalformedResponse is returned when the API response is missing the
	// expected content shape
	ErrMalformedResponse = errors.New("API format hatası")

	// ErrEmptyContent is returned when the API answers with empty content
	ErrEmptyContent = errors.New("API boş içerik döndürdü")

	// ErrTooSimilar is returned when generated copy is too close to the
	// source text to publish
	ErrTooSimilar = errors.New("üretilen metin kaynağa çok benziyor")

	// ErrEmptyExport is returned when an export is requested for zero records
	ErrEmptyExport = errors.New("ürün listesi boş")
)
