package domain

import "context"

// PageRenderer loads a URL in a scriptable browser, waits until waitSelector
// matches an element, and returns the rendered HTML. Implementations must use
// one isolated session per call and release it unconditionally.
type PageRenderer interface {
	RenderHTML(ctx context.Context, url, waitSelector string) (string, error)
}

// ProductExtractor converts a product page URL into a ProductRecord. It never
// returns an error: every failure is captured as a success=false record.
type ProductExtractor interface {
	Extract(ctx context.Context, url string) *ProductRecord
}

// TextGenerator produces marketplace copy from extracted fields. Each
// operation makes a single bounded attempt and reports failures as typed
// errors; fallback selection is the caller's responsibility.
type TextGenerator interface {
	GenerateTitle(ctx context.Context, productName, brand, specs string) (string, error)
	GenerateBulletPoints(ctx context.Context, productName, description string, specs map[string]string) ([]string, error)
	GenerateHTMLDescription(ctx context.Context, productName, description string, bullets []string, specs map[string]string) (string, error)
	TestConnection(ctx context.Context) ConnectionStatus
}
