package dm

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/produktlister/backend/internal/domain"
)

// Package-level compiled regex patterns
var (
	nonDigitRe   = regexp.MustCompile(`[^0-9]`)
	postalCityRe = regexp.MustCompile(`(\d{4,5})\s+(.+)`)
	imageSizeRe  = regexp.MustCompile(`h_\d+,w_\d+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// highResSize replaces whatever size token the CDN URL carries.
const highResSize = "h_1200,w_1200"

// missingTitle is what the page shows the user when no heading text exists.
const missingTitle = "Başlık bulunamadı"

// Extractor converts a rendered dm.de product page into a ProductRecord.
// It implements domain.ProductExtractor and never returns an error: failures
// become success=false records.
type Extractor struct {
	renderer  domain.PageRenderer
	selectors Selectors
	origin    string
	logger    *slog.Logger
}

// NewExtractor creates an extractor. origin absolutizes relative image paths.
func NewExtractor(renderer domain.PageRenderer, selectors Selectors, origin string, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		renderer:  renderer,
		selectors: selectors,
		origin:    strings.TrimSuffix(origin, "/"),
		logger:    logger,
	}
}

// Extract renders pageURL and pulls the product fields out of the document.
// Navigation failure, readiness timeout, and parse failure all yield a
// failure record carrying the cause; missing individual elements degrade to
// empty values instead.
func (e *Extractor) Extract(ctx context.Context, pageURL string) *domain.ProductRecord {
	e.logger.Info("extracting product", "url", pageURL)

	rendered, err := e.renderer.RenderHTML(ctx, pageURL, e.selectors.Heading)
	if err != nil {
		e.logger.Error("extraction failed", "url", pageURL, "error", err)
		return domain.NewFailureRecord(pageURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rendered))
	if err != nil {
		e.logger.Error("extraction failed", "url", pageURL, "error", err)
		return domain.NewFailureRecord(pageURL, fmt.Errorf("parse html: %w", err))
	}

	rec := e.parseDocument(doc, pageURL)
	e.logger.Info("product extracted", "url", pageURL, "title", rec.Title, "images", len(rec.Images))
	return rec
}

// parseDocument applies the selector set to a parsed document. Split out from
// Extract so tests can run it against saved fixtures without a browser.
func (e *Extractor) parseDocument(doc *goquery.Document, pageURL string) *domain.ProductRecord {
	title := strings.TrimSpace(doc.Find(e.selectors.Heading).First().Text())
	if title == "" {
		title = missingTitle
	}

	price := strings.TrimSpace(doc.Find(e.selectors.Price).First().Text())

	var descParts []string
	doc.Find(e.selectors.Description).Each(func(_ int, sel *goquery.Selection) {
		if t := collapseSpaces(sel.Text()); t != "" {
			descParts = append(descParts, t)
		}
	})
	description := CleanDescription(strings.Join(descParts, "\n"))

	var ean string
	if cell := doc.Find(e.selectors.IdentifierCell).First(); cell.Length() > 0 {
		ean = nonDigitRe.ReplaceAllString(cell.Text(), "")
	}

	manufacturer := parseManufacturer(blockText(doc.Find(e.selectors.AddressBlock).First()))

	return &domain.ProductRecord{
		Success:      true,
		URL:          pageURL,
		Title:        title,
		Description:  description,
		Price:        price,
		EAN:          ean,
		Images:       e.collectImages(doc),
		Manufacturer: manufacturer,
		Specs:        domain.NewSpecs(),
		EnrichedCopy: domain.EnrichedCopy{
			// Pre-enrichment defaults; the enrichment stage overwrites these.
			EbayTitle:       truncateRunes(title, 80),
			HTMLDescription: defaultHTMLDescription(title, description),
		},
	}
}

// collectImages probes the fixed gallery slots in order. Each slot may carry
// a direct source, a lazy-load source, or a responsive source list; the first
// present wins. URLs are absolutized, upsized, and deduped first-seen.
func (e *Extractor) collectImages(doc *goquery.Document) []string {
	var urls []string
	seen := make(map[string]struct{})

	for i := 1; i <= e.selectors.GallerySlots; i++ {
		sel := doc.Find(fmt.Sprintf(e.selectors.GallerySlot, i)).First()
		if sel.Length() == 0 {
			continue
		}

		src, _ := sel.Attr("src")
		if src == "" {
			src, _ = sel.Attr("data-src")
		}
		if src == "" {
			if srcset, ok := sel.Attr("srcset"); ok {
				src = firstSrcsetCandidate(srcset)
			}
		}
		if src == "" {
			continue
		}

		if strings.HasPrefix(src, "/") {
			src = e.origin + src
		}
		src = imageSizeRe.ReplaceAllString(src, highResSize)

		if _, ok := seen[src]; ok {
			continue
		}
		seen[src] = struct{}{}
		urls = append(urls, src)
	}

	return urls
}

// firstSrcsetCandidate returns the URL of the first srcset entry.
func firstSrcsetCandidate(srcset string) string {
	first := srcset
	if idx := strings.Index(srcset, ","); idx >= 0 {
		first = srcset[:idx]
	}
	fields := strings.Fields(strings.TrimSpace(first))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// parseManufacturer derives the manufacturer fields from the address block
// text: first line is the name, second the address line, and every line is
// scanned for a postal-code + city pair and a country marker.
func parseManufacturer(block string) domain.ManufacturerInfo {
	var lines []string
	for _, line := range strings.Split(block, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	info := domain.ManufacturerInfo{Country: domain.DefaultCountry}
	if len(lines) > 0 {
		info.Name = lines[0]
	}
	if len(lines) > 1 {
		info.AddressLine1 = lines[1]
	}

	for _, line := range lines {
		if m := postalCityRe.FindStringSubmatch(line); m != nil {
			info.PostalCode = m[1]
			info.City = strings.TrimSpace(m[2])
		}
		if strings.Contains(strings.ToLower(line), "deutschland") {
			info.Country = domain.DefaultCountry
		}
	}

	return info
}

// blockText renders a selection as plain text with line breaks at <br> tags
// and after block elements, so the address block keeps its line structure.
func blockText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	var sb strings.Builder
	for _, n := range sel.Nodes {
		writeNodeText(n, &sb)
	}
	return sb.String()
}

func writeNodeText(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		if n.Data == "br" {
			sb.WriteString("\n")
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeNodeText(c, sb)
	}
	if n.Type == html.ElementNode {
		switch n.Data {
		case "div", "p", "li":
			sb.WriteString("\n")
		}
	}
}

func defaultHTMLDescription(title, description string) string {
	if description != "" {
		return "<p>" + description + "</p>"
	}
	return "<p>" + title + "</p>"
}

func collapseSpaces(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
