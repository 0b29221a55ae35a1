package export

import (
	"regexp"
	"strings"

	"github.com/produktlister/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var priceCharRe = regexp.MustCompile(`[^0-9,.]`)

const (
	maxImagesPerRow = 12
	maxTitleLen     = 80
)

// ResolveColumn returns the cell value for one header of one record. It is
// total over the header set: unmapped columns resolve to the empty string.
//
// Failure records fill nothing but the Title column, which carries the error
// so a spreadsheet reviewer sees which rows need re-scraping.
func ResolveColumn(header string, rec *domain.ProductRecord) string {
	if !rec.Success {
		if header == "Title" {
			return "HATA: " + failureReason(rec)
		}
		return ""
	}

	switch header {
	case "*Action(SiteID=Germany|Country=DE|Currency=EUR|Version=1193)":
		return "Add"
	case "Custom label (SKU)", "P:EAN":
		return rec.EAN
	case "Title":
		return rowTitle(rec)
	case "Start price":
		return NormalizePrice(rec.Price)
	case "Quantity":
		return "1"
	case "Item photo URL":
		return joinImages(rec.Images)
	case "Description":
		return rec.HTMLDescription
	case "C:Marke":
		return rec.Specs[domain.SpecBrand]
	case "C:Formulierung":
		return rec.Specs[domain.SpecFormulation]
	case "C:Wirksame Inhaltsstoffe":
		return rec.Specs[domain.SpecActiveIngredients]
	case "C:Produktart":
		return rec.Specs[domain.SpecProductType]
	case "C:Herstellernummer":
		return rec.Specs[domain.SpecManufacturerNo]
	case "C:Anzahl der Tabletten":
		return rec.Specs[domain.SpecTabletCount]
	case "C:Hauptverwendungszweck":
		return rec.Specs[domain.SpecMainPurpose]
	case "C:Inhaltsstoffe":
		return rec.Specs[domain.SpecIngredients]
	case "C:Versorgung":
		return rec.Specs[domain.SpecSupply]
	case "Manufacturer Name":
		return rec.Manufacturer.Name
	case "Manufacturer AddressLine1":
		return rec.Manufacturer.AddressLine1
	case "Manufacturer City":
		return rec.Manufacturer.City
	case "Manufacturer PostalCode":
		return rec.Manufacturer.PostalCode
	case "Manufacturer Country":
		return rec.Manufacturer.Country
	}
	return ""
}

// NormalizePrice strips everything but digits and separators, then rewrites
// the decimal comma so the sheet carries "19.99" for "19,99 €".
func NormalizePrice(price string) string {
	s := strings.TrimSpace(price)
	if s == "" {
		return ""
	}
	s = priceCharRe.ReplaceAllString(s, "")
	return strings.ReplaceAll(s, ",", ".")
}

func rowTitle(rec *domain.ProductRecord) string {
	title := rec.EbayTitle
	if title == "" {
		title = rec.Title
	}
	r := []rune(title)
	if len(r) > maxTitleLen {
		return string(r[:maxTitleLen])
	}
	return title
}

func joinImages(images []string) string {
	if len(images) > maxImagesPerRow {
		images = images[:maxImagesPerRow]
	}
	return strings.Join(images, "|")
}

func failureReason(rec *domain.ProductRecord) string {
	if rec.Error != "" {
		return rec.Error
	}
	if rec.Message != "" {
		return rec.Message
	}
	return "Bilinmeyen hata"
}
