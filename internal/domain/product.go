package domain

// ProductRecord is the unit of work flowing through the pipeline: one scrape
// attempt's extracted fields plus the marketplace copy generated for them.
// The JSON keys are the wire contract consumed by the desktop frontend and
// must not change.
type ProductRecord struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`

	Title        string            `json:"dm_baslik,omitempty"`
	Description  string            `json:"dm_aciklama,omitempty"`
	Price        string            `json:"fiyat,omitempty"`
	EAN          string            `json:"ean,omitempty"`
	Images       []string          `json:"resimler,omitempty"`
	Manufacturer ManufacturerInfo  `json:"manufacturer,omitempty"`
	Specs        map[string]string `json:"specifications,omitempty"`

	EnrichedCopy

	SimilarityCheck *SimilarityCheck `json:"similarity_check,omitempty"`

	// Error and Message are set only on failure records.
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// EnrichedCopy holds the marketplace-ready copy. It is produced either by the
// AI client or by the deterministic fallback generator; both paths satisfy
// the same bounds (title <= 80 chars, 4-6 bullets, inline-safe HTML).
type EnrichedCopy struct {
	EbayTitle       string   `json:"ebay_title,omitempty"`
	BulletPoints    []string `json:"bullet_points,omitempty"`
	HTMLDescription string   `json:"html_description,omitempty"`
}

// ManufacturerInfo is parsed once from the page's address block.
type ManufacturerInfo struct {
	Name         string `json:"name"`
	AddressLine1 string `json:"address_line1"`
	City         string `json:"city"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
}

// DefaultCountry is assumed when the address block names no other country.
const DefaultCountry = "Deutschland"

// Spec attribute keys. The set is fixed; values default to empty string.
const (
	SpecBrand             = "marke"
	SpecProductType       = "produktart"
	SpecFormulation       = "formulierung"
	SpecActiveIngredients = "wirksame_inhaltsstoffe"
	SpecManufacturerNo    = "herstellernummer"
	SpecTabletCount       = "anzahl_tabletten"
	SpecMainPurpose       = "hauptverwendungszweck"
	SpecIngredients       = "inhaltsstoffe"
	SpecSupply            = "versorgung"
)

// NewSpecs returns the fixed attribute set with every value empty.
func NewSpecs() map[string]string {
	return map[string]string{
		SpecBrand:             "",
		SpecProductType:       "",
		SpecFormulation:       "",
		SpecActiveIngredients: "",
		SpecManufacturerNo:    "",
		SpecTabletCount:       "",
		SpecMainPurpose:       "",
		SpecIngredients:       "",
		SpecSupply:            "",
	}
}

// NewFailureRecord builds the record returned for any extraction failure.
// It carries no extracted fields beyond the source URL.
func NewFailureRecord(url string, err error) *ProductRecord {
	return &ProductRecord{
		Success: false,
		URL:     url,
		Error:   err.Error(),
		Message: "Veri çekme hatası: " + err.Error(),
	}
}

// SimilarityCheck is the similarity guard's verdict for a generated text
// against its source, attached to the record for diagnostics.
type SimilarityCheck struct {
	Similarity float64 `json:"similarity"`
	Status     string  `json:"status"`
}

// Similarity guard statuses.
const (
	SimilarityStatusOK         = "ok"
	SimilarityStatusTooSimilar = "too_similar"
)

// ConnectionStatus is the structured result of an AI connectivity probe.
// Each probe returns a fresh value; the client keeps no error state between
// calls.
type ConnectionStatus struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
