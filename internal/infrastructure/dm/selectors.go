package dm

// Selectors pins down where each field lives in the dm.de product DOM.
// They are data, not code: tests substitute fixture documents and a layout
// change stays a one-line fix.
type Selectors struct {
	// Heading doubles as the page-readiness signal the renderer waits for.
	Heading        string
	Price          string
	Description    string
	IdentifierCell string
	AddressBlock   string
	// GallerySlot is a format string taking the 1-based slot index.
	GallerySlot  string
	GallerySlots int
}

// DefaultSelectors returns the selector set for the known dm.de layout.
func DefaultSelectors() Selectors {
	return Selectors{
		Heading:        "h1",
		Price:          ".text-xxl span.text-color2",
		Description:    ".gap-m div:nth-of-type(2) .whitespace-pre-line div",
		IdentifierCell: ".pdd_1qsttl15 div:nth-of-type(2)",
		AddressBlock:   "[data-dmid='Anschrift des Unternehmens-content'] .whitespace-pre-line div",
		GallerySlot:    "li:nth-of-type(%d) .p-xxxs img",
		GallerySlots:   10,
	}
}
