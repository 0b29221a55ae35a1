package dm

import (
	"regexp"
	"strings"
)

// Boilerplate segments the dm.de description carries but a listing must not:
// the article-number line, dosage notices, and the hint block that runs up to
// the manufacturing notice. The hint pattern is the only one allowed to span
// lines.
var (
	articleNumberRe = regexp.MustCompile(`(?i)dm-Artikelnummer:.*?(?:\n|$)`)
	dosageRe        = regexp.MustCompile(`(?i)Dosierungsempfehlung:.*?(?:\n|$)`)
	hintBlockRe     = regexp.MustCompile(`(?is)Hinweis:.*?(?:Hergestellt|$)`)
	manufacturedRe  = regexp.MustCompile(`(?i)Hergestellt.*?(?:\n|$)`)
)

// CleanDescription strips known dm.de boilerplate from raw description text
// and trims the result. Applying it twice yields the same output as once.
func CleanDescription(text string) string {
	text = articleNumberRe.ReplaceAllString(text, "")
	text = dosageRe.ReplaceAllString(text, "")
	text = hintBlockRe.ReplaceAllString(text, "")
	text = manufacturedRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
