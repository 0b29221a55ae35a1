package openrouter

import (
	"fmt"
	"sort"
	"strings"
)

// The prompts are German on purpose: the target marketplace is eBay.de and
// the generated copy must read natively.

func titlePrompt(productName, brand, specs string) string {
	if brand == "" {
		brand = "unbekannt"
	}
	if specs == "" {
		specs = "keine"
	}
	return strings.TrimSpace(fmt.Sprintf(`
Erstelle einen eBay-Titel auf Deutsch für dieses Produkt.

Produktname: %s
Marke: %s
Spezifikationen: %s

REGELN:
- Maximal 80 Zeichen
- Auf Deutsch
- Keine Anführungszeichen
- Format: Marke + Produkt + Menge/Volumen (wenn sinnvoll)
- Klar und prägnant
- Keine Werbewörter wie "NEU", "ORIGINAL"

Antworte NUR mit dem Titel, nichts anderes.`, productName, brand, specs))
}

func bulletPrompt(productName, description string, specs map[string]string) string {
	specsText := formatSpecs(specs)
	if specsText == "" {
		specsText = "keine"
	}
	return strings.TrimSpace(fmt.Sprintf(`
Erstelle 4-6 Bullet Points auf Deutsch für eBay.

Produktname: %s
Beschreibung (Auszug): %s
Spezifikationen:
%s

REGELN:
- Auf Deutsch
- Direkt Bullet Points, keine Einleitung
- Keine Wiederholungen
- Keine Floskeln wie "Beschreibung", "SEO"
- Jeder Punkt kurz & nutzerorientiert

Format:
- Punkt 1
- Punkt 2
- Punkt 3
- Punkt 4`, productName, truncateRunes(description, 500), specsText))
}

func htmlDescriptionPrompt(productName, description string, bullets []string, specs map[string]string) string {
	specsText := formatSpecs(specs)
	if specsText == "" {
		specsText = "keine"
	}
	var bulletLines []string
	for _, b := range bullets {
		bulletLines = append(bulletLines, "- "+b)
	}
	return strings.TrimSpace(fmt.Sprintf(`
Erstelle eine eBay-kompatible HTML-Produktbeschreibung auf Deutsch.

Produktname: %s
Originalbeschreibung (Auszug): %s
Vorteile:
%s
Spezifikationen:
%s

REGELN:
- NUR HTML (kein Markdown, keine Erklärungen)
- Keine <script> oder <style>
- Struktur: zuerst <ul><li>..</li></ul>, danach 1-2 <p>
- Keine Wörter wie "Beschreibung", "SEO", "DM", "dm.de"

Antworte NUR mit HTML.`, productName, truncateRunes(description, 800), strings.Join(bulletLines, "\n"), specsText))
}

// connectivityPrompt expects a short fixed acknowledgement.
const connectivityPrompt = "Antworte nur mit 'OK'."

// formatSpecs renders the non-empty attributes as "key: value" lines in a
// stable order.
func formatSpecs(specs map[string]string) string {
	keys := make([]string, 0, len(specs))
	for k, v := range specs {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var lines []string
	for _, k := range keys {
		lines = append(lines, k+": "+specs[k])
	}
	return strings.Join(lines, "\n")
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
