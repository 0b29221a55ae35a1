package usecase

import (
	"regexp"
	"strings"

	"github.com/produktlister/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	multiSpaceRe = regexp.MustCompile(`\s+`)
	// Everything outside the allow-set is dropped before comparison: letters
	// including the German umlauts, digits, space, and light punctuation.
	disallowedCharRe = regexp.MustCompile(`[^a-zäöüß0-9 ,.\-_/]`)
)

// SimilarityGuard flags generated copy that is too close to the source text
// to publish (copyright risk). The ratio is character-level and
// order-sensitive, computed over normalized strings.
type SimilarityGuard struct {
	threshold float64
}

// NewSimilarityGuard creates a guard. A pair whose similarity exceeds
// threshold is flagged as too similar.
func NewSimilarityGuard(threshold float64) *SimilarityGuard {
	return &SimilarityGuard{threshold: threshold}
}

// Normalize lowercases, collapses whitespace runs, strips characters outside
// the allow-set, and trims.
func (g *SimilarityGuard) Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)
	text = multiSpaceRe.ReplaceAllString(text, " ")
	text = disallowedCharRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// Similarity returns a ratio in [0,1]. An empty side (after normalization)
// yields 0.0, and the measure is symmetric in its arguments.
func (g *SimilarityGuard) Similarity(a, b string) float64 {
	an := g.Normalize(a)
	bn := g.Normalize(b)
	if an == "" || bn == "" {
		return 0.0
	}
	return sequenceRatio([]rune(an), []rune(bn))
}

// Check classifies a source/generated pair. Similarity strictly above the
// threshold means the generated text is too close to the source.
func (g *SimilarityGuard) Check(source, generated string) domain.SimilarityCheck {
	sim := g.Similarity(source, generated)
	status := domain.SimilarityStatusOK
	if sim > g.threshold {
		status = domain.SimilarityStatusTooSimilar
	}
	return domain.SimilarityCheck{Similarity: sim, Status: status}
}

// sequenceRatio computes 2*M/T where M is the total size of the
// longest-matching-blocks decomposition of the two sequences and T the sum of
// their lengths. This is the ratio difflib's SequenceMatcher computes.
func sequenceRatio(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 0.0
	}
	matched := matchingSize(a, b, 0, len(a), 0, len(b))
	return 2 * float64(matched) / float64(total)
}

// matchingSize finds the longest common block in the window, then recurses
// into the pieces on either side of it.
func matchingSize(a, b []rune, alo, ahi, blo, bhi int) int {
	i, j, size := longestMatch(a, b, alo, ahi, blo, bhi)
	if size == 0 {
		return 0
	}
	return size +
		matchingSize(a, b, alo, i, blo, j) +
		matchingSize(a, b, i+size, ahi, j+size, bhi)
}

// longestMatch returns the longest block a[i:i+size] == b[j:j+size] within
// the window, preferring the earliest position in a, then in b.
func longestMatch(a, b []rune, alo, ahi, blo, bhi int) (besti, bestj, bestSize int) {
	besti, bestj = alo, blo
	j2len := make(map[int]int)

	for i := alo; i < ahi; i++ {
		newJ2len := make(map[int]int)
		for j := blo; j < bhi; j++ {
			if a[i] != b[j] {
				continue
			}
			k := j2len[j-1] + 1
			newJ2len[j] = k
			if k > bestSize {
				besti, bestj, bestSize = i-k+1, j-k+1, k
			}
		}
		j2len = newJ2len
	}

	return besti, bestj, bestSize
}
