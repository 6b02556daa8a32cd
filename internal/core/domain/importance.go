package domain

import (
	"regexp"
	"strings"
)

// Importance score boundaries. Scores act as multipliers on top of the
// query similarity score, so the range is kept tight.
const (
	MinImportance = 1.0
	MaxImportance = 2.0
)

var (
	titleLineRe  = regexp.MustCompile(`(?m)^[A-ZÁÂÃÀÉÊÍÓÔÕÚÇ][A-ZÁÂÃÀÉÊÍÓÔÕÚÇ0-9\s.,:;-]{4,}$`)
	numericRe    = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
	listMarkerRe = regexp.MustCompile(`(?m)^\s*(?:[-*•]|\d+[.)])\s+`)
)

// ImportanceScore assigns a heuristic structural relevance weight to a
// chunk, independent of any query. The score is multiplicative starting
// at 1.0 and clamped to MaxImportance:
//
//   - first three pages (likely intro/summary): ×1.3
//   - last two pages (likely conclusion): ×1.2
//   - title-like all-caps line present: ×1.4
//   - more than five numeric tokens: ×1.2
//   - list/enumeration markers at line start: ×1.1
//   - long passage (> 600 chars): ×1.1
//
// Malformed input never panics; it yields the neutral MinImportance.
func ImportanceScore(text string, pageNumber, totalPages int) float64 {
	if strings.TrimSpace(text) == "" || pageNumber <= 0 || totalPages <= 0 {
		return MinImportance
	}

	score := MinImportance

	if pageNumber <= 3 {
		score *= 1.3
	}
	if pageNumber > totalPages-2 {
		score *= 1.2
	}
	if titleLineRe.MatchString(text) {
		score *= 1.4
	}
	if len(numericRe.FindAllString(text, 6)) > 5 {
		score *= 1.2
	}
	if listMarkerRe.MatchString(text) {
		score *= 1.1
	}
	if len(text) > 600 {
		score *= 1.1
	}

	if score > MaxImportance {
		score = MaxImportance
	}
	return score
}
