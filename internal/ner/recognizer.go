// Package ner provides the statistical named-entity side of the pipeline:
// candidates for free-text categories (persons, organizations, locations,
// professions) with model-derived confidence scores.
package ner

import (
	"github.com/digimosa/pii-redact/internal/models"
)

// Recognizer is the capability the pipeline consumes. Implementations
// must be deterministic for identical input and must report spans in the
// same code-point offset space as the pattern detectors.
type Recognizer interface {
	Recognize(u *models.TextUnit) ([]models.Candidate, error)
}

// remapSpan re-anchors a model-reported span against the raw text. Model
// tokenizers routinely report offsets in their own normalization, so a
// span is only accepted if its text is found at (or near) the claimed
// position; otherwise the span is searched for in the full unit.
// Returns start, end in code points and ok=false when the text cannot be
// located at all.
func remapSpan(u *models.TextUnit, text string, claimedStart int) (int, int, bool) {
	if text == "" {
		return 0, 0, false
	}
	n := len([]rune(text))

	// Fast path: the claimed offset already lines up.
	if claimedStart >= 0 && claimedStart+n <= u.Len() && u.Slice(claimedStart, claimedStart+n) == text {
		return claimedStart, claimedStart + n, true
	}

	// Search outward from the claimed position first, then anywhere.
	best := -1
	for start := 0; start+n <= u.Len(); start++ {
		if u.Slice(start, start+n) != text {
			continue
		}
		if best == -1 || abs(start-claimedStart) < abs(best-claimedStart) {
			best = start
		}
	}
	if best == -1 {
		return 0, 0, false
	}
	return best, best + n, true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
