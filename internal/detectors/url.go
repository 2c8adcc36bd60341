package detectors

import (
	"regexp"
	"strings"

	"github.com/digimosa/pii-redact/internal/models"
)

// Matches scheme-prefixed URLs and bare www. hosts with an optional path.
// Sentence punctuation directly after a URL is trimmed in Scan.
var urlPattern = regexp.MustCompile(`(?:https?://[^\s<>"']+|\bwww\.[a-zA-Z0-9\-]+(?:\.[a-zA-Z]{2,})+(?:/[^\s<>"']*)?)`)

type URLDetector struct {
	BaseRegexDetector
}

func NewURLDetector() *URLDetector {
	return &URLDetector{
		BaseRegexDetector: BaseRegexDetector{
			Pattern:    urlPattern,
			Label:      models.CategoryURL,
			Confidence: 0.9,
		},
	}
}

// Scan trims trailing punctuation that the broad pattern swallows when a
// URL ends a sentence ("besuchen Sie www.example.de.").
func (d *URLDetector) Scan(u *models.TextUnit) []models.Candidate {
	var found []models.Candidate
	for _, loc := range d.Pattern.FindAllStringIndex(u.String(), -1) {
		start, end := loc[0], loc[1]
		match := u.String()[start:end]
		trimmed := strings.TrimRight(match, ".,;:!?)")
		end = start + len(trimmed)
		if end <= start {
			continue
		}
		found = append(found, models.Candidate{
			Category:   d.Label,
			Start:      u.RuneOffset(start),
			End:        u.RuneOffset(end),
			Source:     models.SourcePattern,
			Confidence: d.Confidence,
		})
	}
	return found
}
