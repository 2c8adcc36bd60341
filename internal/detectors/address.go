package detectors

import (
	"regexp"

	"github.com/digimosa/pii-redact/internal/models"
)

// German postal addresses: a street word carrying a common suffix, a house
// number, and optionally ", PLZ city". Multi-word street names without a
// suffix ("Am Markt 3") are deliberately out of shape; they cannot be told
// apart from ordinary prose without a gazetteer.
var addressPattern = regexp.MustCompile(`\b[A-ZÄÖÜ][a-zäöüß]*(?:straße|strasse|str\.|weg|platz|allee|gasse|ring|damm|ufer)\s\d{1,4}[a-z]?(?:,\s?(\d{5})\s([A-ZÄÖÜ][A-Za-zäöüß\-]+))?`)

type AddressDetector struct {
	BaseRegexDetector
}

func NewAddressDetector() *AddressDetector {
	return &AddressDetector{
		BaseRegexDetector: BaseRegexDetector{
			Pattern:    addressPattern,
			Label:      models.CategoryAddress,
			Confidence: 0.75,
		},
	}
}

func (d *AddressDetector) Scan(u *models.TextUnit) []models.Candidate {
	var found []models.Candidate
	for _, m := range addressPattern.FindAllStringSubmatchIndex(u.String(), -1) {
		c := models.Candidate{
			Category:   d.Label,
			Start:      u.RuneOffset(m[0]),
			End:        u.RuneOffset(m[1]),
			Source:     models.SourcePattern,
			Confidence: d.Confidence,
		}
		// A postal code plus city makes the match far more specific.
		if m[2] >= 0 {
			c.Confidence = 0.92
			c.Metadata = &models.Metadata{
				Country: "DE",
				Region:  u.String()[m[4]:m[5]],
			}
		}
		found = append(found, c)
	}
	return found
}
