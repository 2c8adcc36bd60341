package detectors

import (
	"regexp"

	"github.com/digimosa/pii-redact/internal/models"
)

// German driver's-license numbers are eleven alphanumerics (authority key,
// serial, check digit, issue code). The detector anchors on the keyword
// plus the identifier shape: mentioning "kein Führerschein" without an
// adjacent number-shaped token produces no candidate.
var licensePattern = regexp.MustCompile(`(?i:führerschein(?:-?(?:nr|nummer))?)[.:]?\s*([A-Z][0-9]{2}[A-Z0-9]{6}[0-9][A-Z0-9])\b`)

type DriversLicenseDetector struct {
	BaseRegexDetector
}

func NewDriversLicenseDetector() *DriversLicenseDetector {
	return &DriversLicenseDetector{
		BaseRegexDetector: BaseRegexDetector{
			Pattern:    licensePattern,
			Label:      models.CategoryDriversLicense,
			Confidence: 0.9,
		},
	}
}

func (d *DriversLicenseDetector) Scan(u *models.TextUnit) []models.Candidate {
	var found []models.Candidate
	for _, m := range licensePattern.FindAllStringSubmatchIndex(u.String(), -1) {
		found = append(found, models.Candidate{
			Category:   d.Label,
			Start:      u.RuneOffset(m[2]),
			End:        u.RuneOffset(m[3]),
			Source:     models.SourcePattern,
			Confidence: d.Confidence,
			Metadata:   &models.Metadata{Country: "DE"},
		})
	}
	return found
}
