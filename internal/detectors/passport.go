package detectors

import (
	"regexp"
	"strings"

	"github.com/digimosa/pii-redact/internal/models"
)

// A document keyword followed by a nine-character serial built from digits
// and the consonant set German passports and identity cards use. The
// candidate span covers only the serial; the keyword is context, not PII.
// A keyword with no identifier-shaped token after it yields nothing.
var passportPattern = regexp.MustCompile(`((?i:reisepass(?:nummer)?|passnummer|personalausweis|ausweis(?:nummer)?))(?:[-.:]?\s*(?i:nr\.?:?\s*)?)([CFGHJKLMNPRTVWXYZ0-9]{9})\b`)

type PassportDetector struct {
	BaseRegexDetector
}

func NewPassportDetector() *PassportDetector {
	return &PassportDetector{
		BaseRegexDetector: BaseRegexDetector{
			Pattern:    passportPattern,
			Label:      models.CategoryPassport,
			Confidence: 0.9,
		},
	}
}

func (d *PassportDetector) Scan(u *models.TextUnit) []models.Candidate {
	var found []models.Candidate
	for _, m := range passportPattern.FindAllStringSubmatchIndex(u.String(), -1) {
		keyword := strings.ToLower(u.String()[m[2]:m[3]])
		numberType := "passport"
		if strings.Contains(keyword, "ausweis") {
			numberType = "id_card"
		}
		found = append(found, models.Candidate{
			Category:   d.Label,
			Start:      u.RuneOffset(m[4]),
			End:        u.RuneOffset(m[5]),
			Source:     models.SourcePattern,
			Confidence: d.Confidence,
			Metadata: &models.Metadata{
				Country:    "DE",
				NumberType: numberType,
			},
		})
	}
	return found
}
