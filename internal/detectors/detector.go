// Package detectors implements the deterministic pattern detectors for
// structured PII categories. Every detector is stateless: it scans one
// TextUnit and returns zero or more candidate spans in code-point offsets.
package detectors

import (
	"regexp"
	"sync"

	"github.com/digimosa/pii-redact/internal/models"
)

// Detector is the single capability shared by all pattern detectors.
type Detector interface {
	Scan(u *models.TextUnit) []models.Candidate
	Category() models.Category
}

// BaseRegexDetector implements common regex scanning logic. Matches are
// reported with code-point offsets so they line up with model output.
type BaseRegexDetector struct {
	Pattern    *regexp.Regexp
	Label      models.Category
	Confidence float64
}

func (d *BaseRegexDetector) Scan(u *models.TextUnit) []models.Candidate {
	if d.Pattern == nil {
		return nil
	}

	var found []models.Candidate
	for _, loc := range d.Pattern.FindAllStringIndex(u.String(), -1) {
		found = append(found, models.Candidate{
			Category:   d.Label,
			Start:      u.RuneOffset(loc[0]),
			End:        u.RuneOffset(loc[1]),
			Source:     models.SourcePattern,
			Confidence: d.Confidence,
		})
	}
	return found
}

func (d *BaseRegexDetector) Category() models.Category {
	return d.Label
}

var (
	defaultSetOnce sync.Once
	defaultSet     []Detector
)

// DefaultSet returns the full detector set for the configured locale.
// The set is built once and shared read-only across all invocations.
func DefaultSet() []Detector {
	defaultSetOnce.Do(func() {
		defaultSet = []Detector{
			NewDateDetector(),
			NewIBANDetector(),
			NewCreditCardDetector(),
			NewPhoneDetector(),
			NewEmailDetector(),
			NewURLDetector(),
			NewAddressDetector(),
			NewTaxIDDetector(),
			NewPassportDetector(),
			NewDriversLicenseDetector(),
		}
	})
	return defaultSet
}
