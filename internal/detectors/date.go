package detectors

import (
	"regexp"
	"strconv"

	"github.com/digimosa/pii-redact/internal/models"
)

// Numeric German dates (12.04.1985, 3.7.25) and written-month forms
// (12. April 1985). Day/month ranges are verified in code, the regex only
// fixes the shape.
var (
	numericDatePattern = regexp.MustCompile(`\b([0-3]?\d)\.([01]?\d)\.(\d{4}|\d{2})\b`)
	writtenDatePattern = regexp.MustCompile(`\b[0-3]?\d\.\s?(?:Januar|Februar|März|April|Mai|Juni|Juli|August|September|Oktober|November|Dezember)\s\d{4}\b`)
)

type DateDetector struct {
	BaseRegexDetector
}

func NewDateDetector() *DateDetector {
	return &DateDetector{
		BaseRegexDetector: BaseRegexDetector{
			Pattern:    numericDatePattern,
			Label:      models.CategoryDate,
			Confidence: 0.85,
		},
	}
}

func (d *DateDetector) Scan(u *models.TextUnit) []models.Candidate {
	var found []models.Candidate

	for _, m := range numericDatePattern.FindAllStringSubmatchIndex(u.String(), -1) {
		day, _ := strconv.Atoi(u.String()[m[2]:m[3]])
		month, _ := strconv.Atoi(u.String()[m[4]:m[5]])
		if day < 1 || day > 31 || month < 1 || month > 12 {
			continue
		}
		found = append(found, d.candidate(u, m[0], m[1]))
	}

	for _, loc := range writtenDatePattern.FindAllStringIndex(u.String(), -1) {
		found = append(found, d.candidate(u, loc[0], loc[1]))
	}

	return found
}

func (d *DateDetector) candidate(u *models.TextUnit, start, end int) models.Candidate {
	return models.Candidate{
		Category:   d.Label,
		Start:      u.RuneOffset(start),
		End:        u.RuneOffset(end),
		Source:     models.SourcePattern,
		Confidence: d.Confidence,
	}
}
