package detectors

import (
	"regexp"
	"strings"

	"github.com/digimosa/pii-redact/internal/models"
)

// German numbers: +49/0049 country prefix or a 0-leading area code,
// followed by the subscriber number with optional space, hyphen or slash
// separators. The 0-leading forms carry a word boundary so the detector
// never latches onto a zero inside a longer digit run (IBANs, card
// numbers); the +49 form cannot (a boundary never holds between two
// non-word characters, so \b\+ would reject "+49" after a space) and
// needs none, since a literal plus cannot occur mid-run.
var phonePattern = regexp.MustCompile(`(?:\+49[ \-/]?|\b0049[ \-/]?|\b0)[1-9]\d{0,4}(?:[ \-/]?\d){5,12}\b`)

type PhoneDetector struct {
	BaseRegexDetector
}

func NewPhoneDetector() *PhoneDetector {
	return &PhoneDetector{
		BaseRegexDetector: BaseRegexDetector{
			Pattern:    phonePattern,
			Label:      models.CategoryPhone,
			Confidence: 0.85,
		},
	}
}

func (d *PhoneDetector) Scan(u *models.TextUnit) []models.Candidate {
	var found []models.Candidate
	for _, loc := range d.Pattern.FindAllStringIndex(u.String(), -1) {
		match := u.String()[loc[0]:loc[1]]
		digits := digitsOnly(match)
		// Shorter runs are postal codes or years, longer ones are
		// usually account numbers.
		if len(digits) < 7 || len(digits) > 15 {
			continue
		}
		numberType := "landline"
		if isMobilePrefix(digits) {
			numberType = "mobile"
		}
		found = append(found, models.Candidate{
			Category:   d.Label,
			Start:      u.RuneOffset(loc[0]),
			End:        u.RuneOffset(loc[1]),
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

// isMobilePrefix reports whether the national number starts with the
// German mobile range (015x, 016x, 017x).
func isMobilePrefix(digits string) bool {
	national := digits
	switch {
	case strings.HasPrefix(digits, "49"):
		national = "0" + digits[2:]
	case strings.HasPrefix(digits, "0049"):
		national = "0" + digits[4:]
	}
	return len(national) >= 3 && national[0] == '0' && national[1] == '1' &&
		national[2] >= '5' && national[2] <= '7'
}
