package detectors

import (
	"regexp"

	"github.com/digimosa/pii-redact/internal/models"
)

// Eleven digits, never starting with zero (the shape of the German
// steuerliche Identifikationsnummer).
var taxIDPattern = regexp.MustCompile(`\b[1-9]\d{10}\b`)

// Keyword shortly before the number ("Steuer-ID: ..."). Checked against
// the text window preceding a structural match.
var taxIDKeyword = regexp.MustCompile(`(?i)(?:steuer[- ]?(?:id|identifikationsnummer|nummer)|idnr|ust[- ]?id)\W*$`)

type TaxIDDetector struct {
	BaseRegexDetector
}

func NewTaxIDDetector() *TaxIDDetector {
	return &TaxIDDetector{
		BaseRegexDetector: BaseRegexDetector{
			Pattern:    taxIDPattern,
			Label:      models.CategoryTaxID,
			Confidence: 0.97,
		},
	}
}

// Scan promotes an 11-digit run when it passes the ISO 7064 mod 11,10
// check digit. Runs that fail the checksum are still surfaced, at reduced
// confidence and without the validated flag, when an explicit tax-ID
// keyword directly precedes them; a bare unvalidated digit run is dropped.
func (d *TaxIDDetector) Scan(u *models.TextUnit) []models.Candidate {
	text := u.String()
	var found []models.Candidate
	for _, loc := range taxIDPattern.FindAllStringIndex(text, -1) {
		digits := text[loc[0]:loc[1]]
		validated := validTaxID(digits)
		anchored := keywordBefore(taxIDKeyword, text, loc[0])
		if !validated && !anchored {
			continue
		}
		conf := 0.97
		if !validated {
			conf = 0.7
		}
		found = append(found, models.Candidate{
			Category:   d.Label,
			Start:      u.RuneOffset(loc[0]),
			End:        u.RuneOffset(loc[1]),
			Source:     models.SourcePattern,
			Confidence: conf,
			Metadata: &models.Metadata{
				Country:   "DE",
				Scheme:    "mod11-10",
				Validated: validated,
			},
		})
	}
	return found
}

// validTaxID checks the final digit with the ISO 7064 mod 11,10 scheme
// used by the German IdNr.
func validTaxID(digits string) bool {
	if len(digits) != 11 {
		return false
	}
	product := 10
	for i := 0; i < 10; i++ {
		sum := (int(digits[i]-'0') + product) % 10
		if sum == 0 {
			sum = 10
		}
		product = (sum * 2) % 11
	}
	check := 11 - product
	if check == 10 {
		check = 0
	}
	return check == int(digits[10]-'0')
}

// keywordBefore reports whether re matches at the end of the window of
// text directly preceding offset.
func keywordBefore(re *regexp.Regexp, text string, offset int) bool {
	start := offset - 32
	if start < 0 {
		start = 0
	}
	return re.MatchString(text[start:offset])
}
