package detectors

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/digimosa/pii-redact/internal/models"
)

// Intentionally broad: 13-19 digits with optional single space/hyphen
// separators. The Luhn gate does the real filtering, so a digit run that
// merely looks card-shaped ("1234 5678 1234 5671") never becomes a
// candidate.
var creditCardPattern = regexp.MustCompile(`\b\d(?:[ -]?\d){12,18}\b`)

type CreditCardDetector struct {
	BaseRegexDetector
}

func NewCreditCardDetector() *CreditCardDetector {
	return &CreditCardDetector{
		BaseRegexDetector: BaseRegexDetector{
			Pattern:    creditCardPattern,
			Label:      models.CategoryCreditCard,
			Confidence: 0.95,
		},
	}
}

func (d *CreditCardDetector) Scan(u *models.TextUnit) []models.Candidate {
	var found []models.Candidate
	for _, loc := range d.Pattern.FindAllStringIndex(u.String(), -1) {
		match := u.String()[loc[0]:loc[1]]
		digits := digitsOnly(match)
		if len(digits) < 13 || len(digits) > 19 {
			continue
		}
		if !luhnCheck(digits) {
			continue
		}
		found = append(found, models.Candidate{
			Category:   d.Label,
			Start:      u.RuneOffset(loc[0]),
			End:        u.RuneOffset(loc[1]),
			Source:     models.SourcePattern,
			Confidence: d.Confidence,
			Metadata: &models.Metadata{
				NumberType: cardNetwork(digits),
				Scheme:     "luhn",
				Validated:  true,
			},
		})
	}
	return found
}

func digitsOnly(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// luhnCheck implements the Luhn algorithm over a digit string.
func luhnCheck(cc string) bool {
	sum := 0
	alternate := false
	for i := len(cc) - 1; i >= 0; i-- {
		n := int(cc[i] - '0')
		if alternate {
			n *= 2
			if n > 9 {
				n = (n % 10) + 1
			}
		}
		sum += n
		alternate = !alternate
	}
	return sum%10 == 0
}

// cardNetwork gives a coarse issuer classification from the prefix.
func cardNetwork(digits string) string {
	switch {
	case strings.HasPrefix(digits, "4"):
		return "visa"
	case len(digits) >= 2 && digits[0] == '5' && digits[1] >= '1' && digits[1] <= '5':
		return "mastercard"
	case strings.HasPrefix(digits, "34"), strings.HasPrefix(digits, "37"):
		return "amex"
	default:
		return "card"
	}
}
