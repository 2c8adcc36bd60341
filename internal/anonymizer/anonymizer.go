// Package anonymizer rewrites an input text, replacing resolved spans
// with category mask tokens while keeping all surrounding text verbatim.
package anonymizer

import (
	"fmt"
	"strings"

	"github.com/digimosa/pii-redact/internal/models"
)

// tokens holds the fixed placeholder per category. Tokens deliberately do
// not look like any detectable PII shape, so re-scanning anonymized output
// finds nothing.
var tokens = map[models.Category]string{
	models.CategoryDate:           "[DATUM]",
	models.CategoryIBAN:           "[IBAN]",
	models.CategoryCreditCard:     "[KREDITKARTE]",
	models.CategoryPhone:          "[TELEFON]",
	models.CategoryEmail:          "[EMAIL]",
	models.CategoryURL:            "[URL]",
	models.CategoryAddress:        "[ADRESSE]",
	models.CategoryTaxID:          "[STEUER-ID]",
	models.CategoryPassport:       "[AUSWEIS]",
	models.CategoryDriversLicense: "[FUEHRERSCHEIN]",
	models.CategoryPerson:         "[PERSON]",
	models.CategoryOrganization:   "[ORGANISATION]",
	models.CategoryLocation:       "[ORT]",
	models.CategoryProfession:     "[BERUF]",
}

type Anonymizer struct {
	// ConsistentPseudonymization numbers tokens per category so the same
	// literal source text receives the same token across all of its
	// occurrences within one input.
	ConsistentPseudonymization bool
}

func New(consistent bool) *Anonymizer {
	return &Anonymizer{ConsistentPseudonymization: consistent}
}

// Token returns the plain mask token for a category.
func Token(cat models.Category) string {
	if t, ok := tokens[cat]; ok {
		return t
	}
	return "[PII]"
}

// Apply promotes the resolved candidates into detections and builds the
// anonymized text in one left-to-right pass over code points, so earlier
// replacements never shift later offsets. The input candidates must be
// non-overlapping and sorted by start (the resolver guarantees both).
func (a *Anonymizer) Apply(u *models.TextUnit, resolved []models.Candidate) ([]models.Detection, string) {
	detections := make([]models.Detection, 0, len(resolved))

	var counters map[models.Category]int
	var assigned map[string]string
	if a.ConsistentPseudonymization {
		counters = make(map[models.Category]int)
		assigned = make(map[string]string)
	}

	var sb strings.Builder
	cursor := 0
	for _, c := range resolved {
		text := u.Slice(c.Start, c.End)
		token := Token(c.Category)
		if a.ConsistentPseudonymization {
			key := string(c.Category) + "\x00" + text
			if t, ok := assigned[key]; ok {
				token = t
			} else {
				counters[c.Category]++
				token = fmt.Sprintf("%s_%d]", strings.TrimSuffix(Token(c.Category), "]"), counters[c.Category])
				assigned[key] = token
			}
		}

		sb.WriteString(u.Slice(cursor, c.Start))
		sb.WriteString(token)
		cursor = c.End

		detections = append(detections, models.Detection{
			Category:   c.Category,
			Token:      token,
			Text:       text,
			Start:      c.Start,
			End:        c.End,
			Confidence: c.Confidence,
			Metadata:   c.Metadata,
		})
	}
	sb.WriteString(u.Slice(cursor, u.Len()))

	return detections, sb.String()
}
