package detectors

import (
	"regexp"

	"github.com/digimosa/pii-redact/internal/models"
)

// Standard email pattern. Strict enough that no checksum exists to gate
// on; confidence reflects the pattern's specificity.
var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

type EmailDetector struct {
	BaseRegexDetector
}

func NewEmailDetector() *EmailDetector {
	return &EmailDetector{
		BaseRegexDetector: BaseRegexDetector{
			Pattern:    emailPattern,
			Label:      models.CategoryEmail,
			Confidence: 0.95,
		},
	}
}
