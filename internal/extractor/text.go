package extractor

import (
	"os"
	"strings"
	"unicode/utf8"
)

// TextExtractor reads a plain-text file as a single unit. Control bytes
// are replaced with spaces so a stray binary region cannot derail the
// detectors; valid UTF-8 (including umlauts) passes through untouched.
type TextExtractor struct{}

func (e *TextExtractor) Extract(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := sanitize(data)
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	return []string{text}, nil
}

func sanitize(data []byte) string {
	if utf8.Valid(data) {
		var sb strings.Builder
		sb.Grow(len(data))
		for _, r := range string(data) {
			if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
				sb.WriteRune(' ')
			} else {
				sb.WriteRune(r)
			}
		}
		return sb.String()
	}

	// Not UTF-8: keep printable ASCII and likely text bytes, blank the rest.
	out := make([]byte, len(data))
	for i, b := range data {
		if (b >= 32 && b <= 126) || b == 9 || b == 10 || b == 13 || b > 127 {
			out[i] = b
		} else {
			out[i] = ' '
		}
	}
	return string(out)
}
