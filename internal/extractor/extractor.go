// Package extractor turns supported document files into the batch of
// plain-text strings the pipeline consumes.
package extractor

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Extractor yields the text units of one document. Each returned string
// becomes one independent batch item.
type Extractor interface {
	Extract(path string) ([]string, error)
}

// ForFile returns the extractor matching the file extension.
func ForFile(path string) (Extractor, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		return &PDFExtractor{}, nil
	case ".xlsx":
		return &ExcelExtractor{}, nil
	case ".txt", ".csv", ".log", ".md", "":
		return &TextExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}
