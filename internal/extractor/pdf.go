package extractor

import (
	"os"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor yields one text unit per page.
type PDFExtractor struct{}

func (e *PDFExtractor) Extract(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	doc, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return nil, err
	}

	var units []string
	for i := 1; i <= doc.NumPage(); i++ {
		page := doc.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages; the rest of the document is still
			// worth anonymizing.
			continue
		}
		units = append(units, content)
	}
	return units, nil
}
