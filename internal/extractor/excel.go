package extractor

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExcelExtractor yields one text unit per non-empty row, cells joined by
// tabs. Row granularity keeps one person's record in one unit so
// consistent pseudonymization applies within it.
type ExcelExtractor struct{}

func (e *ExcelExtractor) Extract(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var units []string
	for _, sheet := range f.GetSheetList() {
		rows, err := f.Rows(sheet)
		if err != nil {
			continue
		}
		for rows.Next() {
			row, err := rows.Columns()
			if err != nil {
				break
			}
			line := strings.TrimSpace(strings.Join(row, "\t"))
			if line != "" {
				units = append(units, line)
			}
		}
		_ = rows.Close()
	}
	return units, nil
}
