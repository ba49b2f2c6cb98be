package extractor

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/digimosa/phonescan/internal/models"
)

// ExcelScanner scans .xlsx workbooks cell by cell. Checking cells
// individually is safer than joining rows, which could manufacture digit
// runs across cell boundaries.
type ExcelScanner struct {
	opts Options
}

func (s *ExcelScanner) Scan(reader io.Reader) ([]models.Match, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var matches []models.Match

	for _, sheet := range f.GetSheetList() {
		// Streaming row iterator for memory efficiency.
		rows, err := f.Rows(sheet)
		if err != nil {
			continue
		}

		rowIdx := 0
		for rows.Next() {
			rowIdx++
			row, err := rows.Columns()
			if err != nil {
				break
			}

			for colIdx, cellValue := range row {
				if cellValue == "" {
					continue
				}

				cellMatches := findNumbers(cellValue, s.opts, 0)
				for j := range cellMatches {
					// Row index stands in for the offset; the cell itself
					// is the context.
					cellMatches[j].Offset = int64(rowIdx)
					cellMatches[j].Snippet = cellValue
				}
				matches = append(matches, cellMatches...)

				// Guard against extremely wide sheets.
				if colIdx > 1000 {
					break
				}
			}
		}
	}

	return matches, nil
}
