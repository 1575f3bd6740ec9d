package importer

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExcelReader reads the first sheet. Scanning tools often put a title such
// as the agency name above the column headers, so leading rows with fewer
// than two filled cells are skipped.
type ExcelReader struct{}

func (r *ExcelReader) Read(path string) ([]Record, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open excel file %s: %w", path, err)
	}
	defer file.Close()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("excel file has no sheets: %s", path)
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %s: %w", sheetName, err)
	}

	header := headerRowIndex(rows)
	if header < 0 {
		return nil, fmt.Errorf("sheet %s has no header row", sheetName)
	}

	return recordsFromRows(rows[header], rows[header+1:], header+2), nil
}

func headerRowIndex(rows [][]string) int {
	for i, row := range rows {
		filled := 0
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				filled++
			}
		}
		if filled >= 2 {
			return i
		}
	}
	return -1
}
