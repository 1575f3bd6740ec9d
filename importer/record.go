package importer

import (
	"strings"
)

type Record struct {
	RowNumber int
	Values    map[string]string
}

func (r Record) Get(keys ...string) string {
	for _, key := range keys {
		normalized := normalizeHeader(key)
		if value, ok := r.Values[normalized]; ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// Blank reports whether every cell is empty.
func (r Record) Blank() bool {
	for _, value := range r.Values {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

func normalizeHeader(input string) string {
	trimmed := strings.TrimSpace(strings.ToLower(input))
	trimmed = strings.TrimPrefix(trimmed, "\ufeff")
	trimmed = strings.ReplaceAll(trimmed, "_", "")
	trimmed = strings.ReplaceAll(trimmed, "-", "")
	trimmed = strings.ReplaceAll(trimmed, " ", "")
	return trimmed
}

// recordsFromRows keys every data row by the normalized first row. Blank
// rows and trailing total rows are dropped; RowNumber is the 1-based line
// in the source including the header.
func recordsFromRows(headers []string, rows [][]string, firstRowNumber int) []Record {
	normalizedHeaders := make([]string, len(headers))
	for i, header := range headers {
		normalizedHeaders[i] = normalizeHeader(header)
	}

	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		if isTotalRow(row) {
			break
		}

		values := make(map[string]string, len(normalizedHeaders))
		for col := range normalizedHeaders {
			if col < len(row) {
				values[normalizedHeaders[col]] = row[col]
			} else {
				values[normalizedHeaders[col]] = ""
			}
		}

		record := Record{RowNumber: firstRowNumber + i, Values: values}
		if record.Blank() {
			continue
		}
		records = append(records, record)
	}
	return records
}

// Paper timesheet exports close the grid with a totals line.
func isTotalRow(row []string) bool {
	for _, cell := range row {
		cell = strings.ToLower(strings.TrimSpace(cell))
		if cell == "" {
			continue
		}
		return cell == "total" || cell == "totals" || cell == "weekly total"
	}
	return false
}
