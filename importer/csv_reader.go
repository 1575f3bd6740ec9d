package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

type CSVReader struct{}

func (r *CSVReader) Read(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file %s: %w", path, err)
	}
	defer file.Close()

	return readDelimited(file, ',', "csv")
}

// readDelimited decodes UTF-8 or BOM-marked UTF-16 text and splits it on
// comma. Spreadsheet tools write either depending on the export dialog.
func readDelimited(source io.Reader, comma rune, kind string) ([]Record, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	reader := csv.NewReader(transform.NewReader(source, decoder))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", kind, err)
	}

	rows := make([][]string, 0, 128)
	rowNumber := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s row %d: %w", kind, rowNumber+1, err)
		}
		rows = append(rows, row)
		rowNumber++
	}

	return recordsFromRows(headers, rows, 2), nil
}
