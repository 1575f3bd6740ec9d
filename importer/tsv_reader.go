package importer

import (
	"fmt"
	"os"
)

// TSVReader reads tab-separated exports, typically UTF-16LE with a BOM as
// written by Windows scanning and OCR tools.
type TSVReader struct{}

func (r *TSVReader) Read(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tsv file %s: %w", path, err)
	}
	defer file.Close()

	return readDelimited(file, '\t', "tsv")
}
