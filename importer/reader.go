package importer

import "fmt"

// Reader turns a tabular file into header-keyed records.
type Reader interface {
	Read(path string) ([]Record, error)
}

func ReaderForFormat(format string) (Reader, error) {
	switch normalizeHeader(format) {
	case "csv":
		return &CSVReader{}, nil
	case "tsv", "txt", "utf16":
		return &TSVReader{}, nil
	case "excel", "xlsx", "xlsm", "xls":
		return &ExcelReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported input format: %s", format)
	}
}

func SupportedFormats() []string {
	return []string{"csv", "tsv", "excel", "json"}
}
