package importer

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"azai/timesheet"
)

type Result struct {
	FilesProcessed int
	RowsRead       int
	RowsMapped     int
	RowsSkipped    int
	Documents      []timesheet.Document
}

// Run reads every path and assembles timesheet documents. JSON files carry
// whole documents and bypass the mapper; for them a row is one document.
func Run(paths []string, format string, mapper Mapper) (*Result, error) {
	result := &Result{Documents: make([]timesheet.Document, 0, len(paths))}

	var jsonReader *JSONReader
	for _, path := range paths {
		sourceFormat, err := inferFormat(path, format)
		if err != nil {
			return nil, err
		}

		if sourceFormat == FormatJSON {
			if jsonReader == nil {
				if jsonReader, err = NewJSONReader(); err != nil {
					return nil, err
				}
			}
			documents, err := jsonReader.Read(path)
			if err != nil {
				return nil, err
			}
			result.FilesProcessed++
			result.RowsRead += len(documents)
			result.RowsMapped += len(documents)
			result.Documents = append(result.Documents, assignIDs(documents, path)...)
			continue
		}

		reader, err := ReaderForFormat(sourceFormat)
		if err != nil {
			return nil, err
		}
		records, err := reader.Read(path)
		if err != nil {
			return nil, err
		}

		result.FilesProcessed++
		result.RowsRead += len(records)
		rows := make([]Row, 0, len(records))
		for _, record := range records {
			row, ok, mapErr := mapper.Map(record)
			if mapErr != nil {
				return nil, fmt.Errorf("row %d of %s: %w", record.RowNumber, path, mapErr)
			}
			if !ok || row == nil {
				result.RowsSkipped++
				continue
			}
			result.RowsMapped++
			rows = append(rows, *row)
		}

		documents := groupRows(rows, path, sourceFormat)
		result.Documents = append(result.Documents, assignIDs(documents, path)...)
	}

	return result, nil
}

// DocumentID derives a stable id from the source file and the document's
// position in it, so importing the same file again replaces earlier rows.
func DocumentID(source string, index int) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(source+"#"+strconv.Itoa(index))).String()
}

func assignIDs(documents []timesheet.Document, source string) []timesheet.Document {
	for i := range documents {
		if documents[i].ID == "" {
			documents[i].ID = DocumentID(source, i)
		}
	}
	return documents
}

type documentBuilder struct {
	document  timesheet.Document
	employees map[string]int
}

// groupRows folds rows into documents keyed by the document column and into
// employees keyed by name and service code, both in order of first
// appearance.
func groupRows(rows []Row, source, sourceFormat string) []timesheet.Document {
	builders := make([]*documentBuilder, 0, 1)
	byKey := make(map[string]*documentBuilder)

	for _, row := range rows {
		key := strings.TrimSpace(row.Document)
		builder, ok := byKey[key]
		if !ok {
			builder = &documentBuilder{
				document: timesheet.Document{
					SourceFile:   source,
					SourceFormat: sourceFormat,
				},
				employees: make(map[string]int),
			}
			byKey[key] = builder
			builders = append(builders, builder)
		}

		data := &builder.document.Data
		if data.ClientName == "" {
			data.ClientName = row.ClientName
		}
		if data.WeekOf == "" {
			data.WeekOf = row.WeekOf
		}

		employeeKey := strings.ToLower(strings.TrimSpace(row.EmployeeName)) + "|" + strings.ToUpper(strings.TrimSpace(row.ServiceCode))
		index, ok := builder.employees[employeeKey]
		if !ok {
			data.EmployeeEntries = append(data.EmployeeEntries, timesheet.EmployeeEntry{
				EmployeeName: row.EmployeeName,
				ServiceCode:  row.ServiceCode,
			})
			index = len(data.EmployeeEntries) - 1
			builder.employees[employeeKey] = index
		}

		employee := &data.EmployeeEntries[index]
		if employee.Signature == "" {
			employee.Signature = row.Signature
		}
		employee.TimeEntries = append(employee.TimeEntries, row.Entries...)
	}

	documents := make([]timesheet.Document, 0, len(builders))
	for _, builder := range builders {
		documents = append(documents, builder.document)
	}
	return documents
}

func inferFormat(path string, format string) (string, error) {
	if strings.TrimSpace(format) != "" {
		normalized := normalizeHeader(format)
		switch normalized {
		case "xlsx", "xlsm", "xls":
			return "excel", nil
		case "txt", "utf16":
			return "tsv", nil
		}
		return normalized, nil
	}

	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch extension {
	case "csv":
		return "csv", nil
	case "tsv", "txt":
		return "tsv", nil
	case "xlsx", "xlsm", "xls":
		return "excel", nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported file extension for %s", path)
	}
}
