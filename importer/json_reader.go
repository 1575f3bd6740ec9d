package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/gjson"

	"azai/timesheet"
)

const FormatJSON = "json"

// JSONReader loads extraction documents. A payload may be one document, an
// array of documents, or an object with a "documents" array.
type JSONReader struct {
	schema *jsonschema.Schema
}

func NewJSONReader() (*JSONReader, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(extractionSchemaURL, strings.NewReader(extractionSchema)); err != nil {
		return nil, fmt.Errorf("add extraction schema: %w", err)
	}
	schema, err := compiler.Compile(extractionSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile extraction schema: %w", err)
	}
	return &JSONReader{schema: schema}, nil
}

func (r *JSONReader) Read(path string) ([]timesheet.Document, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open json file %s: %w", path, err)
	}
	return r.Decode(payload, path)
}

// Decode validates and converts payload. source is recorded on every
// document as its source file.
func (r *JSONReader) Decode(payload []byte, source string) ([]timesheet.Document, error) {
	if !gjson.ValidBytes(payload) {
		return nil, fmt.Errorf("parse json %s: invalid json", source)
	}

	root := gjson.ParseBytes(payload)
	var items []gjson.Result
	switch {
	case root.IsArray():
		items = root.Array()
	case root.IsObject() && root.Get("documents").IsArray():
		items = root.Get("documents").Array()
	case root.IsObject():
		items = []gjson.Result{root}
	default:
		return nil, fmt.Errorf("parse json %s: expected an object or an array", source)
	}

	documents := make([]timesheet.Document, 0, len(items))
	for i, item := range items {
		var value any
		if err := json.Unmarshal([]byte(item.Raw), &value); err != nil {
			return nil, fmt.Errorf("decode document %d in %s: %w", i, source, err)
		}
		if err := r.schema.Validate(value); err != nil {
			return nil, fmt.Errorf("document %d in %s does not match schema: %w", i, source, err)
		}

		documents = append(documents, timesheet.Document{
			ID:           strings.TrimSpace(scalar(item.Get("document_id"))),
			SourceFile:   source,
			SourceFormat: FormatJSON,
			Data:         extractedData(item),
		})
	}
	return documents, nil
}

func extractedData(item gjson.Result) timesheet.ExtractedData {
	data := timesheet.ExtractedData{
		ClientName: scalar(item.Get("client_name")),
		WeekOf:     scalar(item.Get("week_of")),
	}

	for _, employee := range item.Get("employee_entries").Array() {
		entry := timesheet.EmployeeEntry{
			EmployeeName: scalar(employee.Get("employee_name")),
			ServiceCode:  scalar(employee.Get("service_code")),
			Signature:    scalar(employee.Get("signature")),
		}
		for _, timeEntry := range employee.Get("time_entries").Array() {
			entry.TimeEntries = append(entry.TimeEntries, timesheet.TimeEntry{
				Date:        scalar(timeEntry.Get("date")),
				TimeIn:      optionalScalar(timeEntry.Get("time_in")),
				TimeOut:     optionalScalar(timeEntry.Get("time_out")),
				Units:       optionalInt(timeEntry.Get("units")),
				HoursWorked: optionalScalar(timeEntry.Get("hours_worked")),
			})
		}
		data.EmployeeEntries = append(data.EmployeeEntries, entry)
	}
	return data
}

// Numbers keep their raw text so an OCR value like 9.30 is not read back
// as 9.3.
func scalar(value gjson.Result) string {
	switch value.Type {
	case gjson.Null:
		return ""
	case gjson.Number:
		return value.Raw
	case gjson.True:
		return "yes"
	case gjson.False:
		return ""
	default:
		return value.String()
	}
}

func optionalScalar(value gjson.Result) *string {
	if !value.Exists() || value.Type == gjson.Null {
		return nil
	}
	return timesheet.StringPtr(scalar(value))
}

func optionalInt(value gjson.Result) *int {
	if value.Type != gjson.Number {
		return nil
	}
	return timesheet.IntPtr(int(value.Int()))
}
