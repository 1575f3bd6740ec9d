package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"azai/timesheet"
)

func newJSONReader(t *testing.T) *JSONReader {
	t.Helper()
	reader, err := NewJSONReader()
	require.NoError(t, err)
	return reader
}

func TestJSONReader_SingleDocument(t *testing.T) {
	t.Parallel()

	payload := `{
		"document_id": "scan-7",
		"client_name": "Acme Home Care",
		"week_of": "Week of 10/6/2024",
		"employee_entries": [{
			"employee_name": "Jane Doe",
			"service_code": "T1019",
			"signature": true,
			"time_entries": [
				{"date": "Tuesday", "time_in": 830, "time_out": "4:15 PM"},
				{"date": "Wed", "time_in": null, "units": 2}
			]
		}]
	}`

	docs, err := newJSONReader(t).Decode([]byte(payload), "upload.json")
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.Equal(t, "scan-7", doc.ID)
	assert.Equal(t, "upload.json", doc.SourceFile)
	assert.Equal(t, FormatJSON, doc.SourceFormat)

	employee := doc.Data.EmployeeEntries[0]
	assert.Equal(t, "yes", employee.Signature, "boolean signature reads as yes")

	first := employee.TimeEntries[0]
	assert.Equal(t, "830", timesheet.Value(first.TimeIn))
	assert.Equal(t, "4:15 PM", timesheet.Value(first.TimeOut))

	second := employee.TimeEntries[1]
	assert.Nil(t, second.TimeIn, "null time stays nil")
	assert.Nil(t, second.TimeOut, "missing time stays nil")
	require.NotNil(t, second.Units)
	assert.Equal(t, 2, *second.Units)
}

func TestJSONReader_ArrayAndEnvelope(t *testing.T) {
	t.Parallel()

	reader := newJSONReader(t)
	array := `[{"employee_entries": []}, {"client_name": "B", "employee_entries": []}]`
	envelope := `{"documents": [{"client_name": "A", "employee_entries": []}]}`

	docs, err := reader.Decode([]byte(array), "batch.json")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "B", docs[1].Data.ClientName)

	docs, err = reader.Decode([]byte(envelope), "batch.json")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "A", docs[0].Data.ClientName)
}

func TestJSONReader_RejectsInvalidPayloads(t *testing.T) {
	t.Parallel()

	reader := newJSONReader(t)
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{name: "not json", payload: `{"client_name":`, want: "invalid json"},
		{name: "scalar", payload: `"hello"`, want: "expected an object"},
		{name: "missing entries", payload: `{"client_name": "Acme"}`, want: "does not match schema"},
		{name: "object time", payload: `{"employee_entries": [{"time_entries": [{"time_in": {"h": 9}}]}]}`, want: "does not match schema"},
		{name: "negative units", payload: `{"employee_entries": [{"time_entries": [{"units": -1}]}]}`, want: "does not match schema"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reader.Decode([]byte(tt.payload), "bad.json")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
