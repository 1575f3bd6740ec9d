package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"azai/config"
	"azai/storage"
	"azai/timesheet"
)

const sampleDocument = `{
  "document_id": "doc-1",
  "client_name": "Acme Home Care",
  "week_of": "Week of 10/6/2024",
  "employee_entries": [{
    "employee_name": "Jane Doe",
    "service_code": "T1019",
    "signature": "yes",
    "time_entries": [
      {"date": "Tuesday", "time_in": "9:00 AM", "time_out": "9:35 AM"}
    ]
  }]
}`

func TestServer_NormalizePersistAndFetch(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	resp := doRequest(t, http.MethodPost, ts.URL+"/api/normalize?persist=true", sampleDocument)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var normalized normalizeResponse
	decodeBody(t, resp, &normalized)
	assert.Equal(t, 1, normalized.Documents)
	assert.Equal(t, 1, normalized.Persisted)

	entry := normalized.Results[0].Document.Data.EmployeeEntries[0].TimeEntries[0]
	assert.Equal(t, "2024-10-08", entry.Date)
	require.NotNil(t, entry.Units)
	assert.Equal(t, 3, *entry.Units)
	assert.Equal(t, "0.58", timesheet.Value(entry.HoursWorked))

	resp = doRequest(t, http.MethodGet, ts.URL+"/api/timesheets", "")
	var listed []storage.Timesheet
	decodeBody(t, resp, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, "doc-1", listed[0].Document.ID)

	resp = doRequest(t, http.MethodGet, ts.URL+"/api/timesheets/doc-1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched storage.Timesheet
	decodeBody(t, resp, &fetched)
	assert.Equal(t, "Acme Home Care", fetched.Document.Data.ClientName)

	resp = doRequest(t, http.MethodDelete, ts.URL+"/api/timesheets/doc-1", "")
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, ts.URL+"/api/timesheets/doc-1", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "deleted timesheet is gone")
}

func TestServer_NormalizeWithoutPersistLeavesStoreEmpty(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	payload := "[" + sampleDocument + "," + strings.Replace(sampleDocument, `"document_id": "doc-1",`, "", 1) + "]"
	resp := doRequest(t, http.MethodPost, ts.URL+"/api/normalize", payload)
	var normalized normalizeResponse
	decodeBody(t, resp, &normalized)
	assert.Equal(t, 2, normalized.Documents)
	assert.Zero(t, normalized.Persisted)
	require.Len(t, normalized.Results, 2)
	assert.Equal(t, "doc-1", normalized.Results[0].Document.ID)
	assert.NotEmpty(t, normalized.Results[1].Document.ID, "second document gets a generated id")

	resp = doRequest(t, http.MethodGet, ts.URL+"/api/timesheets", "")
	var listed []storage.Timesheet
	decodeBody(t, resp, &listed)
	assert.Empty(t, listed)
}

func TestServer_NormalizeRejectsBadInput(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	tests := []struct {
		name   string
		url    string
		body   string
		status int
	}{
		{name: "invalid json", url: "/api/normalize", body: "{", status: http.StatusUnprocessableEntity},
		{name: "schema mismatch", url: "/api/normalize", body: `{"client_name": "x"}`, status: http.StatusUnprocessableEntity},
		{name: "invalid persist flag", url: "/api/normalize?persist=maybe", body: sampleDocument, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		resp := doRequest(t, http.MethodPost, ts.URL+tt.url, tt.body)
		resp.Body.Close()
		assert.Equal(t, tt.status, resp.StatusCode, tt.name)
	}
}

func TestServer_Units(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	tests := []struct {
		timeIn  string
		timeOut string
		want    unitsResponse
	}{
		{
			timeIn:  "9:00 AM",
			timeOut: "9:35 AM",
			want:    unitsResponse{TimeIn: "9:00 AM", TimeOut: "9:35 AM", Minutes: 35, Units: 3, HoursWorked: "0.58"},
		},
		{
			timeIn:  "830",
			timeOut: "321",
			want:    unitsResponse{TimeIn: "8:30 AM", TimeOut: "3:21 PM", Minutes: 411, Units: 27, HoursWorked: "6.85"},
		},
		{
			timeIn:  "11:30 PM",
			timeOut: "12:15 AM",
			want:    unitsResponse{TimeIn: "11:30 PM", TimeOut: "12:15 AM", Minutes: 45, Units: 3, HoursWorked: "0.75"},
		},
		{
			timeIn:  "10:00 PM",
			timeOut: "6:00 AM",
			want:    unitsResponse{TimeIn: "10:00 PM", TimeOut: "6:00 AM", Minutes: 480, Units: 32, HoursWorked: "8.00"},
		},
	}

	for _, tt := range tests {
		body, err := json.Marshal(unitsRequest{TimeIn: tt.timeIn, TimeOut: tt.timeOut})
		require.NoError(t, err)
		resp := doRequest(t, http.MethodPost, ts.URL+"/api/units", string(body))
		require.Equal(t, http.StatusOK, resp.StatusCode, "units %s-%s", tt.timeIn, tt.timeOut)
		var got unitsResponse
		decodeBody(t, resp, &got)
		assert.Equal(t, tt.want, got, "units %s-%s", tt.timeIn, tt.timeOut)
	}
}

func TestServer_UnitsRejectsUnparsedTime(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	resp := doRequest(t, http.MethodPost, ts.URL+"/api/units", `{"time_in": "BBAL", "time_out": "9:35 AM"}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "time_in", "error names the field")
}

func TestServer_ListRejectsUnknownRecommendation(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	resp := doRequest(t, http.MethodGet, ts.URL+"/api/timesheets?recommendation=maybe", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_DeleteUnknownTimesheet(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	resp := doRequest(t, http.MethodDelete, ts.URL+"/api/timesheets/missing", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "azai_web_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	handler, err := NewServer(store, *config.Default(), zerolog.Nop())
	require.NoError(t, err)
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts
}

func doRequest(t *testing.T, method, url, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err, "%s %s", method, url)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}
