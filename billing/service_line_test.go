package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"azai/timesheet"
)

func TestServiceLines(t *testing.T) {
	t.Parallel()

	doc := timesheet.Document{
		ID: "doc-1",
		Data: timesheet.ExtractedData{
			ClientName: "Jane Client",
			EmployeeEntries: []timesheet.EmployeeEntry{
				{
					EmployeeName: "Ann Aide",
					ServiceCode:  " t1019 ",
					TimeEntries: []timesheet.TimeEntry{
						{Date: "2024-10-08", Units: timesheet.IntPtr(3)},
						{Date: "Tuesday", Units: timesheet.IntPtr(4)},
						{Date: "2024-10-09"},
						{Date: "2024-10-10", Units: timesheet.IntPtr(32)},
					},
				},
			},
		},
	}

	lines := ServiceLines(doc, 6.25)
	require.Len(t, lines, 2)

	first := lines[0]
	assert.Equal(t, "doc-1", first.DocumentID)
	assert.Equal(t, "T1019", first.ServiceCode)
	assert.Equal(t, "2024-10-08", first.ServiceDate)
	assert.Equal(t, DateQualifierD8, first.DateQualifier)
	assert.Equal(t, "20241008", first.DateD8)
	assert.Equal(t, 3, first.Units)
	assert.InDelta(t, 18.75, first.ChargeAmount, 0.0001)

	assert.Equal(t, "20241010", lines[1].DateD8)
	assert.InDelta(t, 200.0, lines[1].ChargeAmount, 0.0001)
}

func TestServiceLinesWithoutRate(t *testing.T) {
	t.Parallel()

	doc := timesheet.Document{Data: timesheet.ExtractedData{EmployeeEntries: []timesheet.EmployeeEntry{
		{TimeEntries: []timesheet.TimeEntry{{Date: "2024-10-08", Units: timesheet.IntPtr(2)}}},
	}}}

	lines := ServiceLines(doc, 0)
	require.Len(t, lines, 1)
	assert.Zero(t, lines[0].ChargeAmount)
}
