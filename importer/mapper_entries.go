package importer

import "azai/timesheet"

// EntriesMapper reads one time entry per row.
type EntriesMapper struct{}

func (m *EntriesMapper) Name() string {
	return "entries"
}

func (m *EntriesMapper) Map(record Record) (*Row, bool, error) {
	date := record.Get("date", "service_date", "day")
	timeIn := record.Get("time_in", "in", "start", "start_time", "clock_in")
	timeOut := record.Get("time_out", "out", "end", "end_time", "clock_out")
	if date == "" && timeIn == "" && timeOut == "" {
		return nil, false, nil
	}

	row := &Row{}
	mapHeader(record, row)
	row.Entries = []timesheet.TimeEntry{{
		Date:    date,
		TimeIn:  optionalValue(timeIn),
		TimeOut: optionalValue(timeOut),
	}}
	return row, true, nil
}
