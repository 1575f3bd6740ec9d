package importer

import "azai/timesheet"

type weekday struct {
	prefix string
	name   string
}

var weekdays = []weekday{
	{"sun", "Sunday"},
	{"mon", "Monday"},
	{"tue", "Tuesday"},
	{"wed", "Wednesday"},
	{"thu", "Thursday"},
	{"fri", "Friday"},
	{"sat", "Saturday"},
}

// WeeklyMapper reads the paper grid layout: one row per employee with an
// in/out column pair per weekday. Dates are left as day names and resolved
// against the week header during normalization.
type WeeklyMapper struct{}

func (m *WeeklyMapper) Name() string {
	return "weekly"
}

func (m *WeeklyMapper) Map(record Record) (*Row, bool, error) {
	row := &Row{}
	mapHeader(record, row)

	for _, day := range weekdays {
		timeIn := record.Get(day.prefix+"_in", day.name+"_in", day.prefix+"_start")
		timeOut := record.Get(day.prefix+"_out", day.name+"_out", day.prefix+"_end")
		if timeIn == "" && timeOut == "" {
			continue
		}
		row.Entries = append(row.Entries, timesheet.TimeEntry{
			Date:    day.name,
			TimeIn:  optionalValue(timeIn),
			TimeOut: optionalValue(timeOut),
		})
	}

	if row.EmployeeName == "" && len(row.Entries) == 0 {
		return nil, false, nil
	}
	return row, true, nil
}
