package output

import (
	"regexp"

	"azai/billing"
	"azai/clock"
	"azai/timesheet"
)

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// WeeklySummary totals one employee's entries on one timesheet.
type WeeklySummary struct {
	DocumentID   string
	ClientName   string
	WeekOf       string
	EmployeeName string
	ServiceCode  string
	EntryCount   int
	FirstDate    string
	LastDate     string
	TotalMinutes int
	TotalUnits   int
	Hours        float64
}

// BuildWeeklySummaries keeps document and employee order. Minutes only count
// entries whose times both parse; units only count entries that have them.
func BuildWeeklySummaries(docs []timesheet.Document) []WeeklySummary {
	summaries := make([]WeeklySummary, 0, len(docs))
	for _, doc := range docs {
		for _, employee := range doc.Data.EmployeeEntries {
			summaries = append(summaries, summarizeEmployee(doc, employee))
		}
	}
	return summaries
}

func summarizeEmployee(doc timesheet.Document, employee timesheet.EmployeeEntry) WeeklySummary {
	summary := WeeklySummary{
		DocumentID:   doc.ID,
		ClientName:   doc.Data.ClientName,
		WeekOf:       doc.Data.WeekOf,
		EmployeeName: employee.EmployeeName,
		ServiceCode:  employee.ServiceCode,
		EntryCount:   len(employee.TimeEntries),
	}

	for _, entry := range employee.TimeEntries {
		if isoDate.MatchString(entry.Date) {
			if summary.FirstDate == "" || entry.Date < summary.FirstDate {
				summary.FirstDate = entry.Date
			}
			if entry.Date > summary.LastDate {
				summary.LastDate = entry.Date
			}
		}
		if entry.TimeIn != nil && entry.TimeOut != nil {
			if minutes, ok := clock.ElapsedMinutes(*entry.TimeIn, *entry.TimeOut); ok {
				summary.TotalMinutes += minutes
			}
		}
		if entry.Units != nil {
			summary.TotalUnits += *entry.Units
		}
	}

	summary.Hours = billing.Hours(summary.TotalMinutes)
	return summary
}
