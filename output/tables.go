package output

import (
	"fmt"
	"strconv"

	"azai/billing"
	"azai/storage"
	"azai/timesheet"
)

const (
	ModeRaw    = "raw"
	ModeWeekly = "weekly"
	ModeLines  = "lines"
)

func SupportedModes() []string {
	return []string{ModeRaw, ModeWeekly, ModeLines}
}

// TableForMode renders stored timesheets for export.
func TableForMode(mode string, records []storage.Timesheet, unitRate float64) (Table, error) {
	switch normalizeFormat(mode) {
	case ModeRaw:
		return RawTable(records), nil
	case ModeWeekly:
		return WeeklyTable(documents(records)), nil
	case ModeLines:
		return LinesTable(documents(records), unitRate), nil
	default:
		return Table{}, fmt.Errorf("unsupported export mode: %s", mode)
	}
}

func RawTable(records []storage.Timesheet) Table {
	table := Table{Headers: []string{
		"DocumentID", "SourceFile", "ClientName", "WeekOf", "EmployeeName", "ServiceCode", "Signature",
		"Date", "TimeIn", "TimeOut", "Units", "HoursWorked", "Confidence", "Recommendation",
	}}

	for _, record := range records {
		doc := record.Document
		for _, employee := range doc.Data.EmployeeEntries {
			for _, entry := range employee.TimeEntries {
				table.Rows = append(table.Rows, []string{
					doc.ID,
					doc.SourceFile,
					doc.Data.ClientName,
					doc.Data.WeekOf,
					employee.EmployeeName,
					employee.ServiceCode,
					employee.Signature,
					entry.Date,
					timesheet.Value(entry.TimeIn),
					timesheet.Value(entry.TimeOut),
					optionalInt(entry.Units),
					timesheet.Value(entry.HoursWorked),
					fmt.Sprintf("%.2f", record.Report.Overall),
					string(record.Report.Recommendation),
				})
			}
		}
	}
	return table
}

func WeeklyTable(docs []timesheet.Document) Table {
	table := Table{Headers: []string{
		"DocumentID", "ClientName", "WeekOf", "EmployeeName", "ServiceCode",
		"EntryCount", "FirstDate", "LastDate", "TotalMinutes", "TotalUnits", "Hours",
	}}

	for _, summary := range BuildWeeklySummaries(docs) {
		table.Rows = append(table.Rows, []string{
			summary.DocumentID,
			summary.ClientName,
			summary.WeekOf,
			summary.EmployeeName,
			summary.ServiceCode,
			strconv.Itoa(summary.EntryCount),
			summary.FirstDate,
			summary.LastDate,
			strconv.Itoa(summary.TotalMinutes),
			strconv.Itoa(summary.TotalUnits),
			fmt.Sprintf("%.2f", summary.Hours),
		})
	}
	return table
}

func LinesTable(docs []timesheet.Document, unitRate float64) Table {
	table := Table{Headers: []string{
		"DocumentID", "ClientName", "EmployeeName", "ServiceCode",
		"ServiceDate", "DateQualifier", "DateD8", "Units", "ChargeAmount",
	}}

	for _, doc := range docs {
		for _, line := range billing.ServiceLines(doc, unitRate) {
			table.Rows = append(table.Rows, []string{
				line.DocumentID,
				line.ClientName,
				line.EmployeeName,
				line.ServiceCode,
				line.ServiceDate,
				line.DateQualifier,
				line.DateD8,
				strconv.Itoa(line.Units),
				fmt.Sprintf("%.2f", line.ChargeAmount),
			})
		}
	}
	return table
}

func documents(records []storage.Timesheet) []timesheet.Document {
	docs := make([]timesheet.Document, 0, len(records))
	for _, record := range records {
		docs = append(docs, record.Document)
	}
	return docs
}

func optionalInt(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}
