package billing

import (
	"math"
	"regexp"
	"strings"

	"azai/timesheet"
)

// DateQualifierD8 marks a single CCYYMMDD service date on a claim line.
const DateQualifierD8 = "D8"

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ServiceLine is the per-visit billing data handed to claim building.
type ServiceLine struct {
	DocumentID    string
	ClientName    string
	EmployeeName  string
	ServiceCode   string
	ServiceDate   string
	DateQualifier string
	DateD8        string
	Units         int
	ChargeAmount  float64
}

// ServiceLines lists one line per normalized entry of doc. Entries without
// units or without an ISO service date are not billable yet and are skipped.
func ServiceLines(doc timesheet.Document, unitRate float64) []ServiceLine {
	lines := make([]ServiceLine, 0, doc.Data.EntryCount())
	for _, employee := range doc.Data.EmployeeEntries {
		for _, entry := range employee.TimeEntries {
			if entry.Units == nil || !isoDatePattern.MatchString(entry.Date) {
				continue
			}
			lines = append(lines, ServiceLine{
				DocumentID:    doc.ID,
				ClientName:    doc.Data.ClientName,
				EmployeeName:  employee.EmployeeName,
				ServiceCode:   strings.ToUpper(strings.TrimSpace(employee.ServiceCode)),
				ServiceDate:   entry.Date,
				DateQualifier: DateQualifierD8,
				DateD8:        strings.ReplaceAll(entry.Date, "-", ""),
				Units:         *entry.Units,
				ChargeAmount:  chargeAmount(*entry.Units, unitRate),
			})
		}
	}
	return lines
}

func chargeAmount(units int, unitRate float64) float64 {
	if unitRate <= 0 {
		return 0
	}
	return math.Round(float64(units)*unitRate*100) / 100
}
