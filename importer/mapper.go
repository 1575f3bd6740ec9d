package importer

import (
	"fmt"

	"azai/timesheet"
)

// Row is one mapped spreadsheet line: the document and employee it belongs
// to plus the time entries it carries.
type Row struct {
	Document     string
	ClientName   string
	WeekOf       string
	EmployeeName string
	ServiceCode  string
	Signature    string
	Entries      []timesheet.TimeEntry
}

type Mapper interface {
	Name() string
	Map(record Record) (*Row, bool, error)
}

func SupportedMapperNames() []string {
	return []string{"entries", "weekly"}
}

func MapperByName(name string) (Mapper, error) {
	switch normalizeHeader(name) {
	case "", "entries", "entry":
		return &EntriesMapper{}, nil
	case "weekly", "grid":
		return &WeeklyMapper{}, nil
	default:
		return nil, fmt.Errorf("unsupported mapper: %s", name)
	}
}

func mapHeader(record Record, row *Row) {
	row.Document = record.Get("document", "document_id", "sheet")
	row.ClientName = record.Get("client_name", "client", "patient", "member")
	row.WeekOf = record.Get("week_of", "week", "week_ending", "period")
	row.EmployeeName = record.Get("employee_name", "employee", "caregiver", "worker")
	row.ServiceCode = record.Get("service_code", "service", "procedure_code", "hcpcs")
	row.Signature = record.Get("signature", "signed")
}

func optionalValue(value string) *string {
	if value == "" {
		return nil
	}
	return timesheet.StringPtr(value)
}
