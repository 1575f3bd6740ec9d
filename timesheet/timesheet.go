package timesheet

// TimeEntry is one shift segment for one employee on one day.
type TimeEntry struct {
	Date        string  `json:"date"`
	TimeIn      *string `json:"time_in"`
	TimeOut     *string `json:"time_out"`
	Units       *int    `json:"units"`
	HoursWorked *string `json:"hours_worked"`
}

// EmployeeEntry groups the time entries of one employee on one timesheet.
type EmployeeEntry struct {
	EmployeeName string      `json:"employee_name"`
	ServiceCode  string      `json:"service_code"`
	Signature    string      `json:"signature"`
	TimeEntries  []TimeEntry `json:"time_entries"`
}

// ExtractedData is the root of one timesheet's OCR result.
type ExtractedData struct {
	ClientName      string          `json:"client_name"`
	WeekOf          string          `json:"week_of"`
	EmployeeEntries []EmployeeEntry `json:"employee_entries"`
}

// Document is one imported timesheet keyed by its document id.
type Document struct {
	ID           string        `json:"document_id"`
	SourceFile   string        `json:"source_file"`
	SourceFormat string        `json:"source_format"`
	Data         ExtractedData `json:"extracted_data"`
}

// Clone returns a deep copy so normalization passes never share nested state
// with their input.
func (d ExtractedData) Clone() ExtractedData {
	out := ExtractedData{
		ClientName: d.ClientName,
		WeekOf:     d.WeekOf,
	}
	if d.EmployeeEntries == nil {
		return out
	}
	out.EmployeeEntries = make([]EmployeeEntry, len(d.EmployeeEntries))
	for i, employee := range d.EmployeeEntries {
		copied := employee
		if employee.TimeEntries != nil {
			copied.TimeEntries = make([]TimeEntry, len(employee.TimeEntries))
			for j, entry := range employee.TimeEntries {
				copied.TimeEntries[j] = entry.clone()
			}
		}
		out.EmployeeEntries[i] = copied
	}
	return out
}

func (e TimeEntry) clone() TimeEntry {
	return TimeEntry{
		Date:        e.Date,
		TimeIn:      cloneString(e.TimeIn),
		TimeOut:     cloneString(e.TimeOut),
		Units:       cloneInt(e.Units),
		HoursWorked: cloneString(e.HoursWorked),
	}
}

// EntryCount returns the number of time entries across all employees.
func (d ExtractedData) EntryCount() int {
	count := 0
	for _, employee := range d.EmployeeEntries {
		count += len(employee.TimeEntries)
	}
	return count
}

// StringPtr returns a pointer to value.
func StringPtr(value string) *string {
	return &value
}

// IntPtr returns a pointer to value.
func IntPtr(value int) *int {
	return &value
}

// Value dereferences an optional string, returning "" for nil.
func Value(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}
