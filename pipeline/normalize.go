// Package pipeline runs the full normalization pass over extracted
// timesheets and scores the result for review routing.
package pipeline

import (
	"strings"

	"github.com/rs/zerolog"

	"azai/billing"
	"azai/calendar"
	"azai/clock"
	"azai/confidence"
	"azai/timesheet"
)

// Field names the entry value an Issue refers to.
type Field string

const (
	FieldWeekOf  Field = "week_of"
	FieldDate    Field = "date"
	FieldTimeIn  Field = "time_in"
	FieldTimeOut Field = "time_out"
)

// Issue reasons.
const (
	ReasonMissing  = "missing"
	ReasonUnparsed = "unparsed"
	ReasonRejected = "rejected"
)

// Issue records a value the pass could not resolve. Document-level issues
// carry Employee and Entry -1.
type Issue struct {
	Employee int    `json:"employee"`
	Entry    int    `json:"entry"`
	Field    Field  `json:"field"`
	Value    string `json:"value"`
	Reason   string `json:"reason"`
}

// Options configures a Normalizer and a Processor.
type Options struct {
	// ReferenceYear <= 0 means the current year.
	ReferenceYear int
	Rules         billing.Rules
	Thresholds    confidence.Thresholds
	OCRCleanup    bool
	OCRArtifacts  []string
	Workers       int
	Logger        zerolog.Logger
}

func DefaultOptions() Options {
	return Options{
		ReferenceYear: 2024,
		Rules:         billing.DefaultRules(),
		Thresholds:    confidence.DefaultThresholds(),
		Workers:       4,
		Logger:        zerolog.Nop(),
	}
}

// Normalizer holds only configuration; NormalizeDocument never mutates its
// input and may run concurrently.
type Normalizer struct {
	dates   *calendar.Normalizer
	rules   billing.Rules
	cleaner *clock.Cleaner
	logger  zerolog.Logger
}

// NewNormalizer enables the OCR cleaner only when opts.OCRCleanup is set.
func NewNormalizer(opts Options) *Normalizer {
	normalizer := &Normalizer{
		dates:  calendar.NewNormalizer(opts.ReferenceYear),
		rules:  opts.Rules,
		logger: opts.Logger,
	}
	if opts.OCRCleanup {
		normalizer.cleaner = clock.NewCleaner(opts.OCRArtifacts...)
	}
	return normalizer
}

// NormalizeDocument returns a normalized copy of data plus every value it
// left unresolved. The week header is parsed once and shared by all entries.
func (n *Normalizer) NormalizeDocument(data timesheet.ExtractedData) (timesheet.ExtractedData, []Issue) {
	out := data.Clone()
	var issues []Issue

	var week *calendar.WeekRange
	if parsed, ok := n.dates.ParseWeekRange(out.WeekOf); ok {
		week = &parsed
	} else if strings.TrimSpace(out.WeekOf) != "" {
		issues = append(issues, Issue{Employee: -1, Entry: -1, Field: FieldWeekOf, Value: out.WeekOf, Reason: ReasonUnparsed})
	}

	for i := range out.EmployeeEntries {
		employee := &out.EmployeeEntries[i]
		for j := range employee.TimeEntries {
			entry := &employee.TimeEntries[j]
			issues = n.normalizeDate(entry, week, i, j, issues)

			var issue *Issue
			entry.TimeIn, issue = n.normalizeTime(entry.TimeIn, FieldTimeIn, i, j)
			if issue != nil {
				issues = append(issues, *issue)
			}
			entry.TimeOut, issue = n.normalizeTime(entry.TimeOut, FieldTimeOut, i, j)
			if issue != nil {
				issues = append(issues, *issue)
			}

			n.deriveUnits(entry)
		}
	}

	return out, issues
}

func (n *Normalizer) normalizeDate(entry *timesheet.TimeEntry, week *calendar.WeekRange, employee, index int, issues []Issue) []Issue {
	if strings.TrimSpace(entry.Date) == "" {
		return append(issues, Issue{Employee: employee, Entry: index, Field: FieldDate, Value: entry.Date, Reason: ReasonMissing})
	}

	resolution, ok := n.dates.Resolve(entry.Date, week)
	if !ok {
		return append(issues, Issue{Employee: employee, Entry: index, Field: FieldDate, Value: entry.Date, Reason: ReasonUnparsed})
	}
	if resolution.FromContext {
		n.logger.Debug().
			Int("employee", employee).
			Int("entry", index).
			Str("raw", entry.Date).
			Str("date", resolution.Date).
			Str("method", resolution.Method.String()).
			Msg("date resolved from context")
	}
	entry.Date = resolution.Date
	return issues
}

func (n *Normalizer) normalizeTime(value *string, field Field, employee, index int) (*string, *Issue) {
	if value == nil {
		return nil, nil
	}
	raw := *value
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	candidate := raw
	if n.cleaner != nil {
		cleaned, ok := n.cleaner.Clean(raw)
		if !ok {
			return nil, &Issue{Employee: employee, Entry: index, Field: field, Value: raw, Reason: ReasonRejected}
		}
		candidate = cleaned
	}

	parsed, inference, ok := clock.ParseDetail(candidate)
	if !ok {
		return timesheet.StringPtr(raw), &Issue{Employee: employee, Entry: index, Field: field, Value: raw, Reason: ReasonUnparsed}
	}
	if inference == clock.Heuristic {
		n.logger.Debug().
			Int("employee", employee).
			Int("entry", index).
			Str("field", string(field)).
			Str("raw", raw).
			Str("time", parsed.String()).
			Msg("meridiem inferred")
	}
	return timesheet.StringPtr(parsed.String()), nil
}

// deriveUnits replaces any units and hours carried in from extraction; they
// only ever come from the two normalized times.
func (n *Normalizer) deriveUnits(entry *timesheet.TimeEntry) {
	entry.Units = nil
	entry.HoursWorked = nil
	if entry.TimeIn == nil || entry.TimeOut == nil {
		return
	}
	minutes, ok := clock.ElapsedMinutes(*entry.TimeIn, *entry.TimeOut)
	if !ok {
		return
	}
	entry.Units = timesheet.IntPtr(n.rules.Units(minutes))
	entry.HoursWorked = timesheet.StringPtr(billing.FormatHours(minutes))
}
