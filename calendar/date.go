// Package calendar normalizes the dates written on timesheets to YYYY-MM-DD,
// using the sheet's week header to resolve day names and bare day numbers.
package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"azai/internal/timeutil"
)

// Method names the form a date was recognized in.
type Method int

const (
	MethodISO Method = iota + 1
	MethodYearFirst
	MethodFullYear
	MethodShortYear
	MethodMonthDay
	MethodDayOfMonth
	MethodDayName
)

func (m Method) String() string {
	switch m {
	case MethodISO:
		return "iso"
	case MethodYearFirst:
		return "year_first"
	case MethodFullYear:
		return "full_year"
	case MethodShortYear:
		return "short_year"
	case MethodMonthDay:
		return "month_day"
	case MethodDayOfMonth:
		return "day_of_month"
	case MethodDayName:
		return "day_name"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// Resolution is a normalized date and how it was reached.
type Resolution struct {
	Date   string
	Method Method
	// FromContext is set when the week range or the reference year supplied
	// information the raw value did not carry.
	FromContext bool
}

// shortYearPivot splits two-digit years: 00-30 are 20YY, 31-99 are 19YY.
const shortYearPivot = 30

var (
	isoPattern        = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	yearFirstPattern  = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})[-/](\d{1,2})$`)
	fullYearPattern   = regexp.MustCompile(`^(\d{1,2})[-/](\d{1,2})[-/](\d{4})$`)
	shortYearPattern  = regexp.MustCompile(`^(\d{1,2})[-/](\d{1,2})[-/](\d{2})$`)
	monthDayPattern   = regexp.MustCompile(`^(\d{1,2})[-/](\d{1,2})$`)
	dayOfMonthPattern = regexp.MustCompile(`^(\d{1,2})$`)
)

var dayNameOffsets = map[string]int{
	"sunday": 0, "sun": 0,
	"monday": 1, "mon": 1,
	"tuesday": 2, "tue": 2, "tues": 2,
	"wednesday": 3, "wed": 3,
	"thursday": 4, "thu": 4, "thur": 4, "thurs": 4,
	"friday": 5, "fri": 5,
	"saturday": 6, "sat": 6,
}

// Normalizer resolves timesheet dates. It holds only configuration and is
// safe for concurrent use.
type Normalizer struct {
	referenceYear int
	now           func() time.Time
}

// NewNormalizer returns a normalizer that fills missing years with
// referenceYear. A referenceYear <= 0 means the current processing year.
func NewNormalizer(referenceYear int) *Normalizer {
	return &Normalizer{referenceYear: referenceYear, now: time.Now}
}

// ReferenceYear is the year used when neither the value nor a week range
// supplies one.
func (n *Normalizer) ReferenceYear() int {
	if n.referenceYear > 0 {
		return n.referenceYear
	}
	return n.now().Year()
}

// Normalize returns raw as YYYY-MM-DD, or false when it cannot be resolved.
// week may be nil.
func (n *Normalizer) Normalize(raw string, week *WeekRange) (string, bool) {
	resolution, ok := n.Resolve(raw, week)
	if !ok {
		return "", false
	}
	return resolution.Date, true
}

// Resolve is Normalize plus the recognized form.
func (n *Normalizer) Resolve(raw string, week *WeekRange) (Resolution, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Resolution{}, false
	}

	if parts, method, ok := parseNumericDate(value); ok {
		if method == MethodISO {
			if _, valid := parts.date(); !valid {
				return Resolution{}, false
			}
			return Resolution{Date: value, Method: MethodISO}, true
		}
		if parts.hasYear {
			date, valid := parts.date()
			if !valid {
				return Resolution{}, false
			}
			return Resolution{Date: timeutil.FormatISODate(date), Method: method}, true
		}
		date, valid := n.resolveMonthDay(parts.month, parts.day, week)
		if !valid {
			return Resolution{}, false
		}
		return Resolution{Date: timeutil.FormatISODate(date), Method: MethodMonthDay, FromContext: true}, true
	}

	if match := dayOfMonthPattern.FindStringSubmatch(value); match != nil {
		if week == nil {
			return Resolution{}, false
		}
		day := atoi(match[1])
		for _, candidate := range week.Days() {
			if candidate.Day() == day {
				return Resolution{Date: timeutil.FormatISODate(candidate), Method: MethodDayOfMonth, FromContext: true}, true
			}
		}
		return Resolution{}, false
	}

	if offset, ok := dayNameOffsets[strings.TrimSuffix(strings.ToLower(value), ".")]; ok {
		if week == nil {
			return Resolution{}, false
		}
		date := week.WeekStart().AddDate(0, 0, offset)
		return Resolution{Date: timeutil.FormatISODate(date), Method: MethodDayName, FromContext: true}, true
	}

	return Resolution{}, false
}

func (n *Normalizer) resolveMonthDay(month, day int, week *WeekRange) (time.Time, bool) {
	if week == nil {
		parts := dateParts{year: n.ReferenceYear(), month: month, day: day, hasYear: true}
		return parts.date()
	}
	// A range may cross New Year, so try both of its years.
	for _, year := range []int{week.Start.Year(), week.End.Year()} {
		date, ok := dateParts{year: year, month: month, day: day, hasYear: true}.date()
		if ok && week.Contains(date) {
			return date, true
		}
	}
	parts := dateParts{year: week.Start.Year(), month: month, day: day, hasYear: true}
	return parts.date()
}

type dateParts struct {
	year    int
	month   int
	day     int
	hasYear bool
}

func (p dateParts) date() (time.Time, bool) {
	if !timeutil.ValidDate(p.year, p.month, p.day) {
		return time.Time{}, false
	}
	return timeutil.Date(p.year, time.Month(p.month), p.day), true
}

// parseNumericDate recognizes the numeric forms in priority order. A
// month/day value comes back with hasYear false.
func parseNumericDate(value string) (dateParts, Method, bool) {
	if match := isoPattern.FindStringSubmatch(value); match != nil {
		return dateParts{year: atoi(match[1]), month: atoi(match[2]), day: atoi(match[3]), hasYear: true}, MethodISO, true
	}
	if match := yearFirstPattern.FindStringSubmatch(value); match != nil {
		return dateParts{year: atoi(match[1]), month: atoi(match[2]), day: atoi(match[3]), hasYear: true}, MethodYearFirst, true
	}
	if match := fullYearPattern.FindStringSubmatch(value); match != nil {
		return dateParts{year: atoi(match[3]), month: atoi(match[1]), day: atoi(match[2]), hasYear: true}, MethodFullYear, true
	}
	if match := shortYearPattern.FindStringSubmatch(value); match != nil {
		year := atoi(match[3])
		if year <= shortYearPivot {
			year += 2000
		} else {
			year += 1900
		}
		return dateParts{year: year, month: atoi(match[1]), day: atoi(match[2]), hasYear: true}, MethodShortYear, true
	}
	if match := monthDayPattern.FindStringSubmatch(value); match != nil {
		return dateParts{month: atoi(match[1]), day: atoi(match[2])}, MethodMonthDay, true
	}
	return dateParts{}, 0, false
}

func atoi(value string) int {
	parsed, _ := strconv.Atoi(value)
	return parsed
}
