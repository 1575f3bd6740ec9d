package calendar

import (
	"regexp"
	"strings"
	"time"

	"azai/internal/timeutil"
)

// maxRangeDays bounds iteration over header ranges that OCR stretched.
const maxRangeDays = 62

// WeekRange is the inclusive date interval a timesheet covers. It is parsed
// once per document and shared by every entry of that document.
type WeekRange struct {
	Start time.Time
	End   time.Time
}

// NewWeekRange returns the seven days starting at start.
func NewWeekRange(start time.Time) WeekRange {
	start = timeutil.StartOfDay(start)
	return WeekRange{Start: start, End: start.AddDate(0, 0, 6)}
}

// WeekStart is the Sunday day names are counted from.
func (w WeekRange) WeekStart() time.Time {
	return timeutil.SundayOnOrBefore(w.Start)
}

// Days lists every date in the range.
func (w WeekRange) Days() []time.Time {
	start := timeutil.StartOfDay(w.Start)
	end := timeutil.StartOfDay(w.End)
	days := make([]time.Time, 0, 7)
	for day := start; !day.After(end) && len(days) < maxRangeDays; day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}

// Contains reports whether day falls on one of the range's dates.
func (w WeekRange) Contains(day time.Time) bool {
	for _, candidate := range w.Days() {
		if timeutil.SameDay(candidate, day) {
			return true
		}
	}
	return false
}

func (w WeekRange) String() string {
	return timeutil.FormatISODate(w.Start) + ".." + timeutil.FormatISODate(w.End)
}

var (
	weekOfPattern       = regexp.MustCompile(`(?i)^week\s+of\s*:?\s*(.+)$`)
	weekStartingPattern = regexp.MustCompile(`(?i)^week\s+(?:starting|start|beginning|begins|commencing)\s*(?:on)?\s*:?\s*(.+)$`)
	weekEndingPattern   = regexp.MustCompile(`(?i)^(?:week\s+ending|week\s+ends|w/e)\s*(?:on)?\s*:?\s*(.+)$`)

	spacedRangePattern = regexp.MustCompile(`(?i)^(.+?)\s+(?:-|–|—|to|through|thru)\s+(.+)$`)
	slashRangePattern  = regexp.MustCompile(`^(\d{1,2}/\d{1,2}(?:/\d{2,4})?)\s*[-–—]\s*(\d{1,2}/\d{1,2}(?:/\d{2,4})?)$`)

	monthNamePattern = regexp.MustCompile(`(?i)^([a-z]{3,9})\.?\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s+(\d{4}))?$`)
)

var monthNames = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

type anchorKind int

const (
	anchorStart anchorKind = iota
	anchorEnd
)

// ParseWeekRange reads a timesheet header such as "Week of 10/6/2024",
// "Week ending 10/12" or "10/6/2024 - 10/12/2024".
func (n *Normalizer) ParseWeekRange(text string) (WeekRange, bool) {
	value := strings.Join(strings.Fields(text), " ")
	if value == "" {
		return WeekRange{}, false
	}

	kind := anchorStart
	switch {
	case weekOfPattern.MatchString(value):
		value = weekOfPattern.FindStringSubmatch(value)[1]
	case weekStartingPattern.MatchString(value):
		value = weekStartingPattern.FindStringSubmatch(value)[1]
	case weekEndingPattern.MatchString(value):
		value = weekEndingPattern.FindStringSubmatch(value)[1]
		kind = anchorEnd
	}
	value = strings.TrimRight(strings.TrimSpace(value), ".,;")

	if week, ok := n.parseExplicitRange(value); ok {
		return week, true
	}

	anchor, ok := n.parseAnchor(value)
	if !ok {
		return WeekRange{}, false
	}
	if kind == anchorEnd {
		return WeekRange{Start: anchor.AddDate(0, 0, -6), End: anchor}, true
	}
	return NewWeekRange(anchor), true
}

func (n *Normalizer) parseExplicitRange(value string) (WeekRange, bool) {
	match := slashRangePattern.FindStringSubmatch(value)
	if match == nil {
		match = spacedRangePattern.FindStringSubmatch(value)
	}
	if match == nil {
		return WeekRange{}, false
	}

	start, ok := parseHeaderDate(strings.TrimSpace(match[1]))
	if !ok {
		return WeekRange{}, false
	}
	end, ok := parseHeaderDate(strings.TrimSpace(match[2]))
	if !ok {
		return WeekRange{}, false
	}

	switch {
	case start.hasYear && !end.hasYear:
		end.year = start.year
	case !start.hasYear && end.hasYear:
		start.year = end.year
	case !start.hasYear && !end.hasYear:
		start.year = n.ReferenceYear()
		end.year = start.year
	}

	startDate, ok := start.date()
	if !ok {
		return WeekRange{}, false
	}
	endDate, ok := end.date()
	if !ok {
		return WeekRange{}, false
	}

	if endDate.Before(startDate) {
		switch {
		case !end.hasYear:
			end.year++
			endDate, ok = end.date()
		case !start.hasYear:
			start.year--
			startDate, ok = start.date()
		default:
			ok = false
		}
		if !ok {
			return WeekRange{}, false
		}
	}

	return WeekRange{Start: startDate, End: endDate}, true
}

func (n *Normalizer) parseAnchor(value string) (time.Time, bool) {
	parts, ok := parseHeaderDate(value)
	if !ok {
		return time.Time{}, false
	}
	if !parts.hasYear {
		parts.year = n.ReferenceYear()
	}
	return parts.date()
}

// parseHeaderDate accepts the numeric date forms plus written month names,
// which only appear in headers.
func parseHeaderDate(value string) (dateParts, bool) {
	if parts, _, ok := parseNumericDate(value); ok {
		return parts, true
	}

	match := monthNamePattern.FindStringSubmatch(value)
	if match == nil {
		return dateParts{}, false
	}
	month, ok := monthNames[strings.ToLower(match[1])]
	if !ok {
		return dateParts{}, false
	}
	parts := dateParts{month: int(month), day: atoi(match[2])}
	if match[3] != "" {
		parts.year = atoi(match[3])
		parts.hasYear = true
	}
	return parts, true
}
