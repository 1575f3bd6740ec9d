package timeutil

import "time"

// MinutesPerDay is the wraparound added when a shift crosses midnight.
const MinutesPerDay = 24 * 60

// Date builds a UTC calendar date with no time-of-day component.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ValidDate reports whether year/month/day name a real calendar day.
func ValidDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return false
	}
	value := Date(year, time.Month(month), day)
	return value.Year() == year && int(value.Month()) == month && value.Day() == day
}

func StartOfDay(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, value.Location())
}

func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// SundayOnOrBefore returns the Sunday that opens the week containing value.
func SundayOnOrBefore(value time.Time) time.Time {
	day := StartOfDay(value)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

func MinutesFromMidnight(hour, minute int) int {
	return hour*60 + minute
}

// FormatISODate renders value as YYYY-MM-DD.
func FormatISODate(value time.Time) string {
	return value.Format("2006-01-02")
}
