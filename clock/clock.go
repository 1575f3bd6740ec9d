// Package clock parses the time-of-day strings found on scanned timesheets
// into a canonical 12-hour form.
//
// Every value leaving this package is rendered by Clock.String as "H:MM AM"
// or "H:MM PM": no leading zero on the hour and a single space before the
// meridiem.
package clock

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"azai/internal/timeutil"
)

// Inference records how the meridiem of a parsed time was decided.
type Inference int

const (
	// Explicit means the input carried a/am/p/pm.
	Explicit Inference = iota
	// Military means the hour was 0 or 13-23 and needed no guessing.
	Military
	// Heuristic means the day-shift table picked AM or PM.
	Heuristic
)

func (i Inference) String() string {
	switch i {
	case Explicit:
		return "explicit"
	case Military:
		return "military"
	case Heuristic:
		return "heuristic"
	default:
		return fmt.Sprintf("inference(%d)", int(i))
	}
}

// Clock is a time of day in 24-hour space.
type Clock struct {
	Hour   int
	Minute int
}

var (
	allowedPattern  = regexp.MustCompile(`^[0-9:apm]+$`)
	colonPattern    = regexp.MustCompile(`^(\d{1,2}):(\d{2})(am|pm|a|p)?$`)
	digitRunPattern = regexp.MustCompile(`^(\d{1,4})(am|pm|a|p)?$`)

	zeroReplacer = strings.NewReplacer("O", "0", "o", "0")
)

// String renders the canonical "H:MM AM|PM" form.
func (c Clock) String() string {
	hour := c.Hour % 12
	if hour == 0 {
		hour = 12
	}
	suffix := "AM"
	if c.Hour >= 12 {
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hour, c.Minute, suffix)
}

// MinutesFromMidnight counts minutes since 12:00 AM.
func (c Clock) MinutesFromMidnight() int {
	return timeutil.MinutesFromMidnight(c.Hour, c.Minute)
}

// Normalize returns the canonical form of raw, or raw itself when it cannot
// be parsed. Normalizing a canonical value returns it unchanged.
func Normalize(raw string) string {
	parsed, ok := Parse(raw)
	if !ok {
		return raw
	}
	return parsed.String()
}

// Parse reads raw into 24-hour space.
func Parse(raw string) (Clock, bool) {
	parsed, _, ok := ParseDetail(raw)
	return parsed, ok
}

// ParseDetail is Parse plus the way the meridiem was decided.
func ParseDetail(raw string) (Clock, Inference, bool) {
	value := prepare(raw)
	if value == "" || !allowedPattern.MatchString(value) {
		return Clock{}, 0, false
	}

	if match := colonPattern.FindStringSubmatch(value); match != nil {
		hour, _ := strconv.Atoi(match[1])
		minute, _ := strconv.Atoi(match[2])
		return resolve(hour, minute, match[3])
	}

	if match := digitRunPattern.FindStringSubmatch(value); match != nil {
		digits := match[1]
		var hour, minute int
		switch len(digits) {
		case 1, 2:
			hour, _ = strconv.Atoi(digits)
		case 3:
			hour, _ = strconv.Atoi(digits[:1])
			minute, _ = strconv.Atoi(digits[1:])
		case 4:
			hour, _ = strconv.Atoi(digits[:2])
			minute, _ = strconv.Atoi(digits[2:])
		}
		return resolve(hour, minute, match[2])
	}

	return Clock{}, 0, false
}

func prepare(raw string) string {
	value := zeroReplacer.Replace(raw)
	value = strings.Join(strings.Fields(value), "")
	return strings.ToLower(value)
}

func resolve(hour, minute int, meridiem string) (Clock, Inference, bool) {
	if minute < 0 || minute > 59 {
		return Clock{}, 0, false
	}

	switch meridiem {
	case "a", "am":
		switch {
		case hour == 0 || hour == 12:
			return Clock{Hour: 0, Minute: minute}, Explicit, true
		case hour >= 1 && hour <= 11:
			return Clock{Hour: hour, Minute: minute}, Explicit, true
		}
		return Clock{}, 0, false
	case "p", "pm":
		switch {
		case hour == 12:
			return Clock{Hour: 12, Minute: minute}, Explicit, true
		case hour >= 1 && hour <= 11:
			return Clock{Hour: hour + 12, Minute: minute}, Explicit, true
		case hour >= 13 && hour <= 23:
			return Clock{Hour: hour, Minute: minute}, Military, true
		}
		return Clock{}, 0, false
	}

	// Day-shift table for home-care visits: 7-11 morning, 12 noon, 1-6 afternoon.
	switch {
	case hour == 0:
		return Clock{Hour: 0, Minute: minute}, Military, true
	case hour >= 13 && hour <= 23:
		return Clock{Hour: hour, Minute: minute}, Military, true
	case hour >= 7 && hour <= 11:
		return Clock{Hour: hour, Minute: minute}, Heuristic, true
	case hour == 12:
		return Clock{Hour: 12, Minute: minute}, Heuristic, true
	case hour >= 1 && hour <= 6:
		return Clock{Hour: hour + 12, Minute: minute}, Heuristic, true
	}
	return Clock{}, 0, false
}
