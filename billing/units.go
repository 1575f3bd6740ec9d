// Package billing turns elapsed shift minutes into 15-minute billing units.
package billing

import (
	"math"
	"strconv"
)

// Rules holds the unit size and the minimum-billing floor. Shifts whose
// length falls inside [FloorMinMinutes, FloorMaxMinutes] always bill
// FloorUnits, whatever standard rounding would give.
type Rules struct {
	UnitMinutes     int
	FloorMinMinutes int
	FloorMaxMinutes int
	FloorUnits      int
}

// DefaultRules bills 15-minute units with a 3-unit floor for 35-59 minutes.
func DefaultRules() Rules {
	return Rules{
		UnitMinutes:     15,
		FloorMinMinutes: 35,
		FloorMaxMinutes: 59,
		FloorUnits:      3,
	}
}

// Units converts minutes to billing units. It never fails: negative input
// and a non-positive unit size yield 0.
func (r Rules) Units(minutes int) int {
	if minutes < 0 || r.UnitMinutes <= 0 {
		return 0
	}
	if r.FloorUnits > 0 && minutes >= r.FloorMinMinutes && minutes <= r.FloorMaxMinutes {
		return r.FloorUnits
	}
	return int(math.Floor(float64(minutes)/float64(r.UnitMinutes) + 0.5))
}

// Units converts minutes with DefaultRules.
func Units(minutes int) int {
	return DefaultRules().Units(minutes)
}

// Hours is minutes/60 rounded to two decimals. Display only; billing keys
// off Units.
func Hours(minutes int) float64 {
	return roundHours(float64(minutes) / 60.0)
}

// FormatHours renders Hours with exactly two decimals, e.g. "0.58".
func FormatHours(minutes int) string {
	return strconv.FormatFloat(Hours(minutes), 'f', 2, 64)
}

func roundHours(value float64) float64 {
	return math.Round(value*100) / 100
}
