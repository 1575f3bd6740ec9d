package clock

import "azai/internal/timeutil"

// ElapsedMinutes returns the minutes between timeIn and timeOut. A negative
// difference is read as one crossing of midnight. The second return value is
// false when either side does not parse.
func ElapsedMinutes(timeIn, timeOut string) (int, bool) {
	start, ok := Parse(timeIn)
	if !ok {
		return 0, false
	}
	end, ok := Parse(timeOut)
	if !ok {
		return 0, false
	}
	return Elapsed(start, end), true
}

// Elapsed is ElapsedMinutes for values that already parsed.
func Elapsed(start, end Clock) int {
	elapsed := end.MinutesFromMidnight() - start.MinutesFromMidnight()
	if elapsed < 0 {
		elapsed += timeutil.MinutesPerDay
	}
	return elapsed
}
