package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitsMinimumFloor(t *testing.T) {
	t.Parallel()

	for minutes := 35; minutes <= 59; minutes++ {
		assert.Equal(t, 3, Units(minutes), "minutes %d", minutes)
	}
	assert.Equal(t, 2, Units(34))
	assert.Equal(t, 4, Units(60))
}

func TestUnitsStandardRounding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		minutes int
		want    int
	}{
		{0, 0},
		{7, 0},
		{8, 1},
		{15, 1},
		{22, 1},
		{23, 2},
		{30, 2},
		{67, 4},
		{68, 5},
		{480, 32},
		{-5, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Units(tt.minutes), "minutes %d", tt.minutes)
	}
}

func TestRulesCustomFloor(t *testing.T) {
	t.Parallel()

	rules := Rules{UnitMinutes: 15, FloorMinMinutes: 20, FloorMaxMinutes: 29, FloorUnits: 2}
	assert.Equal(t, 2, rules.Units(20))
	assert.Equal(t, 2, rules.Units(29))
	assert.Equal(t, 3, rules.Units(45))

	noFloor := Rules{UnitMinutes: 15}
	assert.Equal(t, 4, noFloor.Units(55))

	assert.Equal(t, 0, Rules{}.Units(60))
}

func TestHours(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.58, Hours(35), 0.0001)
	assert.InDelta(t, 1.0, Hours(60), 0.0001)
	assert.InDelta(t, 7.75, Hours(465), 0.0001)
	assert.Equal(t, "0.58", FormatHours(35))
	assert.Equal(t, "8.00", FormatHours(480))
}
