package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekRange(t *testing.T) {
	t.Parallel()

	normalizer := NewNormalizer(2024)

	tests := []struct {
		header string
		want   string
	}{
		{"Week of 10/6/2024", "2024-10-06..2024-10-12"},
		{"week of: 2024-10-06", "2024-10-06..2024-10-12"},
		{"Week Starting 10/6", "2024-10-06..2024-10-12"},
		{"Week ending 10/12/2024", "2024-10-06..2024-10-12"},
		{"W/E 10/12/24", "2024-10-06..2024-10-12"},
		{"10/6/2024 - 10/12/2024", "2024-10-06..2024-10-12"},
		{"10/6-10/12/2024", "2024-10-06..2024-10-12"},
		{"10/6 to 10/12", "2024-10-06..2024-10-12"},
		{"2024-10-06 through 2024-10-12", "2024-10-06..2024-10-12"},
		{"Week of Oct 6, 2024", "2024-10-06..2024-10-12"},
		{"Week of 10/6 – 10/12", "2024-10-06..2024-10-12"},
		{"12/29/2024 to 1/4", "2024-12-29..2025-01-04"},
		{"10/6/2024", "2024-10-06..2024-10-12"},
	}
	for _, tt := range tests {
		week, ok := normalizer.ParseWeekRange(tt.header)
		require.True(t, ok, "header %q", tt.header)
		assert.Equal(t, tt.want, week.String(), "header %q", tt.header)
	}
}

func TestParseWeekRangeRejectsNoise(t *testing.T) {
	t.Parallel()

	normalizer := NewNormalizer(2024)
	for _, header := range []string{"", "Week of", "nonsense", "Week of 13/40/2024", "10/12/2024 - 10/6/2024"} {
		_, ok := normalizer.ParseWeekRange(header)
		assert.False(t, ok, "header %q", header)
	}
}

func TestWeekHeaderResolvesDayNames(t *testing.T) {
	t.Parallel()

	normalizer := NewNormalizer(2024)
	week, ok := normalizer.ParseWeekRange("Week of 10/6/2024")
	require.True(t, ok)

	got, ok := normalizer.Normalize("Tuesday", &week)
	require.True(t, ok)
	assert.Equal(t, "2024-10-08", got)
}

func TestWeekRangeDays(t *testing.T) {
	t.Parallel()

	week := *octoberWeek()
	days := week.Days()
	require.Len(t, days, 7)
	assert.Equal(t, week.Start, days[0])
	assert.Equal(t, week.End, days[6])
}

func TestWeekRangeContains(t *testing.T) {
	t.Parallel()

	week := *octoberWeek()
	assert.True(t, week.Contains(time.Date(2024, time.October, 8, 15, 30, 0, 0, time.UTC)))
	assert.True(t, week.Contains(week.End))
	assert.False(t, week.Contains(time.Date(2024, time.October, 13, 0, 0, 0, 0, time.UTC)))
	assert.False(t, week.Contains(time.Date(2023, time.October, 8, 0, 0, 0, 0, time.UTC)))
}
