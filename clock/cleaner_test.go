package clock

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanerRepairsLetterForDigitMisreads(t *testing.T) {
	t.Parallel()

	cleaner := NewCleaner()
	tests := []struct {
		input string
		want  string
	}{
		{"l:3O PM", "1:30 PM"},
		{"I2:00", "12:00 PM"},
		{"S:45 pm", "5:45 PM"},
		{"8:IS AM", "8:15 AM"},
		{"Z:00 PM", "2:00 PM"},
		{"G:30 pm", "6:30 PM"},
		{"9:00 AM", "9:00 AM"},
		{"830", "8:30 AM"},
	}

	for _, tt := range tests {
		got, ok := cleaner.Clean(tt.input)
		assert.True(t, ok, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestCleanerRejectsGarbage(t *testing.T) {
	t.Parallel()

	cleaner := NewCleaner()
	inputs := []string{
		"",
		"   ",
		"BBAL",
		"bbal",
		"9:00 | AM",
		"~830",
		strings.Repeat("9", 21),
		"hello",
		"9:75 AM",
	}

	for _, input := range inputs {
		got, ok := cleaner.Clean(input)
		assert.False(t, ok, "input %q", input)
		assert.Empty(t, got, "input %q", input)
	}
}

func TestCleanerCustomArtifacts(t *testing.T) {
	t.Parallel()

	cleaner := NewCleaner("xx")
	_, ok := cleaner.Clean("9:00xx")
	assert.False(t, ok)

	got, ok := cleaner.Clean("9:00 | AM")
	assert.False(t, ok, "pipe alone does not parse once defaults are replaced")
	assert.Empty(t, got)
}
