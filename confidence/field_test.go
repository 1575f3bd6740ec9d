package confidence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		kind  FieldKind
		want  float64
	}{
		{"Jane Doe", FieldName, 1.0},
		{"Jane", FieldName, 0.8},
		{"J0hn", FieldName, 0.3},
		{"2024-10-06", FieldDate, 1.0},
		{"10/6", FieldDate, 0.9},
		{"Tuesday", FieldDate, 0.75},
		{"garbage", FieldDate, 0.5},
		{"9:00 AM", FieldTime, 0.9},
		{"9:00", FieldTime, 0.8},
		{"830a", FieldTime, 0.7},
		{"830", FieldTime, 0.6},
		{"BBAL", FieldTime, 0.2},
		{"T1019", FieldServiceCode, 0.9},
		{"t1019", FieldServiceCode, 0.9},
		{"T1019-U2", FieldServiceCode, 0.85},
		{"HOMECARE", FieldServiceCode, 0.65},
		{"?", FieldServiceCode, 0.5},
		{"signed", FieldSignature, 0.9},
		{"X", FieldSignature, 0.9},
		{"Jane Doe", FieldSignature, 0.9},
		{"-", FieldSignature, 0.5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, ScoreField(tt.value, tt.kind), 1e-9, "%s %q", tt.kind, tt.value)
	}
}

func TestScoreFieldBlankIsZero(t *testing.T) {
	t.Parallel()

	for _, kind := range []FieldKind{FieldName, FieldDate, FieldTime, FieldServiceCode, FieldSignature} {
		assert.Zero(t, ScoreField("", kind), kind.String())
		assert.Zero(t, ScoreField(" \t ", kind), kind.String())
	}
}

func TestScoreFieldUnknownKind(t *testing.T) {
	t.Parallel()

	assert.Zero(t, ScoreField("Jane Doe", FieldKind(99)))
	assert.Equal(t, "field(99)", FieldKind(99).String())
}

func TestScoreFieldStaysInRange(t *testing.T) {
	t.Parallel()

	values := []string{"a", "12345 67890 1", "Mary-Jane O'Neil Smith", "00000000", "|||", "✓"}
	for _, kind := range []FieldKind{FieldName, FieldDate, FieldTime, FieldServiceCode, FieldSignature} {
		for _, value := range values {
			score := ScoreField(value, kind)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		}
	}
}
