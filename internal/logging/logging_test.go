package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(&buf, "debug", "json")
	require.NoError(t, err)
	logger.Debug().Str("field", "time_in").Msg("resolved")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event), "log line %q", buf.String())
	assert.Equal(t, "debug", event["level"])
	assert.Equal(t, "time_in", event["field"])
	assert.Equal(t, "resolved", event["message"])
	assert.Contains(t, event, "time")
}

func TestNewFiltersBelowLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(&buf, "warn", "json")
	require.NoError(t, err)
	logger.Info().Msg("hidden")
	assert.Zero(t, buf.Len(), "info is filtered at warn")
}

func TestNewConsoleLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(&buf, "", "")
	require.NoError(t, err)
	logger.Info().Msg("ready")
	assert.Contains(t, buf.String(), "ready")
}

func TestNewRejectsInvalidSettings(t *testing.T) {
	t.Parallel()

	_, err := New(&bytes.Buffer{}, "loud", "json")
	assert.Error(t, err, "invalid level")
	_, err = New(&bytes.Buffer{}, "info", "xml")
	assert.Error(t, err, "invalid format")
}
