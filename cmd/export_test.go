package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"azai/confidence"
)

func TestDetectExportFormat(t *testing.T) {
	tests := map[string]string{
		"./lines.csv":    "csv",
		"./lines.XLSX":   "excel",
		"./lines.xlsm":   "excel",
		"./lines.out":    "csv",
		"./no-extension": "csv",
	}
	for path, want := range tests {
		assert.Equal(t, want, detectExportFormat(path), "detectExportFormat(%q)", path)
	}
}

func TestParseRecommendationFilter(t *testing.T) {
	got, err := parseRecommendationFilter("")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = parseRecommendationFilter(" Review_Recommended ")
	require.NoError(t, err)
	assert.Equal(t, confidence.ReviewRecommended, got)

	_, err = parseRecommendationFilter("maybe")
	assert.Error(t, err)
}
