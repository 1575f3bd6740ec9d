package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"azai/config"
)

func TestApplyConfigValue(t *testing.T) {
	updated, err := applyConfigValue([]byte(config.ExampleYAML()), "billing.unit_minutes", "30")
	require.NoError(t, err)

	cfg, err := config.ValidateYAMLContent(updated)
	require.NoError(t, err, "updated config validates")
	assert.Equal(t, 30, cfg.Billing.UnitMinutes)
	assert.Equal(t, 0.95, cfg.Confidence.AutoAccept, "other values kept")
	assert.Equal(t, 4, cfg.Normalize.Workers, "other values kept")
}

func TestApplyConfigValue_CreatesMissingSections(t *testing.T) {
	updated, err := applyConfigValue(nil, "normalize.ocr_artifacts", `["BBAL", "~"]`)
	require.NoError(t, err)

	cfg, err := config.ValidateYAMLContent(updated)
	require.NoError(t, err)
	assert.Equal(t, []string{"BBAL", "~"}, cfg.Normalize.OCRArtifacts)
}

func TestApplyConfigValue_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		key     string
		value   string
		wantErr string
	}{
		{name: "unknown key", key: "billing.rate", value: "1", wantErr: "unknown config key"},
		{name: "threshold order", key: "confidence.review_recommended", value: "0.99", wantErr: "updated config is invalid"},
		{name: "log level", key: "log.level", value: "loud", wantErr: "updated config is invalid"},
		{name: "scalar section", content: "billing: 15\n", key: "billing.unit_minutes", value: "30", wantErr: "must be a mapping"},
		{name: "broken file", content: "billing: [\n", key: "billing.unit_minutes", value: "30", wantErr: "parse config yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := applyConfigValue([]byte(tt.content), tt.key, tt.value)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
