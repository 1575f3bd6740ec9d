package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"azai/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values. Without a
config file the built-in defaults are shown.`,
	Example: `
  # Show active configuration
  azai config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		} else {
			fmt.Println("No config file loaded, showing defaults.")
		}
		fmt.Println("Configuration:")
		for _, line := range configLines(*cfg) {
			fmt.Println(line)
		}
	},
}

func configLines(cfg config.Config) []string {
	return []string{
		fmt.Sprintf("%s: %d", config.KeyDatesReferenceYear, cfg.Dates.ReferenceYear),
		fmt.Sprintf("%s: %d", config.KeyBillingUnitMinutes, cfg.Billing.UnitMinutes),
		fmt.Sprintf("%s: %d", config.KeyBillingFloorMinMinutes, cfg.Billing.MinimumFloor.MinMinutes),
		fmt.Sprintf("%s: %d", config.KeyBillingFloorMaxMinutes, cfg.Billing.MinimumFloor.MaxMinutes),
		fmt.Sprintf("%s: %d", config.KeyBillingFloorUnits, cfg.Billing.MinimumFloor.Units),
		fmt.Sprintf("%s: %.2f", config.KeyBillingUnitRate, cfg.Billing.UnitRate),
		fmt.Sprintf("%s: %.2f", config.KeyConfidenceAutoAccept, cfg.Confidence.AutoAccept),
		fmt.Sprintf("%s: %.2f", config.KeyConfidenceReview, cfg.Confidence.ReviewRecommended),
		fmt.Sprintf("%s: %.2f", config.KeyConfidenceManualReview, cfg.Confidence.ManualReviewRequired),
		fmt.Sprintf("%s: %t", config.KeyNormalizeOCRCleanup, cfg.Normalize.OCRCleanup),
		fmt.Sprintf("%s: %d", config.KeyNormalizeWorkers, cfg.Normalize.Workers),
		fmt.Sprintf("%s: %s", config.KeyNormalizeOCRArtifacts, strings.Join(cfg.Normalize.OCRArtifacts, " ")),
		fmt.Sprintf("%s: %s", config.KeyLogLevel, cfg.Log.Level),
		fmt.Sprintf("%s: %s", config.KeyLogFormat, cfg.Log.Format),
	}
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
