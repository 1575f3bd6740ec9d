package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage azai configuration file values.",
	Long: `Create, edit, set, display, and delete the azai configuration file.

The configuration stores engine-wide values:
- dates.reference_year
- billing.unit_minutes / billing.minimum_floor / billing.unit_rate
- confidence.auto_accept / review_recommended / manual_review_required
- normalize.ocr_cleanup / workers / ocr_artifacts
- log.level / log.format`,
	Example: `
  # Create default config in $HOME/.azai.yaml
  azai config create

  # Show active config and source file
  azai config show

  # Open active config in editor (creates example if missing)
  azai config edit

  # Change one value
  azai config set billing.unit_rate 7.25

  # Delete active config file
  azai config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
