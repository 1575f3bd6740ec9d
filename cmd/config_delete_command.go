package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"azai/config"
)

var configDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the active configuration file.",
	Long: `Delete the configuration file currently selected by azai.

Built-in defaults apply again afterwards; values that differ from the defaults
are listed before the file is removed. If no configuration file is active,
the command returns an error.`,
	Example: `
  # Delete active config
  azai config delete

  # Delete config at a custom path
  azai --configFile ./custom-azai.yaml config delete
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := viper.ConfigFileUsed()
		if configPath == "" {
			return fmt.Errorf("no configuration file found")
		}

		if content, err := os.ReadFile(configPath); err == nil {
			if cfg, err := config.ValidateYAMLContent(content); err == nil {
				for _, line := range configDifferences(*cfg, *config.Default()) {
					fmt.Println("Dropping", line)
				}
			}
		}

		if err := os.Remove(configPath); err != nil {
			return fmt.Errorf("error deleting configuration file: %w", err)
		}

		fmt.Printf("Configuration file successfully deleted: %s\n", configPath)
		fmt.Println("Defaults now apply.", describeEngineSettings(*config.Default()))
		return nil
	},
}

// configDifferences lists the "key: value" lines of cfg that differ from
// defaults.
func configDifferences(cfg, defaults config.Config) []string {
	current := configLines(cfg)
	base := configLines(defaults)
	out := make([]string, 0, len(current))
	for i, line := range current {
		if i >= len(base) || line != base[i] {
			out = append(out, line)
		}
	}
	return out
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}
