package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"azai/config"
)

var configCreateSet []string

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a configuration file from the example template.",
	Long: `Create a new configuration file from the same example template used by "config edit".

The template holds the default billing rules (15-minute units, 3-unit floor for
35-59 minute shifts), the confidence review thresholds and the OCR cleanup settings.
Use --set key=value to start from different values; the template comments are
dropped in that case. The result is validated before anything is written.

If a configuration file is already in use, no new file is written.`,
	Example: `
  # Create default config at $HOME/.azai.yaml
  azai config create

  # Create a config for a payer with 30-minute units and a unit rate
  azai config create --set billing.unit_minutes=30 --set billing.unit_rate=14.50
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return saveDefaultConfig(configCreateSet)
	},
}

func saveDefaultConfig(overrides []string) error {
	configPath, err := resolveConfigEditPath(cfgFile, viper.ConfigFileUsed())
	if err != nil {
		return err
	}

	content, err := configTemplate(overrides)
	if err != nil {
		return err
	}

	if len(overrides) > 0 {
		if _, statErr := os.Stat(configPath); statErr == nil {
			return fmt.Errorf("config file already exists at %s; change values with: azai config set", configPath)
		}
	}

	created, err := writeNewConfigFile(configPath, content)
	if err != nil {
		return err
	}

	if created {
		cfg, err := config.ValidateYAMLContent(content)
		if err != nil {
			return err
		}
		fmt.Printf("New config file created at: %s\n", configPath)
		fmt.Println(describeEngineSettings(*cfg))
		fmt.Println("Adjust billing rules and review thresholds with: azai config edit")
		return nil
	}

	fmt.Printf("Config file already exists at: %s\n", configPath)
	return nil
}

// configTemplate returns the example config with every key=value override
// applied in order.
func configTemplate(overrides []string) ([]byte, error) {
	content := []byte(config.ExampleYAML())
	for _, override := range overrides {
		key, value, found := strings.Cut(override, "=")
		if !found || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid --set value %q (expected key=value)", override)
		}
		updated, err := applyConfigValue(content, key, value)
		if err != nil {
			return nil, err
		}
		content = updated
	}
	return content, nil
}

func init() {
	configCmd.AddCommand(configCreateCmd)

	configCreateCmd.Flags().StringArrayVar(&configCreateSet, "set", nil, "Override one template value as key=value (repeatable)")
}
