package cmd

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"azai/config"
)

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one configuration value.",
	Long: `Write one value into the active config file and validate the result.

The value is read as YAML, so numbers, booleans and lists keep their type.
The file is only written when the updated configuration is valid; other
keys and their values are kept. A missing config file is created from the
example template first.

Settable keys:
- ` + strings.Join(config.Keys(), "\n- "),
	Example: `
  # Bill 30-minute units
  azai config set billing.unit_minutes 30

  # Enable OCR cleanup by default
  azai config set normalize.ocr_cleanup true

  # Replace the artifact list
  azai config set normalize.ocr_artifacts '["BBAL", "|", "~"]'
`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := resolveConfigEditPath(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}
		if _, err := ensureConfigFileWithTemplate(configPath); err != nil {
			return err
		}

		content, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("read config file: %w", err)
		}

		updated, err := applyConfigValue(content, args[0], args[1])
		if err != nil {
			return err
		}
		if err := os.WriteFile(configPath, updated, 0o600); err != nil {
			return fmt.Errorf("write config file: %w", err)
		}

		fmt.Printf("Updated %s in %s\n", strings.ToLower(strings.TrimSpace(args[0])), configPath)
		return nil
	},
}

// applyConfigValue sets key in the YAML document content and returns the
// validated result.
func applyConfigValue(content []byte, key, raw string) ([]byte, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if !slices.Contains(config.Keys(), key) {
		return nil, fmt.Errorf("unknown config key %q (supported: %s)", key, strings.Join(config.Keys(), ", "))
	}

	var value any
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
		return nil, fmt.Errorf("parse value %q: %w", raw, err)
	}

	doc := map[string]any{}
	if strings.TrimSpace(string(content)) != "" {
		if err := yaml.Unmarshal(content, &doc); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	}

	if err := setNested(doc, strings.Split(key, "."), value); err != nil {
		return nil, err
	}

	updated, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal updated config yaml: %w", err)
	}
	if _, err := config.ValidateYAMLContent(updated); err != nil {
		return nil, fmt.Errorf("updated config is invalid: %w", err)
	}
	return updated, nil
}

func setNested(doc map[string]any, path []string, value any) error {
	current := doc
	for i, part := range path[:len(path)-1] {
		raw, exists := current[part]
		if !exists || raw == nil {
			next := map[string]any{}
			current[part] = next
			current = next
			continue
		}
		next, ok := raw.(map[string]any)
		if !ok {
			return fmt.Errorf("config key %q must be a mapping", strings.Join(path[:i+1], "."))
		}
		current = next
	}
	current[path[len(path)-1]] = value
	return nil
}

func init() {
	configCmd.AddCommand(configSetCmd)
}
