/*
Copyright © 2025 riad@rsworld.eu

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"azai/config"
	"azai/internal/logging"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "azai",
	Short: "Normalize OCR-extracted timesheets and derive billing units.",
	Long: `
**********************************************
*                  AZAI                      *
**********************************************

This CLI reads OCR-extracted timesheets (JSON, CSV, Excel, UTF-16 TSV), normalizes
dates and times, derives 15-minute billing units, scores extraction confidence,
stores results in a local SQLite database and exports them to CSV or Excel.

Supported input formats:
- JSON: .json (extraction documents)
- Excel: .xlsx, .xlsm, .xls
- CSV: .csv
- TSV: .tsv, .txt (UTF-8 or UTF-16)
`,
	Example: `
  # Create configuration file
  azai config create

  # Normalize extraction documents and store them
  azai normalize -i ./scans.json --db ./azai.db

  # Normalize a weekly grid sheet with OCR cleanup
  azai normalize -i ./week41.xlsx --mapper weekly --ocr-cleanup on

  # Compute units for one shift
  azai units --in 830 --out 321

  # Export service lines
  azai export --mode lines --output ./lines.csv

  # Serve the local API
  azai serve --port 8080
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.azai.yaml, then ./.azai.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level override: trace|debug|info|warn|error")
	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if !requiresConfig(cmd) {
			return nil
		}

		_, err := config.LoadAndValidate()
		return err
	}
}

func requiresConfig(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	switch cmd.Name() {
	case "normalize", "export", "units", "serve":
		return true
	default:
		return false
	}
}

// loadRuntime returns the validated config and a stderr logger built from it.
func loadRuntime() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadAndValidate()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	logger, err := logging.Stderr(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, logger, nil
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".azai" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".azai")
	}

	viper.SetEnvPrefix("azai")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// Built-in defaults apply without a file.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found, using defaults. Create one with: azai config create")
	}
}
