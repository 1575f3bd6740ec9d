package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"azai/billing"
	"azai/clock"
)

var (
	unitsTimeIn  string
	unitsTimeOut string
)

var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "Compute elapsed minutes, billing units and hours for one shift",
	Long: `Normalize two time values and print the shift length in minutes, the billing
units under the configured rules and the hours worked.

Times may be written the way OCR extracts them ("830", "9:00AM", "1800").
A time out before the time in is read as one crossing of midnight.`,
	Example: `
  # Standard shift
  azai units --in "9:00 AM" --out "9:35 AM"

  # Digit runs as read from a scan
  azai units --in 830 --out 321
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadRuntime()
		if err != nil {
			return err
		}

		line, err := describeShift(unitsTimeIn, unitsTimeOut, cfg.BillingRules())
		if err != nil {
			return err
		}
		fmt.Println(line)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(unitsCmd)

	unitsCmd.Flags().StringVar(&unitsTimeIn, "in", "", "Time in")
	unitsCmd.Flags().StringVar(&unitsTimeOut, "out", "", "Time out")

	_ = unitsCmd.MarkFlagRequired("in")
	_ = unitsCmd.MarkFlagRequired("out")
}

func describeShift(timeIn, timeOut string, rules billing.Rules) (string, error) {
	start, ok := clock.Parse(timeIn)
	if !ok {
		return "", fmt.Errorf("invalid time in %q", timeIn)
	}
	end, ok := clock.Parse(timeOut)
	if !ok {
		return "", fmt.Errorf("invalid time out %q", timeOut)
	}

	minutes := clock.Elapsed(start, end)
	return fmt.Sprintf("%s - %s: %d minutes, %d units, %s hours",
		start, end, minutes, rules.Units(minutes), billing.FormatHours(minutes)), nil
}
