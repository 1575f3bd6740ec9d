package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"azai/confidence"
	"azai/output"
	"azai/storage"
)

var (
	exportFormat         string
	exportMode           string
	exportOutput         string
	exportDBPath         string
	exportRecommendation string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export normalized timesheets from SQLite to CSV/Excel",
	Long: `Export normalized timesheets from SQLite.

Modes:
- raw: one row per time entry with units, hours and the document's recommendation
- weekly: per document and employee aggregates (entries, first/last date, minutes, units, hours)
- lines: claim-ready service lines (D8 date, service code, units, charge amount)

Output format can be selected explicitly via --format or inferred from --output extension.
Use --recommendation to export only timesheets with that review recommendation.`,
	Example: `
  # Export raw rows to CSV
  azai export --mode raw --db ./azai.db --output ./entries.csv

  # Export weekly totals to Excel
  azai export --mode weekly --db ./azai.db --output ./weekly.xlsx

  # Export service lines of auto-accepted timesheets only
  azai export --mode lines --recommendation auto_accept --output ./lines.csv

  # Force Excel format independent of extension
  azai export --mode lines --format excel --db ./azai.db --output ./lines.out
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadRuntime()
		if err != nil {
			return err
		}

		format := exportFormat
		if strings.TrimSpace(format) == "" {
			format = detectExportFormat(exportOutput)
		}

		recommendation, err := parseRecommendationFilter(exportRecommendation)
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(exportDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.ListTimesheets(recommendation)
		if err != nil {
			return err
		}

		mode := strings.TrimSpace(strings.ToLower(exportMode))
		if mode == "" {
			mode = output.ModeRaw
		}
		table, err := output.TableForMode(mode, records, cfg.Billing.UnitRate)
		if err != nil {
			return err
		}

		writer, err := output.WriterForFormat(format)
		if err != nil {
			return err
		}
		if err := writer.Write(exportOutput, table); err != nil {
			return err
		}

		fmt.Printf("Export completed. Timesheets: %d, Rows: %d, Mode: %s, Format: %s, File: %s\n", len(records), len(table.Rows), mode, format, exportOutput)
		return nil
	},
}

func detectExportFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "csv":
		return "csv"
	case "xlsx", "xlsm", "xls":
		return "excel"
	default:
		return "csv"
	}
}

func parseRecommendationFilter(value string) (confidence.Recommendation, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return "", nil
	}
	recommendation, ok := confidence.ParseRecommendation(value)
	if !ok {
		return "", fmt.Errorf("unsupported recommendation: %s (supported: auto_accept, review_recommended, manual_review_required, manual_entry_required)", value)
	}
	return recommendation, nil
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportMode, "mode", output.ModeRaw, "Export mode: "+strings.Join(output.SupportedModes(), "|"))
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: csv|excel (optional, inferred from output extension)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")
	exportCmd.Flags().StringVar(&exportDBPath, "db", "./azai.db", "Path to local SQLite database")
	exportCmd.Flags().StringVar(&exportRecommendation, "recommendation", "", "Only export timesheets with this recommendation")

	_ = exportCmd.MarkFlagRequired("output")
}
