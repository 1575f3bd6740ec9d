package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"azai/confidence"
	"azai/importer"
	"azai/pipeline"
	"azai/storage"
)

var (
	normalizeInputs     []string
	normalizeFormat     string
	normalizeMapper     string
	normalizeDBPath     string
	normalizeOCRCleanup string
	normalizeDryRun     bool
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Normalize extracted timesheets and store them in a local SQLite database",
	Long: `Read source files, normalize dates and times, derive billing units, score
extraction confidence and persist results in SQLite.

JSON inputs hold extraction documents and ignore --mapper. Tabular inputs
(CSV, Excel, TSV) are mapped row by row:
- entries: one row per time entry
- weekly: one row per employee with sun_in/sun_out ... sat_in/sat_out columns

When --format is omitted, format is inferred from each input file extension.
Unparsed values are kept as read and reported as issues; they never abort a run.`,
	Example: `
  # Normalize extraction documents
  azai normalize -i ./scans.json --db ./azai.db

  # Normalize a weekly grid exported from a scanning tool
  azai normalize -i ./week41.txt --format tsv --mapper weekly --db ./azai.db

  # Enable OCR cleanup for this run only
  azai normalize -i ./scans.json --ocr-cleanup on

  # Preview results without writing to the database
  azai normalize -i ./scans.json --dry-run
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadRuntime()
		if err != nil {
			return err
		}

		cleanup, err := resolveOCRCleanupMode(normalizeOCRCleanup, cfg.Normalize.OCRCleanup)
		if err != nil {
			return err
		}

		mapper, err := importer.MapperByName(normalizeMapper)
		if err != nil {
			return err
		}

		result, err := importer.Run(normalizeInputs, normalizeFormat, mapper)
		if err != nil {
			return err
		}

		opts := cfg.PipelineOptions(logger)
		opts.OCRCleanup = cleanup
		results, err := pipeline.NewProcessor(opts).ProcessBatch(cmd.Context(), result.Documents)
		if err != nil {
			return err
		}

		issues := 0
		for _, processed := range results {
			issues += len(processed.Issues)
		}

		if normalizeDryRun {
			for _, processed := range results {
				fmt.Println(formatDryRunResult(processed))
			}
			fmt.Printf("Dry run completed. Files: %d, Rows read: %d, Rows mapped: %d, Rows skipped: %d, Documents: %d, Issues: %d\n",
				result.FilesProcessed,
				result.RowsRead,
				result.RowsMapped,
				result.RowsSkipped,
				len(results),
				issues,
			)
			return nil
		}

		store, err := storage.OpenSQLite(normalizeDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		records := make([]storage.Timesheet, 0, len(results))
		for _, processed := range results {
			records = append(records, storage.FromResult(processed))
		}
		persisted, err := store.SaveTimesheets(records)
		if err != nil {
			return err
		}

		fmt.Printf("Normalize completed. Files: %d, Rows read: %d, Rows mapped: %d, Rows skipped: %d, Documents: %d, Issues: %d, Documents persisted: %d\n",
			result.FilesProcessed,
			result.RowsRead,
			result.RowsMapped,
			result.RowsSkipped,
			len(results),
			issues,
			persisted,
		)
		printRecommendationCounts(results)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(normalizeCmd)

	normalizeCmd.Flags().StringArrayVarP(&normalizeInputs, "input", "i", nil, "Input file path (repeatable)")
	normalizeCmd.Flags().StringVarP(&normalizeFormat, "format", "f", "", "Input format: "+strings.Join(importer.SupportedFormats(), "|")+" (optional, inferred from extension when omitted)")
	normalizeCmd.Flags().StringVarP(&normalizeMapper, "mapper", "m", "entries", "Row mapper for tabular inputs: "+strings.Join(importer.SupportedMapperNames(), "|"))
	normalizeCmd.Flags().StringVar(&normalizeDBPath, "db", "./azai.db", "Path to local SQLite database")
	normalizeCmd.Flags().StringVar(&normalizeOCRCleanup, "ocr-cleanup", "auto", "OCR cleanup of time values: auto|on|off (auto uses normalize.ocr_cleanup)")
	normalizeCmd.Flags().BoolVar(&normalizeDryRun, "dry-run", false, "Print results without writing to the database")

	_ = normalizeCmd.MarkFlagRequired("input")
}

func resolveOCRCleanupMode(mode string, configDefault bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return configDefault, nil
	case "on", "true", "yes":
		return true, nil
	case "off", "false", "no":
		return false, nil
	default:
		return false, fmt.Errorf("invalid ocr cleanup mode %q (supported: auto|on|off)", mode)
	}
}

func formatDryRunResult(result pipeline.Result) string {
	doc := result.Document
	return fmt.Sprintf("%s client=%q week_of=%q entries=%d issues=%d confidence=%.2f recommendation=%s",
		doc.ID,
		doc.Data.ClientName,
		doc.Data.WeekOf,
		doc.Data.EntryCount(),
		len(result.Issues),
		result.Report.Overall,
		result.Report.Recommendation,
	)
}

func printRecommendationCounts(results []pipeline.Result) {
	counts := make(map[confidence.Recommendation]int, 4)
	for _, result := range results {
		counts[result.Report.Recommendation]++
	}
	for _, recommendation := range []confidence.Recommendation{
		confidence.AutoAccept,
		confidence.ReviewRecommended,
		confidence.ManualReviewRequired,
		confidence.ManualEntryRequired,
	} {
		if counts[recommendation] > 0 {
			fmt.Printf("  %s: %d\n", recommendation, counts[recommendation])
		}
	}
}
