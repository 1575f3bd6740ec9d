package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"azai/confidence"
	"azai/storage"
)

func sampleRecords() []storage.Timesheet {
	docs := sampleDocs()
	return []storage.Timesheet{{
		Document: docs[0],
		Report:   confidence.Report{Overall: 0.876, Recommendation: confidence.ReviewRecommended},
	}}
}

func TestTableForMode(t *testing.T) {
	records := sampleRecords()

	raw, err := TableForMode("raw", records, 0)
	require.NoError(t, err)
	require.Len(t, raw.Rows, 3, "one raw row per entry")
	wantFirst := []string{"doc-1", "", "Acme", "Week of 10/6/2024", "Jane Doe", "t1019", "", "2024-10-09", "9:00 AM", "9:35 AM", "3", "", "0.88", "review_recommended"}
	assert.Equal(t, wantFirst, raw.Rows[0])

	weekly, err := TableForMode("Weekly", records, 0)
	require.NoError(t, err)
	require.Len(t, weekly.Rows, 2)
	assert.Equal(t, "80", weekly.Rows[0][8])
	assert.Equal(t, "1.33", weekly.Rows[0][10])

	lines, err := TableForMode("lines", records, 6.25)
	require.NoError(t, err)
	wantLine := []string{"doc-1", "Acme", "Jane Doe", "T1019", "2024-10-09", "D8", "20241009", "3", "18.75"}
	require.Len(t, lines.Rows, 2)
	assert.Equal(t, wantLine, lines.Rows[0])

	_, err = TableForMode("daily", records, 0)
	assert.Error(t, err)
}

func TestCSVWriter_WritesTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	table := Table{Headers: []string{"A", "B"}, Rows: [][]string{{"1", "x,y"}, {"2", ""}}}

	writer, err := WriterForFormat("CSV")
	require.NoError(t, err)
	require.NoError(t, writer.Write(path, table))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A", "B"}, {"1", "x,y"}, {"2", ""}}, rows)
}

func TestExcelWriter_KeepsCodesAsText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	table := Table{
		Headers: []string{"DateD8", "Units", "ChargeAmount", "Code"},
		Rows:    [][]string{{"20241009", "3", "18.75", "0420"}},
	}

	require.NoError(t, (&ExcelWriter{}).Write(path, table))

	file, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer file.Close()

	sheet := file.GetSheetName(0)
	rows, err := file.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "20241009", rows[1][0])
	assert.Equal(t, "0420", rows[1][3])

	cellType, err := file.GetCellType(sheet, "B2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, cellType, "units are stored as a number")
	assert.NotEqual(t, excelize.CellTypeInlineString, cellType, "units are stored as a number")
}

func TestWriterForFormat_Unsupported(t *testing.T) {
	_, err := WriterForFormat("pdf")
	assert.Error(t, err)
}
