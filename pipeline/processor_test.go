package pipeline

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"azai/billing"
	"azai/confidence"
	"azai/timesheet"
)

func TestProcessScoresNormalizedDocument(t *testing.T) {
	t.Parallel()

	doc := timesheet.Document{
		ID:         "doc-1",
		SourceFile: "scan.json",
		Data: document("Week of 10/6/2024",
			entry("Tuesday", timesheet.StringPtr("900"), timesheet.StringPtr("935")),
		),
	}

	result := NewProcessor(DefaultOptions()).Process(doc)

	assert.Equal(t, "doc-1", result.Document.ID)
	assert.Equal(t, "scan.json", result.Document.SourceFile)
	assert.Equal(t, "2024-10-08", result.Document.Data.EmployeeEntries[0].TimeEntries[0].Date)
	assert.Equal(t, "900", timesheet.Value(doc.Data.EmployeeEntries[0].TimeEntries[0].TimeIn))
	assert.Empty(t, result.Issues)
	assert.InDelta(t, 0.88, result.Report.Overall, 1e-9)
	assert.Equal(t, confidence.ReviewRecommended, result.Report.Recommendation)
}

func TestProcessLeavesUnsupportedUnitsUnbilled(t *testing.T) {
	t.Parallel()

	stale := entry("Tuesday", timesheet.StringPtr("BBAL"), timesheet.StringPtr("5:00 PM"))
	stale.Units = timesheet.IntPtr(32)
	stale.HoursWorked = timesheet.StringPtr("8.00")
	doc := timesheet.Document{ID: "doc-1", Data: document("Week of 10/6/2024", stale)}

	for _, cleanup := range []bool{false, true} {
		opts := DefaultOptions()
		opts.OCRCleanup = cleanup

		result := NewProcessor(opts).Process(doc)

		assert.Empty(t, billing.ServiceLines(result.Document, 6.25), "cleanup=%v", cleanup)
	}
}

func TestProcessBatchKeepsInputOrder(t *testing.T) {
	t.Parallel()

	docs := make([]timesheet.Document, 25)
	for i := range docs {
		docs[i] = timesheet.Document{
			ID: fmt.Sprintf("doc-%02d", i),
			Data: document("Week of 10/6/2024",
				entry(fmt.Sprintf("10/%d", 6+i%7), timesheet.StringPtr("9:00 AM"), timesheet.StringPtr(fmt.Sprintf("%d:00 PM", 1+i%5))),
			),
		}
	}

	opts := DefaultOptions()
	opts.Workers = 3
	results, err := NewProcessor(opts).ProcessBatch(context.Background(), docs)
	require.NoError(t, err)
	require.Len(t, results, len(docs))

	for i, result := range results {
		assert.Equal(t, docs[i].ID, result.Document.ID)
		got := result.Document.Data.EmployeeEntries[0].TimeEntries[0]
		assert.Equal(t, fmt.Sprintf("2024-10-%02d", 6+i%7), got.Date)
		require.NotNil(t, got.Units)
		assert.Equal(t, (4+i%5)*4, *got.Units)
	}
}

func TestProcessBatchCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	docs := []timesheet.Document{{ID: "a"}, {ID: "b"}}
	results, err := NewProcessor(DefaultOptions()).ProcessBatch(ctx, docs)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}

func TestProcessBatchEmpty(t *testing.T) {
	t.Parallel()

	results, err := NewProcessor(DefaultOptions()).ProcessBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
