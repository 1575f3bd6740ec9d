package pipeline

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"azai/confidence"
	"azai/timesheet"
)

// Result is one processed document.
type Result struct {
	Document timesheet.Document `json:"document"`
	Issues   []Issue            `json:"issues"`
	Report   confidence.Report  `json:"confidence"`
}

// Processor normalizes and scores documents. No state is shared between
// documents.
type Processor struct {
	normalizer *Normalizer
	scorer     *confidence.Scorer
	workers    int64
	logger     zerolog.Logger
}

func NewProcessor(opts Options) *Processor {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	return &Processor{
		normalizer: NewNormalizer(opts),
		scorer:     confidence.NewScorer(opts.Thresholds),
		workers:    int64(workers),
		logger:     opts.Logger,
	}
}

func (p *Processor) Process(doc timesheet.Document) Result {
	data, issues := p.normalizer.NormalizeDocument(doc.Data)
	report := p.scorer.Score(data)

	normalized := doc
	normalized.Data = data

	p.logger.Debug().
		Str("document_id", doc.ID).
		Int("entries", data.EntryCount()).
		Int("issues", len(issues)).
		Float64("confidence", report.Overall).
		Str("recommendation", string(report.Recommendation)).
		Msg("document processed")

	return Result{Document: normalized, Issues: issues, Report: report}
}

// ProcessBatch processes docs with bounded concurrency. Results line up with
// docs by index. On cancellation no further documents start and ctx.Err()
// is returned once running work finishes.
func (p *Processor) ProcessBatch(ctx context.Context, docs []timesheet.Document) ([]Result, error) {
	results := make([]Result, len(docs))
	sem := semaphore.NewWeighted(p.workers)
	var wg sync.WaitGroup

	var scheduleErr error
	for i := range docs {
		if err := ctx.Err(); err != nil {
			scheduleErr = err
			break
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			scheduleErr = err
			break
		}
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			defer sem.Release(1)
			results[index] = p.Process(docs[index])
		}(i)
	}
	wg.Wait()

	if scheduleErr != nil {
		return nil, scheduleErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
