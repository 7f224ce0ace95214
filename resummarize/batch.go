package resummarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/docsift/ai"
	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/ingestion"
	"github.com/poiesic/docsift/storage"
)

// BatchResult counts what happened to the documents of a batch.
type BatchResult struct {
	Summarized int
	Skipped    int // documents without text
	Failed     int
}

// Add accumulates another batch's counts.
func (r *BatchResult) Add(other BatchResult) {
	r.Summarized += other.Summarized
	r.Skipped += other.Skipped
	r.Failed += other.Failed
}

// BatchProcessor regenerates the summaries of a batch of documents.
type BatchProcessor struct {
	documents      storage.DocumentRepository
	summaries      storage.SummaryRepository
	summarizer     ai.Summarizer
	maxRetries     int
	retryBaseDelay time.Duration
	logger         *slog.Logger
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of attempts per summary request
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(documents storage.DocumentRepository, summaries storage.SummaryRepository,
	summarizer ai.Summarizer, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		documents:      documents,
		summaries:      summaries,
		summarizer:     summarizer,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
		logger:         slog.Default().With("component", "resummarize"),
	}
}

// Process summarizes each document of the batch and stores the result.
// A document that still fails after retries is counted and skipped; an
// error is returned only when storage fails, the context ends, or every
// document in the batch failed.
func (bp *BatchProcessor) Process(ctx context.Context, docs []*core.Document) (BatchResult, error) {
	var result BatchResult
	if len(docs) == 0 {
		return result, nil
	}

	var lastErr error
	for _, doc := range docs {
		if doc.Content == "" {
			result.Skipped++
			continue
		}

		generated, err := Retry(ctx, bp.maxRetries, bp.retryBaseDelay,
			func(ctx context.Context) (*ai.GeneratedSummary, error) {
				return bp.summarizer.Summarize(ctx, doc.Content, ingestion.TitleHint(doc.Name))
			})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result, ctxErr
			}
			bp.logger.Error("failed to summarize document", "id", doc.Id, "name", doc.Name, "err", err)
			result.Failed++
			lastErr = err
			continue
		}

		if err := bp.summaries.SaveSummary(ctx, ingestion.ToSummary(doc.Id, generated)); err != nil {
			return result, fmt.Errorf("failed to save summary for document %d: %w", doc.Id, err)
		}
		if doc.Status != core.StatusCompleted {
			if err := bp.documents.UpdateStatus(ctx, doc.Id, core.StatusCompleted); err != nil && !errors.Is(err, storage.ErrNotFound) {
				return result, fmt.Errorf("failed to update document %d: %w", doc.Id, err)
			}
		}
		result.Summarized++
	}

	if result.Failed > 0 && result.Summarized == 0 {
		return result, fmt.Errorf("failed to summarize any document in batch after %d attempts: %w", bp.maxRetries, lastErr)
	}
	return result, nil
}
