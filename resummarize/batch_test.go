package resummarize

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/docsift/ai"
	"github.com/poiesic/docsift/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchProcessor_Process(t *testing.T) {
	ctx := context.Background()

	t.Run("summarizes and skips", func(t *testing.T) {
		f := setup(t)
		docs := f.addDocuments(t, "First document. It has text.", "")
		bp := NewBatchProcessor(f.docs, f.summaries, f.summarizer, 2, time.Millisecond)

		result, err := bp.Process(ctx, docs)
		require.NoError(t, err)
		assert.Equal(t, BatchResult{Summarized: 1, Skipped: 1}, result)

		summary, err := f.summaries.GetSummary(ctx, docs[0].Id)
		require.NoError(t, err)
		assert.Equal(t, "doc-1", summary.Title)

		stored, err := f.docs.GetDocument(ctx, docs[0].Id)
		require.NoError(t, err)
		assert.Equal(t, core.StatusCompleted, stored.Status)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		f := setup(t)
		docs := f.addDocuments(t, "Flaky content here.")
		calls := 0
		f.summarizer.WithSummarizeFunc(func(ctx context.Context, content, titleHint string) (*ai.GeneratedSummary, error) {
			calls++
			if calls < 3 {
				return nil, errors.New("service unavailable")
			}
			return ai.ExtractiveSummary(titleHint, content), nil
		})
		bp := NewBatchProcessor(f.docs, f.summaries, f.summarizer, 3, time.Millisecond)

		result, err := bp.Process(ctx, docs)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Summarized)
		assert.Equal(t, 3, calls)
	})

	t.Run("partial failure is counted", func(t *testing.T) {
		f := setup(t)
		docs := f.addDocuments(t, "good one", "bad one")
		f.summarizer.WithSummarizeFunc(func(ctx context.Context, content, titleHint string) (*ai.GeneratedSummary, error) {
			if content == "bad one" {
				return nil, errors.New("model refused")
			}
			return ai.ExtractiveSummary(titleHint, content), nil
		})
		bp := NewBatchProcessor(f.docs, f.summaries, f.summarizer, 2, time.Millisecond)

		result, err := bp.Process(ctx, docs)
		require.NoError(t, err)
		assert.Equal(t, BatchResult{Summarized: 1, Failed: 1}, result)
	})

	t.Run("whole batch failing is an error", func(t *testing.T) {
		f := setup(t)
		docs := f.addDocuments(t, "one", "two")
		f.summarizer.WithSummarizeFunc(func(ctx context.Context, content, titleHint string) (*ai.GeneratedSummary, error) {
			return nil, errors.New("model down")
		})
		bp := NewBatchProcessor(f.docs, f.summaries, f.summarizer, 1, time.Millisecond)

		result, err := bp.Process(ctx, docs)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "model down")
		assert.Equal(t, 2, result.Failed)
	})

	t.Run("empty batch", func(t *testing.T) {
		f := setup(t)
		bp := NewBatchProcessor(f.docs, f.summaries, f.summarizer, 1, time.Millisecond)
		result, err := bp.Process(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, BatchResult{}, result)
	})
}

func TestBatchResult_Add(t *testing.T) {
	total := BatchResult{Summarized: 1}
	total.Add(BatchResult{Summarized: 2, Skipped: 1, Failed: 3})
	assert.Equal(t, BatchResult{Summarized: 3, Skipped: 1, Failed: 3}, total)
}
