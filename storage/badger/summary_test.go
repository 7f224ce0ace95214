package badger

import (
	"context"
	"testing"

	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryLifecycle(t *testing.T) {
	_, summaryRepo := newTestRepositories(t)
	ctx := context.Background()

	summary := &core.Summary{
		DocumentId:  core.ID(7),
		Title:       "Report",
		KeyPoints:   []string{"Revenue grew fast."},
		WordCount:   4,
		ReadingTime: "1 min",
		Sentiment:   core.SentimentPositive,
		Categories:  []string{"Finance"},
		FullSummary: "Revenue grew fast.",
	}

	require.NoError(t, summaryRepo.SaveSummary(ctx, summary))
	assert.False(t, summary.CreatedAt.IsZero())

	retrieved, err := summaryRepo.GetSummary(ctx, core.ID(7))
	require.NoError(t, err)
	assert.Equal(t, "Report", retrieved.Title)
	assert.Equal(t, []string{"Revenue grew fast."}, retrieved.KeyPoints)

	t.Run("save replaces", func(t *testing.T) {
		replacement := *summary
		replacement.Sentiment = core.SentimentNegative
		require.NoError(t, summaryRepo.SaveSummary(ctx, &replacement))

		retrieved, err := summaryRepo.GetSummary(ctx, core.ID(7))
		require.NoError(t, err)
		assert.Equal(t, core.SentimentNegative, retrieved.Sentiment)
	})

	t.Run("batch lookup skips missing", func(t *testing.T) {
		summaries, err := summaryRepo.GetSummaries(ctx, core.ID(7), core.ID(8))
		require.NoError(t, err)
		assert.Len(t, summaries, 1)
		assert.Contains(t, summaries, core.ID(7))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, summaryRepo.DeleteSummary(ctx, core.ID(7)))
		_, err := summaryRepo.GetSummary(ctx, core.ID(7))
		assert.ErrorIs(t, err, storage.ErrNotFound)

		// Deleting again is not an error
		assert.NoError(t, summaryRepo.DeleteSummary(ctx, core.ID(7)))
	})
}

func TestSaveSummary_Invalid(t *testing.T) {
	_, summaryRepo := newTestRepositories(t)

	err := summaryRepo.SaveSummary(context.Background(), &core.Summary{Sentiment: core.SentimentNeutral})
	assert.ErrorIs(t, err, core.ErrMissingDocumentID)
}

func TestCheckpointRepository(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	repo := NewCheckpointRepository(backend)
	ctx := context.Background()

	loaded, err := repo.LoadCheckpoint(ctx, "resummarize")
	require.NoError(t, err)
	assert.Nil(t, loaded)

	require.NoError(t, repo.SaveCheckpoint(ctx, &core.Checkpoint{ProcessorType: "resummarize", LastID: 12}))

	loaded, err = repo.LoadCheckpoint(ctx, "resummarize")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, core.ID(12), loaded.LastID)
	assert.False(t, loaded.UpdatedAt.IsZero())

	require.NoError(t, repo.ClearCheckpoint(ctx, "resummarize"))
	loaded, err = repo.LoadCheckpoint(ctx, "resummarize")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
