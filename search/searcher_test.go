package search

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func newTestSearcher(t *testing.T, opts ...Option) *Searcher {
	t.Helper()
	searcher, err := NewSearcher(&fakeDocuments{}, &fakeSummaries{}, append([]Option{WithSemanticLatency(0)}, opts...)...)
	require.NoError(t, err)
	return searcher
}

func TestNewSearcher(t *testing.T) {
	docRepo, summaryRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		summaryRepo.Close()
		docRepo.Close()
		backend.Close()
	}()

	t.Run("valid configuration", func(t *testing.T) {
		searcher, err := NewSearcher(docRepo, summaryRepo)
		require.NoError(t, err)
		assert.NotNil(t, searcher)
		assert.Equal(t, DefaultSemanticLatency, searcher.semanticLatency)
		assert.Equal(t, DefaultSynonyms, searcher.synonyms)
	})

	t.Run("with custom logger", func(t *testing.T) {
		searcher, err := NewSearcher(docRepo, summaryRepo, WithLogger(slog.Default()))
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		searcher, err := NewSearcher(docRepo, summaryRepo, WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("stemming applies to custom table", func(t *testing.T) {
		table := NewSynonymTable(map[string][]string{"cost": {"expense"}})
		searcher, err := NewSearcher(docRepo, summaryRepo, WithStemming(), WithSynonyms(table))
		require.NoError(t, err)
		assert.Contains(t, searcher.synonyms.Expand("findings"), "find")
		assert.Contains(t, searcher.synonyms.Expand("costs"), "expense")
	})

	t.Run("nil document repository", func(t *testing.T) {
		_, err := NewSearcher(nil, summaryRepo)
		assert.Equal(t, ErrDocumentRepositoryRequired, err)
	})

	t.Run("nil summary repository", func(t *testing.T) {
		_, err := NewSearcher(docRepo, nil)
		assert.Equal(t, ErrSummaryRepositoryRequired, err)
	})

	t.Run("invalid options", func(t *testing.T) {
		_, err := NewSearcher(docRepo, summaryRepo, WithSemanticLatency(-time.Second))
		assert.ErrorIs(t, err, ErrInvalidLatency)

		_, err = NewSearcher(docRepo, summaryRepo, WithSynonyms(nil))
		assert.ErrorIs(t, err, ErrSynonymTableRequired)

		_, err = NewSearcher(docRepo, summaryRepo, WithConcurrency(0))
		assert.ErrorIs(t, err, ErrInvalidConcurrency)
	})
}

func TestSearch_Keyword(t *testing.T) {
	searcher := newTestSearcher(t)

	results, err := searcher.Search(context.Background(), scenarioDoc, "Report", "revenue", core.SearchModeKeyword)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 0, results[0].StartIndex)
	assert.Equal(t, 7, results[0].EndIndex)
}

func TestSearch_NoMatchesIsEmptyNotNil(t *testing.T) {
	searcher := newTestSearcher(t)

	results, err := searcher.Search(context.Background(), scenarioDoc, "Report", "to be", core.SearchModeKeyword)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearch_SemanticLatency(t *testing.T) {
	searcher := newTestSearcher(t, WithSemanticLatency(30*time.Millisecond))
	doc := "The review found a crucial flaw in the design."

	start := time.Now()
	results, err := searcher.Search(context.Background(), doc, "Review", "important finding", core.SearchModeSemantic)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	require.Len(t, results, 1)
	assert.Equal(t, "crucial", results[0].MatchedText)

	t.Run("blank query skips the delay", func(t *testing.T) {
		slow := newTestSearcher(t, WithSemanticLatency(time.Hour))
		results, err := slow.Search(context.Background(), doc, "Review", "  ", core.SearchModeSemantic)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestSearch_SemanticCancelled(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	searcher := newTestSearcher(t, WithSemanticLatency(time.Hour))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	results, err := searcher.Search(ctx, scenarioDoc, "Report", "important", core.SearchModeSemantic)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, results)
}

func TestSearch_InvalidMode(t *testing.T) {
	searcher := newTestSearcher(t)

	_, err := searcher.Search(context.Background(), scenarioDoc, "Report", "revenue", core.SearchMode(99))
	assert.ErrorIs(t, err, core.ErrInvalidSearchMode)
}

func TestSearch_RecoversFromPanic(t *testing.T) {
	searcher := newTestSearcher(t)

	results := searcher.guard("Report", core.SearchModeKeyword, func() []core.SearchResult {
		panic("boom")
	})
	assert.Nil(t, results)

	t.Run("panicking monitor", func(t *testing.T) {
		results, err := searcher.SearchWithMonitor(context.Background(), scenarioDoc, "Report", "revenue",
			core.SearchModeKeyword, &panicMonitor{})
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestSearchWithMonitor(t *testing.T) {
	searcher := newTestSearcher(t)
	monitor := &testMonitor{}

	results, err := searcher.SearchWithMonitor(context.Background(), scenarioDoc, "Report", "important revenue",
		core.SearchModeSemantic, monitor)
	require.NoError(t, err)

	assert.True(t, monitor.startCalled)
	assert.True(t, monitor.finishCalled)
	assert.Equal(t, core.SearchModeSemantic, monitor.mode)
	assert.Len(t, monitor.paragraphs, 2)
	assert.Equal(t, 2, monitor.scored)
	assert.Equal(t, []string{"important", "revenue"}, monitor.terms[:2])
	assert.Equal(t, len(results), monitor.finished)
}

func TestSearchDocuments(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	docs := []*core.Document{
		{Id: 3, Name: "c.txt", Title: "c", Content: "Nothing relevant."},
		{Id: 2, Name: "b.txt", Title: "b", Content: "Revenue fell.\n\nRevenue rose."},
		{Id: 1, Name: "a.txt", Title: "a", Content: scenarioDoc},
	}
	searcher, err := NewSearcher(&fakeDocuments{docs: docs}, &fakeSummaries{}, WithSemanticLatency(0), WithConcurrency(2))
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("keyword", func(t *testing.T) {
		hits, err := searcher.SearchDocuments(ctx, "revenue", core.SearchModeKeyword)
		require.NoError(t, err)
		require.Len(t, hits, 2)
		assert.Equal(t, core.ID(2), hits[0].Document.Id)
		assert.Len(t, hits[0].Results, 2)
		assert.Equal(t, core.ID(1), hits[1].Document.Id)
		assert.Len(t, hits[1].Results, 1)
	})

	t.Run("semantic", func(t *testing.T) {
		hits, err := searcher.SearchDocuments(ctx, "relevant", core.SearchModeSemantic)
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, core.ID(3), hits[0].Document.Id)
	})

	t.Run("blank query", func(t *testing.T) {
		hits, err := searcher.SearchDocuments(ctx, " ", core.SearchModeKeyword)
		require.NoError(t, err)
		assert.Empty(t, hits)
	})

	t.Run("storage error", func(t *testing.T) {
		failing, err := NewSearcher(&fakeDocuments{err: assert.AnError}, &fakeSummaries{})
		require.NoError(t, err)
		_, err = failing.SearchDocuments(ctx, "revenue", core.SearchModeKeyword)
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("many documents", func(t *testing.T) {
		many := make([]*core.Document, 50)
		for i := range many {
			many[i] = &core.Document{Id: core.ID(i + 1), Content: fmt.Sprintf("Revenue line %d.", i)}
		}
		s, err := NewSearcher(&fakeDocuments{docs: many}, &fakeSummaries{}, WithConcurrency(3))
		require.NoError(t, err)
		hits, err := s.SearchDocuments(ctx, "revenue", core.SearchModeKeyword)
		require.NoError(t, err)
		require.Len(t, hits, 50)
		for i, h := range hits {
			assert.Equal(t, core.ID(i+1), h.Document.Id)
		}
	})
}

func TestSearchDocuments_WithBadger(t *testing.T) {
	docRepo, summaryRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		summaryRepo.Close()
		docRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	_, err = docRepo.AddDocuments(ctx, &core.Document{
		Name:    "report.txt",
		Title:   "report",
		Content: scenarioDoc,
		Status:  core.StatusCompleted,
	})
	require.NoError(t, err)

	searcher, err := NewSearcher(docRepo, summaryRepo)
	require.NoError(t, err)

	hits, err := searcher.SearchDocuments(ctx, "costs", core.SearchModeKeyword)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "report.txt", hits[0].Document.Name)
	assert.Equal(t, 20, hits[0].Results[0].StartIndex)
}

// testMonitor is a simple test implementation of SearchMonitor
type testMonitor struct {
	startCalled  bool
	finishCalled bool
	mode         core.SearchMode
	paragraphs   []core.Paragraph
	terms        []string
	scored       int
	finished     int
}

func (m *testMonitor) Start(query string, mode core.SearchMode) {
	m.startCalled = true
	m.mode = mode
}

func (m *testMonitor) AfterSegmentation(paragraphs []core.Paragraph) {
	m.paragraphs = paragraphs
}

func (m *testMonitor) AfterExpansion(terms []string) {
	m.terms = terms
}

func (m *testMonitor) ParagraphScored(paragraph core.Paragraph, score float64, matched bool) {
	m.scored++
}

func (m *testMonitor) Finish(results []core.SearchResult) {
	m.finishCalled = true
	m.finished = len(results)
}

// panicMonitor fails in the middle of matching.
type panicMonitor struct {
	noopMonitor
}

func (m *panicMonitor) AfterSegmentation(paragraphs []core.Paragraph) {
	panic("monitor exploded")
}
