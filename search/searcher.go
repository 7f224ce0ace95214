package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/storage"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultSemanticLatency is the simulated scoring delay of semantic mode.
	DefaultSemanticLatency = 1500 * time.Millisecond

	// DefaultConcurrency bounds how many documents are searched at once.
	DefaultConcurrency = 4
)

// Searcher coordinates in-document searches and searches across the
// documents held in storage. It is safe for concurrent use.
type Searcher struct {
	documents       storage.DocumentRepository
	summaries       storage.SummaryRepository
	synonyms        *SynonymTable
	stem            bool
	semanticLatency time.Duration
	concurrency     int
	now             func() time.Time
	logger          *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithSemanticLatency sets the delay applied before semantic scoring.
// Default is DefaultSemanticLatency; zero disables the delay.
func WithSemanticLatency(d time.Duration) Option {
	return func(s *Searcher) error {
		if d < 0 {
			return ErrInvalidLatency
		}
		s.semanticLatency = d
		return nil
	}
}

// WithSynonyms replaces DefaultSynonyms for semantic expansion.
func WithSynonyms(table *SynonymTable) Option {
	return func(s *Searcher) error {
		if table == nil {
			return ErrSynonymTableRequired
		}
		s.synonyms = table
		return nil
	}
}

// WithStemming adds Porter2 stems of the query terms to semantic expansion.
func WithStemming() Option {
	return func(s *Searcher) error {
		s.stem = true
		return nil
	}
}

// WithConcurrency sets how many documents SearchDocuments searches at once.
// Default is DefaultConcurrency.
func WithConcurrency(n int) Option {
	return func(s *Searcher) error {
		if n < 1 {
			return ErrInvalidConcurrency
		}
		s.concurrency = n
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	documents storage.DocumentRepository,
	summaries storage.SummaryRepository,
	opts ...Option,
) (*Searcher, error) {
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if summaries == nil {
		return nil, ErrSummaryRepositoryRequired
	}

	s := &Searcher{
		documents:       documents,
		summaries:       summaries,
		synonyms:        DefaultSynonyms,
		semanticLatency: DefaultSemanticLatency,
		concurrency:     DefaultConcurrency,
		now:             time.Now,
		logger:          slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if s.stem {
		s.synonyms = s.synonyms.WithStemming()
	}
	s.logger = s.logger.With("component", "searcher")

	return s, nil
}

// Search finds query in a document's text using the given mode.
// title is only used for diagnostics.
func (s *Searcher) Search(ctx context.Context, text, title, query string, mode core.SearchMode) ([]core.SearchResult, error) {
	return s.SearchWithMonitor(ctx, text, title, query, mode, nil)
}

// SearchWithMonitor finds query in a document's text with monitoring.
// The monitor receives callbacks at each stage of the search process.
//
// Keyword mode runs synchronously. Semantic mode first waits for the
// configured latency; the only error it returns is the context's error when
// ctx ends during that wait. A failure inside matching is logged and yields
// no results.
func (s *Searcher) SearchWithMonitor(ctx context.Context, text, title, query string, mode core.SearchMode, monitor SearchMonitor) ([]core.SearchResult, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query, mode)

	var results []core.SearchResult
	switch mode {
	case core.SearchModeKeyword:
		results = s.guard(title, mode, func() []core.SearchResult {
			return keywordSearch(text, query, monitor)
		})
	case core.SearchModeSemantic:
		if strings.TrimSpace(query) != "" {
			if err := s.wait(ctx); err != nil {
				return nil, err
			}
		}
		results = s.guard(title, mode, func() []core.SearchResult {
			return semanticSearch(text, query, s.synonyms, monitor)
		})
	default:
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidSearchMode, mode)
	}

	if results == nil {
		results = []core.SearchResult{}
	}
	s.logger.Debug("search finished", "title", title, "mode", mode, "hits", len(results))
	monitor.Finish(results)
	return results, nil
}

// SearchDocuments runs an in-document search over every stored document and
// returns the documents with at least one match, newest upload first.
// The semantic latency is applied once for the whole batch.
func (s *Searcher) SearchDocuments(ctx context.Context, query string, mode core.SearchMode) ([]core.DocumentHits, error) {
	if mode != core.SearchModeKeyword && mode != core.SearchModeSemantic {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidSearchMode, mode)
	}
	if strings.TrimSpace(query) == "" {
		return []core.DocumentHits{}, nil
	}

	docs, err := s.documents.ListDocuments(ctx)
	if err != nil {
		s.logger.Error("error listing documents", "err", err)
		return nil, err
	}

	if mode == core.SearchModeSemantic {
		if err := s.wait(ctx); err != nil {
			return nil, err
		}
	}

	perDoc := make([][]core.SearchResult, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, doc := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			perDoc[i] = s.guard(doc.Title, mode, func() []core.SearchResult {
				if mode == core.SearchModeKeyword {
					return keywordSearch(doc.Content, query, &noopMonitor{})
				}
				return semanticSearch(doc.Content, query, s.synonyms, &noopMonitor{})
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	hits := make([]core.DocumentHits, 0, len(docs))
	for i, doc := range docs {
		if len(perDoc[i]) > 0 {
			hits = append(hits, core.DocumentHits{Document: doc, Results: perDoc[i]})
		}
	}
	s.logger.Debug("document search finished", "mode", mode, "documents", len(docs), "matched", len(hits))
	return hits, nil
}

// guard runs fn and turns a panic into an empty result.
func (s *Searcher) guard(title string, mode core.SearchMode, fn func() []core.SearchResult) (results []core.SearchResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("search failed, reporting no matches", "title", title, "mode", mode, "panic", r)
			results = nil
		}
	}()
	return fn()
}

// wait blocks for the semantic latency or until ctx is done.
func (s *Searcher) wait(ctx context.Context) error {
	if s.semanticLatency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.semanticLatency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
