package search

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/poiesic/docsift/core"
)

// SessionState is the observable state of a Session.
type SessionState int

const (
	SessionIdle SessionState = iota
	SessionSearching
	SessionResults
	SessionNoResults
)

func (s SessionState) String() string {
	switch s {
	case SessionIdle:
		return "idle"
	case SessionSearching:
		return "searching"
	case SessionResults:
		return "results"
	case SessionNoResults:
		return "no_results"
	}
	return fmt.Sprintf("SessionState(%d)", int(s))
}

// Session holds the search state of one open document: the last results,
// the selected result and whether a search is running. Only one search may
// run per session at a time.
type Session struct {
	searcher *Searcher
	document *core.Document

	mu       sync.Mutex
	state    SessionState
	results  []core.SearchResult
	selected int
}

// NewSession opens a search session over doc.
func (s *Searcher) NewSession(doc *core.Document) *Session {
	return &Session{
		searcher: s,
		document: doc,
		selected: -1,
	}
}

// Document returns the document the session searches.
func (ss *Session) Document() *core.Document {
	return ss.document
}

// Search runs a search over the session's document and stores the results.
// A blank query is ignored and leaves the session unchanged. If ctx ends
// before a semantic search completes the previous results are kept.
func (ss *Session) Search(ctx context.Context, query string, mode core.SearchMode) ([]core.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return ss.Results(), nil
	}

	ss.mu.Lock()
	if ss.state == SessionSearching {
		ss.mu.Unlock()
		return nil, ErrSearchInProgress
	}
	previous := ss.state
	ss.state = SessionSearching
	ss.selected = -1
	ss.mu.Unlock()

	results, err := ss.searcher.Search(ctx, ss.document.Content, ss.document.Title, query, mode)

	ss.mu.Lock()
	defer ss.mu.Unlock()
	if err != nil {
		ss.state = previous
		return nil, err
	}
	ss.results = results
	if len(results) > 0 {
		ss.state = SessionResults
	} else {
		ss.state = SessionNoResults
	}
	return slices.Clone(results), nil
}

// Select marks result i as selected and returns it. Its StartIndex and
// EndIndex locate the span to highlight in the document text.
func (ss *Session) Select(i int) (core.SearchResult, error) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if i < 0 || i >= len(ss.results) {
		return core.SearchResult{}, fmt.Errorf("%w: index %d of %d", ErrNoSuchResult, i, len(ss.results))
	}
	ss.selected = i
	return ss.results[i], nil
}

// Selected returns the selected result, if any.
func (ss *Session) Selected() (core.SearchResult, int, bool) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if ss.selected < 0 {
		return core.SearchResult{}, -1, false
	}
	return ss.results[ss.selected], ss.selected, true
}

// Results returns a copy of the last results.
func (ss *Session) Results() []core.SearchResult {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return slices.Clone(ss.results)
}

// State returns the session state.
func (ss *Session) State() SessionState {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.state
}

// Reset clears results and selection.
func (ss *Session) Reset() {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.state = SessionIdle
	ss.results = nil
	ss.selected = -1
}
