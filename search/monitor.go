package search

import (
	"github.com/poiesic/docsift/core"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string, mode core.SearchMode)
	AfterSegmentation(paragraphs []core.Paragraph)
	// AfterExpansion receives the keywords in keyword mode and the
	// synonym-expanded terms in semantic mode.
	AfterExpansion(terms []string)
	// ParagraphScored is only called in semantic mode.
	ParagraphScored(paragraph core.Paragraph, score float64, matched bool)
	Finish(results []core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ core.SearchMode)                   {}
func (n *noopMonitor) AfterSegmentation(_ []core.Paragraph)                {}
func (n *noopMonitor) AfterExpansion(_ []string)                           {}
func (n *noopMonitor) ParagraphScored(_ core.Paragraph, _ float64, _ bool) {}
func (n *noopMonitor) Finish(_ []core.SearchResult)                        {}
