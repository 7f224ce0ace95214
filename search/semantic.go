package search

import (
	"slices"
	"strings"

	"github.com/poiesic/docsift/core"
)

const (
	// relevanceThreshold is the score a paragraph must exceed to produce a result.
	relevanceThreshold = 0.3

	// maxSemanticResults caps the results of one semantic search.
	maxSemanticResults = 10
)

type candidate struct {
	start int
	end   int
	word  string
}

// SemanticSearch scores every paragraph of text against the query expanded
// with DefaultSynonyms and returns at most one match per paragraph. See
// SynonymTable.Search. It returns immediately; the simulated semantic delay
// is applied only by Searcher.
func SemanticSearch(text, query string) []core.SearchResult {
	return DefaultSynonyms.Search(text, query)
}

// Search runs a semantic search over text using t for query expansion.
//
// A token is related to an expanded term when either contains the other; each
// related pair adds their Similarity to the paragraph's relevance score.
// Paragraphs scoring above 0.3 report their longest related token, the first
// one winning ties. Results are ordered longest paragraph first and capped
// at 10. No latency is applied here; callers that want the simulated delay
// go through Searcher.
func (t *SynonymTable) Search(text, query string) []core.SearchResult {
	return semanticSearch(text, query, t, &noopMonitor{})
}

func semanticSearch(text, query string, table *SynonymTable, monitor SearchMonitor) []core.SearchResult {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	paragraphs := Segment(text)
	monitor.AfterSegmentation(paragraphs)

	terms := table.Expand(query)
	monitor.AfterExpansion(terms)

	var results []core.SearchResult
	for _, p := range paragraphs {
		tokens := Tokenize(foldLower(p.Text))

		var (
			score      float64
			candidates []candidate
		)
		for _, term := range terms {
			for _, tok := range tokens {
				if strings.Contains(tok.Word, term) || strings.Contains(term, tok.Word) {
					score += Similarity(tok.Word, term)
					candidates = append(candidates, candidate{start: tok.Start, end: tok.End, word: tok.Word})
				}
			}
		}

		matched := score > relevanceThreshold && len(candidates) > 0
		monitor.ParagraphScored(p, score, matched)
		if !matched {
			continue
		}

		best := candidates[0]
		for _, c := range candidates[1:] {
			if len(c.word) > len(best.word) {
				best = c
			}
		}

		results = append(results, core.SearchResult{
			MatchedText:   p.Text[best.start:best.end],
			StartIndex:    p.Start + best.start,
			EndIndex:      p.Start + best.end,
			Context:       contextWindow(p.Text, best.start, best.end),
			ParagraphText: p.Text,
		})
	}

	slices.SortStableFunc(results, func(a, b core.SearchResult) int {
		return len(b.ParagraphText) - len(a.ParagraphText)
	})
	if len(results) > maxSemanticResults {
		results = results[:maxSemanticResults]
	}
	return results
}
