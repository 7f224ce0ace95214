package search

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/poiesic/docsift/core"
)

// maxIgnoredTermLength is the longest query term keyword search ignores.
const maxIgnoredTermLength = 2

// KeywordSearch finds every case-insensitive occurrence of the query's
// keywords in text. Keywords are the whitespace separated query terms longer
// than two characters. Occurrences may overlap. Results are ordered by
// StartIndex, ties keeping paragraph then keyword order.
func KeywordSearch(text, query string) []core.SearchResult {
	return keywordSearch(text, query, &noopMonitor{})
}

func keywordSearch(text, query string, monitor SearchMonitor) []core.SearchResult {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	keywords := keywordsOf(query)
	monitor.AfterExpansion(keywords)

	paragraphs := Segment(text)
	monitor.AfterSegmentation(paragraphs)

	var results []core.SearchResult
	for _, p := range paragraphs {
		lower := foldLower(p.Text)
		for _, keyword := range keywords {
			for cursor := 0; cursor <= len(lower); {
				found := strings.Index(lower[cursor:], keyword)
				if found < 0 {
					break
				}
				local := cursor + found
				localEnd := local + len(keyword)
				results = append(results, core.SearchResult{
					MatchedText:   p.Text[local:localEnd],
					StartIndex:    p.Start + local,
					EndIndex:      p.Start + localEnd,
					Context:       contextWindow(p.Text, local, localEnd),
					ParagraphText: p.Text,
				})
				cursor = local + 1
			}
		}
	}

	slices.SortStableFunc(results, func(a, b core.SearchResult) int {
		return a.StartIndex - b.StartIndex
	})
	return results
}

func keywordsOf(query string) []string {
	var keywords []string
	for _, term := range queryTerms(query) {
		if utf8.RuneCountInString(term) > maxIgnoredTermLength {
			keywords = append(keywords, term)
		}
	}
	return keywords
}
