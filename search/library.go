package search

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/poiesic/docsift/core"
)

// LibraryFilter narrows FindDocuments results.
type LibraryFilter string

const (
	FilterPDF       LibraryFilter = "pdf"
	FilterDOCX      LibraryFilter = "docx"
	FilterTXT       LibraryFilter = "txt"
	FilterProcessed LibraryFilter = "processed"
	FilterRecent    LibraryFilter = "recent"
)

// recentWindow is how far back FilterRecent reaches.
const recentWindow = 7 * 24 * time.Hour

// ParseLibraryFilter converts a filter name into a LibraryFilter.
func ParseLibraryFilter(s string) (LibraryFilter, error) {
	switch f := LibraryFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case FilterPDF, FilterDOCX, FilterTXT, FilterProcessed, FilterRecent:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFilter, s)
}

func (f LibraryFilter) matches(doc *core.Document, now time.Time) bool {
	switch f {
	case FilterPDF, FilterDOCX, FilterTXT:
		return strings.TrimPrefix(strings.ToLower(filepath.Ext(doc.Name)), ".") == string(f)
	case FilterProcessed:
		return doc.Status == core.StatusCompleted
	case FilterRecent:
		return doc.UploadedAt.After(now.Add(-recentWindow))
	}
	return false
}

// FindDocuments searches the document library. A document matches when the
// trimmed, lowercased query is empty or occurs in its name, its summary or
// one of its key points. When filters are given a document must also satisfy
// at least one of them. Results are ordered newest upload first.
func (s *Searcher) FindDocuments(ctx context.Context, query string, filters ...LibraryFilter) ([]*core.Document, error) {
	docs, err := s.documents.ListDocuments(ctx)
	if err != nil {
		s.logger.Error("error listing documents", "err", err)
		return nil, err
	}

	ids := make([]core.ID, len(docs))
	for i, doc := range docs {
		ids[i] = doc.Id
	}
	summaries, err := s.summaries.GetSummaries(ctx, ids...)
	if err != nil {
		s.logger.Error("error retrieving summaries", "documentCount", len(ids), "err", err)
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	now := s.now()
	results := make([]*core.Document, 0, len(docs))
	for _, doc := range docs {
		if q != "" && !libraryTextMatches(doc, summaries[doc.Id], q) {
			continue
		}
		if len(filters) > 0 && !anyFilterMatches(filters, doc, now) {
			continue
		}
		results = append(results, doc)
	}
	return results, nil
}

func libraryTextMatches(doc *core.Document, summary *core.Summary, q string) bool {
	if strings.Contains(strings.ToLower(doc.Name), q) {
		return true
	}
	if summary == nil {
		return false
	}
	if strings.Contains(strings.ToLower(summary.FullSummary), q) {
		return true
	}
	for _, point := range summary.KeyPoints {
		if strings.Contains(strings.ToLower(point), q) {
			return true
		}
	}
	return false
}

func anyFilterMatches(filters []LibraryFilter, doc *core.Document, now time.Time) bool {
	for _, f := range filters {
		if f.matches(doc, now) {
			return true
		}
	}
	return false
}
