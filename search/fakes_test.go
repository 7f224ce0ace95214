package search

import (
	"context"

	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/storage"
)

// fakeDocuments serves a fixed document list. Unused methods panic through
// the nil embedded interface.
type fakeDocuments struct {
	storage.DocumentRepository
	docs []*core.Document
	err  error
}

func (f *fakeDocuments) ListDocuments(ctx context.Context) ([]*core.Document, error) {
	return f.docs, f.err
}

type fakeSummaries struct {
	storage.SummaryRepository
	summaries map[core.ID]*core.Summary
}

func (f *fakeSummaries) GetSummaries(ctx context.Context, ids ...core.ID) (map[core.ID]*core.Summary, error) {
	out := make(map[core.ID]*core.Summary)
	for _, id := range ids {
		if s, ok := f.summaries[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}
