package resummarize

import (
	"context"
	"slices"

	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/storage"
)

const (
	// DefaultBatchSize is the default number of documents handled per batch
	DefaultBatchSize = 20
)

// DocumentIterator walks stored documents in ascending ID order, in batches.
type DocumentIterator struct {
	repo      storage.DocumentRepository
	batchSize int
}

// NewDocumentIterator creates a new document iterator.
// batchSize: number of documents per batch (DefaultBatchSize if <= 0)
func NewDocumentIterator(repo storage.DocumentRepository, batchSize int) *DocumentIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &DocumentIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// Remaining returns the documents with an ID greater than after, in ID order.
func (it *DocumentIterator) Remaining(ctx context.Context, after core.ID) ([]*core.Document, error) {
	docs, err := it.repo.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}

	docs = slices.DeleteFunc(docs, func(d *core.Document) bool {
		return d.Id <= after
	})
	slices.SortFunc(docs, func(a, b *core.Document) int {
		switch {
		case a.Id < b.Id:
			return -1
		case a.Id > b.Id:
			return 1
		}
		return 0
	})
	return docs, nil
}

// ForEach calls fn for each batch of documents with an ID greater than after.
// Iteration stops on the first error from fn.
// Context cancellation is checked between batches.
func (it *DocumentIterator) ForEach(ctx context.Context, after core.ID, fn func([]*core.Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	docs, err := it.Remaining(ctx, after)
	if err != nil {
		return err
	}

	for batch := range slices.Chunk(docs, it.batchSize) {
		if err := fn(batch); err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}
	}

	return nil
}
