package resummarize

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/docsift/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentIterator_ForEach(t *testing.T) {
	f := setup(t)
	added := f.addDocuments(t, bodies(5)...)
	it := NewDocumentIterator(f.docs, 2)

	var batches [][]core.ID
	err := it.ForEach(context.Background(), 0, func(docs []*core.Document) error {
		ids := make([]core.ID, len(docs))
		for i, d := range docs {
			ids[i] = d.Id
		}
		batches = append(batches, ids)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, [][]core.ID{
		{added[0].Id, added[1].Id},
		{added[2].Id, added[3].Id},
		{added[4].Id},
	}, batches)
}

func TestDocumentIterator_After(t *testing.T) {
	f := setup(t)
	added := f.addDocuments(t, bodies(4)...)
	it := NewDocumentIterator(f.docs, 10)

	remaining, err := it.Remaining(context.Background(), added[1].Id)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, added[2].Id, remaining[0].Id)
	assert.Equal(t, added[3].Id, remaining[1].Id)
}

func TestDocumentIterator_StopsOnError(t *testing.T) {
	f := setup(t)
	f.addDocuments(t, bodies(5)...)
	it := NewDocumentIterator(f.docs, 1)

	boom := errors.New("boom")
	calls := 0
	err := it.ForEach(context.Background(), 0, func([]*core.Document) error {
		calls++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestDocumentIterator_DefaultBatchSize(t *testing.T) {
	it := NewDocumentIterator(nil, 0)
	assert.Equal(t, DefaultBatchSize, it.batchSize)
}
