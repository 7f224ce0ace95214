package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/storage"
)

// SummaryRepository implements storage.SummaryRepository for BadgerDB.
type SummaryRepository struct {
	backend *Backend
}

var _ storage.SummaryRepository = (*SummaryRepository)(nil)

// NewSummaryRepository creates a new SummaryRepository.
func NewSummaryRepository(backend *Backend) *SummaryRepository {
	return &SummaryRepository{
		backend: backend,
	}
}

// Close is a no-op; the backend owns the database handle.
func (r *SummaryRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *SummaryRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// SaveSummary stores or replaces the summary of a document.
func (r *SummaryRepository) SaveSummary(ctx context.Context, summary *core.Summary) error {
	if err := core.ValidateSummary(summary); err != nil {
		return err
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if summary.CreatedAt.IsZero() {
			summary.CreatedAt = time.Now().UTC()
		}
		if err := tx.Set(makeSummaryKey(summary.DocumentId), storage.MarshalSummary(summary)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetSummary retrieves the summary of a document.
func (r *SummaryRepository) GetSummary(ctx context.Context, documentID core.ID) (*core.Summary, error) {
	var result *core.Summary
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readSummary(tx, makeSummaryKey(documentID))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetSummaries retrieves the summaries that exist for the given documents.
func (r *SummaryRepository) GetSummaries(ctx context.Context, documentIDs ...core.ID) (map[core.ID]*core.Summary, error) {
	result := make(map[core.ID]*core.Summary, len(documentIDs))
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range documentIDs {
			summary, err := readSummary(tx, makeSummaryKey(id))
			if err != nil {
				return err
			}
			if summary != nil {
				result[id] = summary
			}
		}
		return nil
	}, false)
	return result, err
}

// DeleteSummary removes the summary of a document if one exists.
func (r *SummaryRepository) DeleteSummary(ctx context.Context, documentID core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeSummaryKey(documentID)
		exists, err := itemExists(tx, key)
		if err != nil {
			return err
		}
		if !exists {
			return nil
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// readSummary reads a summary from the transaction.
func readSummary(tx *badger.Txn, key []byte) (*core.Summary, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var summary *core.Summary
	err = item.Value(func(val []byte) error {
		var err error
		summary, err = storage.UnmarshalSummary(val)
		return err
	})
	return summary, err
}
