package storage

import (
	"context"
	"time"

	"github.com/poiesic/docsift/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close releases resources held by the repository.
	Close() error
}

// DocumentRepository provides operations for managing documents.
type DocumentRepository interface {
	Repository
	// AddDocuments adds one or more documents to storage.
	// Always assigns a new ID from the sequence.
	// Sets UploadedAt if zero, InsertedAt and UpdatedAt always.
	// Fills ContentHash from Content.
	// Returns the documents with generated IDs and timestamps populated.
	AddDocuments(ctx context.Context, docs ...*core.Document) ([]*core.Document, error)

	// UpdateDocuments updates existing documents.
	// Updates UpdatedAt and ContentHash automatically.
	// Returns ErrNotFound if any document doesn't exist.
	UpdateDocuments(ctx context.Context, docs ...*core.Document) ([]*core.Document, error)

	// UpdateStatus changes the lifecycle status of a single document.
	// Returns ErrNotFound if the document doesn't exist.
	UpdateStatus(ctx context.Context, id core.ID, status core.DocumentStatus) error

	// DeleteDocuments removes documents and their indices by ID.
	// Returns ErrNotFound if any document doesn't exist.
	DeleteDocuments(ctx context.Context, ids ...core.ID) error

	// GetDocument retrieves a single document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id core.ID) (*core.Document, error)

	// GetDocuments retrieves multiple documents by their IDs.
	// Returns only the documents that exist (no error for missing documents).
	GetDocuments(ctx context.Context, ids ...core.ID) ([]*core.Document, error)

	// GetDocumentsByUploadRange retrieves documents uploaded within a time range.
	// Returns documents where start <= UploadedAt < end, ordered by upload time.
	GetDocumentsByUploadRange(ctx context.Context, start, end time.Time) ([]*core.Document, error)

	// GetRecentDocuments retrieves up to limit documents, most recently uploaded first.
	GetRecentDocuments(ctx context.Context, limit int) ([]*core.Document, error)

	// ListDocuments returns every stored document ordered by upload time, newest first.
	ListDocuments(ctx context.Context) ([]*core.Document, error)
}

// SummaryRepository provides operations for managing document summaries.
// A document has at most one summary; saving replaces the previous one.
type SummaryRepository interface {
	Repository
	// SaveSummary stores the summary for its DocumentId.
	// Sets CreatedAt if not already set.
	SaveSummary(ctx context.Context, summary *core.Summary) error

	// GetSummary retrieves the summary of a document.
	// Returns ErrNotFound if the document has no summary.
	GetSummary(ctx context.Context, documentID core.ID) (*core.Summary, error)

	// GetSummaries retrieves the summaries that exist for the given documents,
	// keyed by document ID.
	GetSummaries(ctx context.Context, documentIDs ...core.ID) (map[core.ID]*core.Summary, error)

	// DeleteSummary removes the summary of a document. Missing summaries are not an error.
	DeleteSummary(ctx context.Context, documentID core.ID) error
}

// CheckpointRepository persists progress markers for batch processors.
type CheckpointRepository interface {
	// SaveCheckpoint stores the checkpoint under its ProcessorType.
	// Sets UpdatedAt.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// LoadCheckpoint returns the checkpoint for a processor type.
	// Returns nil, nil if no checkpoint exists.
	LoadCheckpoint(ctx context.Context, processorType string) (*core.Checkpoint, error)

	// ClearCheckpoint removes the checkpoint for a processor type.
	ClearCheckpoint(ctx context.Context, processorType string) error
}
