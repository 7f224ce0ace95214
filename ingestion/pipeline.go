package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/docsift/ai"
	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/storage"
)

const releaseTimeout = 5 * time.Second

// Pipeline orchestrates the ingestion of documents: text extraction, storage
// and asynchronous summarization on a worker pool.
type Pipeline struct {
	documents   storage.DocumentRepository
	summaries   storage.SummaryRepository
	pool        *ants.Pool
	summaryProc processor
	maxChars    int
	pending     sync.WaitGroup
	logger      *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent summarization.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithMaxChars sets the cap on extracted text.
// Default is DefaultMaxChars.
func WithMaxChars(n int) Option {
	return func(p *Pipeline) error {
		if n < 1 {
			return fmt.Errorf("max chars must be positive, got %d", n)
		}
		p.maxChars = n
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	documents storage.DocumentRepository,
	summaries storage.SummaryRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Pipeline, error) {
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if summaries == nil {
		return nil, ErrSummaryRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	// Create pipeline with defaults
	p := &Pipeline{
		documents: documents,
		summaries: summaries,
		pool:      pool,
		maxChars:  DefaultMaxChars,
		logger:    slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}
	p.logger = p.logger.With("component", "ingestion")

	// Create processor after options are applied (so it gets the final logger)
	summaryProc, err := newSummaryProcessor(documents, summaries, provider.Summarizer(), p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}
	p.summaryProc = summaryProc

	return p, nil
}

// IngestOptions holds optional parameters for ingestion.
type IngestOptions struct {
	ContentType string    // MIME type (guessed from the name if empty)
	UploadedAt  time.Time // Upload timestamp (uses current time if zero)
}

// Ingest stores a file as a new document and summarizes it asynchronously.
//
// The document is returned as stored, in the uploading state. When no text
// can be extracted it is stored as failed and ErrNoText is returned along
// with it. When the latest document stored under the same name has the
// same text and did not fail, nothing is stored and that document is
// returned with ErrUnchanged. Errors during async processing are logged and
// leave the document failed; they do not fail the ingestion.
func (p *Pipeline) Ingest(ctx context.Context, name string, data []byte, opts *IngestOptions) (*core.Document, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if opts == nil {
		opts = &IngestOptions{}
	}

	contentType := opts.ContentType
	if contentType == "" {
		contentType = ContentTypeOf(name)
	}
	uploadedAt := opts.UploadedAt
	if uploadedAt.IsZero() {
		uploadedAt = time.Now().UTC()
	}

	text, extractErr := ExtractText(data, contentType, name, p.maxChars)
	if extractErr == nil {
		existing, err := p.latestByName(ctx, filepath.Base(name))
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.Status != core.StatusFailed &&
			existing.ContentHash == core.ContentHash(text) {
			p.logger.Debug("document unchanged", "name", existing.Name, "id", existing.Id)
			return existing, ErrUnchanged
		}
	}

	doc := &core.Document{
		Name:        filepath.Base(name),
		Title:       TitleHint(name),
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
		Content:     text,
		Status:      core.StatusUploading,
		UploadedAt:  uploadedAt,
	}
	if extractErr != nil {
		doc.Status = core.StatusFailed
	}

	added, err := p.documents.AddDocuments(ctx, doc)
	if err != nil {
		return nil, err
	}
	doc = added[0]

	if extractErr != nil {
		p.logger.Warn("no text extracted", "name", doc.Name, "id", doc.Id)
		return doc, extractErr
	}

	if err := p.Submit(doc.Id); err != nil {
		return doc, err
	}
	return doc, nil
}

// latestByName returns the most recently uploaded document with the given
// name, or nil if there is none.
func (p *Pipeline) latestByName(ctx context.Context, name string) (*core.Document, error) {
	docs, err := p.documents.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}
	// ListDocuments is ordered newest first.
	for _, doc := range docs {
		if doc.Name == name {
			return doc, nil
		}
	}
	return nil, nil
}

// IngestFile reads a file from disk and ingests it.
func (p *Pipeline) IngestFile(ctx context.Context, path string) (*core.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return p.Ingest(ctx, path, data, nil)
}

// Submit queues stored documents for asynchronous summarization.
func (p *Pipeline) Submit(ids ...core.ID) error {
	if len(ids) == 0 {
		return nil
	}

	p.pending.Add(1)
	err := p.pool.Submit(func() {
		defer p.pending.Done()
		if err := p.summaryProc.process(context.Background(), ids...); err != nil {
			p.logger.Error("error processing summaries", "err", err)
		}
	})
	if err != nil {
		p.pending.Done()
		return fmt.Errorf("submitting documents: %w", err)
	}
	return nil
}

// Process summarizes stored documents synchronously.
func (p *Pipeline) Process(ctx context.Context, ids ...core.ID) error {
	return p.summaryProc.process(ctx, ids...)
}

// Wait blocks until every submitted document has been processed.
func (p *Pipeline) Wait() {
	p.pending.Wait()
}

// Running returns the number of workers currently busy.
func (p *Pipeline) Running() int {
	return p.pool.Running()
}

// Release waits for queued work and releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	p.pending.Wait()
	if p.pool != nil {
		if err := p.pool.ReleaseTimeout(releaseTimeout); err != nil {
			p.logger.Warn("worker pool did not stop in time", "err", err)
		}
	}
}
