package ai

import "context"

// Summarizer produces a structured summary of a document's text.
// Implementations must be thread-safe for concurrent use.
type Summarizer interface {
	// Summarize analyzes content and returns its summary. titleHint is the
	// document's own title, used when the summary has none.
	// Implementations degrade to an extractive summary rather than fail when
	// the model output is unusable; an error means no summary could be made.
	Summarize(ctx context.Context, content, titleHint string) (*GeneratedSummary, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
type AIProvider interface {
	// Summarizer returns the summarization service.
	// The returned Summarizer is safe for concurrent use.
	Summarizer() Summarizer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
