package mock

import (
	"context"
	"sync"

	"github.com/poiesic/docsift/ai"
)

// MockSummarizer is a test double for ai.Summarizer.
// It allows custom behavior injection via function fields and is safe for
// concurrent use.
type MockSummarizer struct {
	// SummarizeFunc is called by Summarize if set.
	// If nil, the extractive summary of the content is returned.
	SummarizeFunc func(ctx context.Context, content, titleHint string) (*ai.GeneratedSummary, error)

	mu        sync.Mutex
	callCount int
	contents  []string
}

// NewMockSummarizer creates a mock summarizer with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockSummarizer().
func NewMockSummarizer() *MockSummarizer {
	return &MockSummarizer{}
}

// WithSummarizeFunc sets custom summarize behavior and returns the mock.
func (m *MockSummarizer) WithSummarizeFunc(fn func(ctx context.Context, content, titleHint string) (*ai.GeneratedSummary, error)) *MockSummarizer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SummarizeFunc = fn
	return m
}

// Summarize records the call and returns a summary.
func (m *MockSummarizer) Summarize(ctx context.Context, content, titleHint string) (*ai.GeneratedSummary, error) {
	m.mu.Lock()
	m.callCount++
	m.contents = append(m.contents, content)
	fn := m.SummarizeFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, content, titleHint)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ai.ExtractiveSummary(titleHint, content), nil
}

// CallCount returns the number of times Summarize was called.
func (m *MockSummarizer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Contents returns the content passed to each Summarize call, in call order.
func (m *MockSummarizer) Contents() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.contents...)
}

// Reset clears the call history and custom functions.
func (m *MockSummarizer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.contents = nil
	m.SummarizeFunc = nil
}
