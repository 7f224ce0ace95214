// Package mock provides test double implementations of AI service interfaces.
//
// MockSummarizer and MockProvider stand in for ai.Summarizer and
// ai.AIProvider so ingestion and resummarize runs can be tested without a
// model server.
//
// # Usage in Tests
//
//	provider := mock.NewMockProvider()
//	summarizer := provider.(*mock.MockProvider).GetMockSummarizer()
//	summarizer.WithSummarizeFunc(func(ctx context.Context, content, title string) (*ai.GeneratedSummary, error) {
//	    return nil, errors.New("model offline")
//	})
//
//	// Check call counts
//	count := summarizer.CallCount()
//
// # Default Behavior
//
// Without a custom function MockSummarizer returns ai.ExtractiveSummary of the
// content, so results are deterministic and grounded in the input.
package mock
