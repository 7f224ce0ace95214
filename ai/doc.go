// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package ai provides abstractions for the AI services used by docsift.
//
// The only AI operation docsift needs is summarization: turning the text of
// an uploaded document into a title, a handful of key points, a short prose
// summary and some light metadata (word count, reading time, sentiment,
// categories).
//
// # Interfaces
//
//   - Summarizer: Produces a GeneratedSummary from document text
//   - AIProvider: Aggregates AI services for convenient initialization
//
// # Grounding
//
// Model output is never trusted as is. Each key point must either carry a
// citation whose quote occurs in the document, or share enough of its longer
// words with the document (see GroundKeyPoints). When too few points survive,
// implementations fall back to ExtractiveSummary, which only copies leading
// sentences of the document. VerbatimSummary skips the model altogether.
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// Public constructors (openai.NewProvider, openai.NewSummarizer) return
// interface types. Test constructors such as mock.NewMockSummarizer return
// concrete types so tests can inject behavior and inspect call counts.
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithModel("qwen2.5:3b"))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	summary, err := provider.Summarizer().Summarize(ctx, text, "Quarterly report")
package ai
