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


package ingestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/docsift/ai"
	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/storage"
)

// processor is an internal interface for processing stored documents.
type processor interface {
	// process handles the documents identified by the given IDs.
	process(ctx context.Context, ids ...core.ID) error
}

// summaryProcessor summarizes documents and moves them through their lifecycle:
// processing while the summary is generated, then completed or failed.
type summaryProcessor struct {
	documents  storage.DocumentRepository
	summaries  storage.SummaryRepository
	summarizer ai.Summarizer
	logger     *slog.Logger
}

var _ processor = (*summaryProcessor)(nil)

func newSummaryProcessor(documents storage.DocumentRepository, summaries storage.SummaryRepository,
	summarizer ai.Summarizer, logger *slog.Logger) (*summaryProcessor, error) {
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if summaries == nil {
		return nil, ErrSummaryRepositoryRequired
	}
	if summarizer == nil {
		return nil, fmt.Errorf("summarizer required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &summaryProcessor{
		documents:  documents,
		summaries:  summaries,
		summarizer: summarizer,
		logger:     logger.With("processor", "summaries"),
	}, nil
}

// process summarizes each document in turn. A failing document is marked
// failed and the rest are still processed; the first error is returned.
func (sp *summaryProcessor) process(ctx context.Context, ids ...core.ID) error {
	sp.logger.Info("summarizing documents", "documents", len(ids))

	var firstErr error
	for _, id := range ids {
		if err := sp.processOne(ctx, id); err != nil {
			sp.logger.Error("error summarizing document", "id", id, "err", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (sp *summaryProcessor) processOne(ctx context.Context, id core.ID) error {
	doc, err := sp.documents.GetDocument(ctx, id)
	if err != nil {
		return err
	}

	if err := sp.documents.UpdateStatus(ctx, id, core.StatusProcessing); err != nil {
		return err
	}

	summary, err := sp.summarize(ctx, doc)
	if err != nil {
		sp.markFailed(id)
		return err
	}

	if err := sp.summaries.SaveSummary(ctx, summary); err != nil {
		sp.markFailed(id)
		return err
	}

	return sp.documents.UpdateStatus(ctx, id, core.StatusCompleted)
}

func (sp *summaryProcessor) summarize(ctx context.Context, doc *core.Document) (*core.Summary, error) {
	if doc.Content == "" {
		return nil, ErrNoText
	}

	generated, err := sp.summarizer.Summarize(ctx, doc.Content, TitleHint(doc.Name))
	if err != nil {
		return nil, fmt.Errorf("summarizing %q: %w", doc.Name, err)
	}
	return ToSummary(doc.Id, generated), nil
}

// markFailed records a failure. It uses a fresh context so a cancelled
// request still leaves the document in a final state.
func (sp *summaryProcessor) markFailed(id core.ID) {
	if err := sp.documents.UpdateStatus(context.Background(), id, core.StatusFailed); err != nil {
		sp.logger.Error("error marking document failed", "id", id, "err", err)
	}
}

// ToSummary converts a generated summary into the stored form for a document.
func ToSummary(documentID core.ID, g *ai.GeneratedSummary) *core.Summary {
	return &core.Summary{
		DocumentId:  documentID,
		Title:       g.Title,
		KeyPoints:   g.KeyPoints,
		WordCount:   g.WordCount,
		ReadingTime: g.ReadingTime,
		Sentiment:   core.Sentiment(ai.NormalizeSentiment(g.Sentiment)),
		Categories:  g.Categories,
		FullSummary: g.FullSummary,
	}
}
