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


package resummarize

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/poiesic/docsift/ai"
	"github.com/poiesic/docsift/core"
	"github.com/poiesic/docsift/storage"
)

// ProcessorType names the checkpoint written by a resummarize run.
const ProcessorType = "resummarize"

// Config holds configuration for the resummarize operation.
type Config struct {
	// BatchSize is the number of documents to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of documents)
	ReportInterval int

	// MaxRetries is the maximum number of attempts per summary request
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration

	// Resume continues after the last checkpointed document instead of
	// starting from the first one.
	Resume bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      DefaultBatchSize,
		ReportInterval: 10,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Result summarizes a completed or interrupted run.
type Result struct {
	BatchResult
	Total     int     // documents the run set out to process
	ResumedAt core.ID // checkpoint the run started after, 0 for a fresh run
	LastID    core.ID // last document of the last finished batch
	Elapsed   time.Duration
}

// Resummarizer regenerates the summaries of all stored documents.
type Resummarizer struct {
	documents   storage.DocumentRepository
	checkpoints storage.CheckpointRepository
	config      *Config
	progress    io.Writer
	processor   *BatchProcessor
	iterator    *DocumentIterator
}

// NewResummarizer creates a new resummarizer.
// checkpoints may be nil, in which case runs cannot be resumed.
// progress: where to write progress output (typically os.Stderr)
func NewResummarizer(
	documents storage.DocumentRepository,
	summaries storage.SummaryRepository,
	checkpoints storage.CheckpointRepository,
	summarizer ai.Summarizer,
	config *Config,
	progress io.Writer,
) (*Resummarizer, error) {
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if summaries == nil {
		return nil, ErrSummaryRepositoryRequired
	}
	if summarizer == nil {
		return nil, ErrSummarizerRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if config.MaxRetries <= 0 {
		return nil, ErrInvalidMaxAttempts
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Resummarizer{
		documents:   documents,
		checkpoints: checkpoints,
		config:      config,
		progress:    progress,
		processor:   NewBatchProcessor(documents, summaries, summarizer, config.MaxRetries, config.RetryDelay),
		iterator:    NewDocumentIterator(documents, config.BatchSize),
	}, nil
}

// Run regenerates summaries batch by batch, saving a checkpoint after each
// batch. A run that finishes clears the checkpoint; an interrupted run
// leaves it in place for a later Resume.
func (r *Resummarizer) Run(ctx context.Context) (*Result, error) {
	result := &Result{}

	if r.config.Resume && r.checkpoints != nil {
		cp, err := r.checkpoints.LoadCheckpoint(ctx, ProcessorType)
		if err != nil {
			return result, fmt.Errorf("failed to load checkpoint: %w", err)
		}
		if cp != nil {
			result.ResumedAt = cp.LastID
		}
	}

	remaining, err := r.iterator.Remaining(ctx, result.ResumedAt)
	if err != nil {
		return result, fmt.Errorf("failed to query documents: %w", err)
	}

	result.Total = len(remaining)
	if result.Total == 0 {
		fmt.Fprintf(r.progress, "No documents to summarize (0 documents)\n")
		return result, r.clearCheckpoint(ctx)
	}

	if result.ResumedAt != 0 {
		fmt.Fprintf(r.progress, "Resuming after document %d\n", result.ResumedAt)
	}
	fmt.Fprintf(r.progress, "Starting summarization of %d documents (batch size: %d)\n",
		result.Total, r.iterator.batchSize)

	tracker := NewProgressTracker(r.progress, result.Total, r.config.ReportInterval)
	tracker.Start()

	err = r.iterator.ForEach(ctx, result.ResumedAt, func(docs []*core.Document) error {
		batch, err := r.processor.Process(ctx, docs)
		result.BatchResult.Add(batch)
		if err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}

		result.LastID = docs[len(docs)-1].Id
		if err := r.saveCheckpoint(ctx, result.LastID); err != nil {
			return err
		}

		tracker.Add(len(docs))
		return nil
	})
	result.Elapsed = tracker.Elapsed()
	if err != nil {
		return result, err
	}

	tracker.Finish()
	if err := r.clearCheckpoint(ctx); err != nil {
		return result, err
	}

	fmt.Fprintf(r.progress, "Summarization complete. %d summarized, %d skipped, %d failed in %v\n",
		result.Summarized, result.Skipped, result.Failed, result.Elapsed.Round(time.Second))

	return result, nil
}

func (r *Resummarizer) saveCheckpoint(ctx context.Context, lastID core.ID) error {
	if r.checkpoints == nil {
		return nil
	}
	err := r.checkpoints.SaveCheckpoint(ctx, &core.Checkpoint{
		ProcessorType: ProcessorType,
		LastID:        lastID,
	})
	if err != nil {
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}
	return nil
}

func (r *Resummarizer) clearCheckpoint(ctx context.Context) error {
	if r.checkpoints == nil {
		return nil
	}
	if err := r.checkpoints.ClearCheckpoint(ctx, ProcessorType); err != nil {
		return fmt.Errorf("failed to clear checkpoint: %w", err)
	}
	return nil
}
