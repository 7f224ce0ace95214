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


package search

import "errors"

var (
	// ErrDocumentRepositoryRequired is returned when a document repository is not provided.
	ErrDocumentRepositoryRequired = errors.New("document repository required")

	// ErrSummaryRepositoryRequired is returned when a summary repository is not provided.
	ErrSummaryRepositoryRequired = errors.New("summary repository required")

	// ErrSynonymTableRequired is returned when WithSynonyms is given a nil table.
	ErrSynonymTableRequired = errors.New("synonym table required")

	// ErrInvalidLatency is returned for a negative semantic latency.
	ErrInvalidLatency = errors.New("semantic latency cannot be negative")

	// ErrInvalidConcurrency is returned when the fan-out limit is below one.
	ErrInvalidConcurrency = errors.New("concurrency must be at least 1")

	// ErrInvalidFilter is returned for an unknown library filter name.
	ErrInvalidFilter = errors.New("invalid library filter")

	// ErrSearchInProgress is returned when a session already has a search running.
	ErrSearchInProgress = errors.New("search already in progress")

	// ErrNoSuchResult is returned when selecting a result index that does not exist.
	ErrNoSuchResult = errors.New("no such search result")
)
