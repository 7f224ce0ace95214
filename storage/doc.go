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


// Package storage provides the storage abstraction layer for docsift.
//
// This package defines repository interfaces that decouple storage implementation
// from the search and ingestion logic. The search core never reads storage
// directly; documents reach it through these interfaces.
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return these interfaces:
//
//	docs, summaries, backend, err := badger.NewMemoryRepositories()
//
// Internal constructors may return concrete types since they're only used
// within the implementation package.
//
// # Architecture
//
//   - Repository: transaction support and lifecycle shared by all repositories
//   - DocumentRepository: documents and their upload-date index
//   - SummaryRepository: one generated summary per document
//
// # Serialization
//
// Records are stored in the compact mus binary format. MarshalDocument,
// MarshalSummary and MarshalID wrap the serializers declared in core.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context. Pass context.Background()
// for operations without specific timeout requirements.
package storage
