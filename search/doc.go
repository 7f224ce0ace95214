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


// Package search finds text inside documents.
//
// Two matching modes are provided:
//   - Keyword search: exact, case-insensitive substring matching of the
//     query's words, reporting every occurrence in document order
//   - Semantic search: a heuristic that expands the query through a synonym
//     table and scores paragraph tokens by edit-distance similarity,
//     reporting the best token of each relevant paragraph
//
// Both modes work on paragraphs produced by Segment and report byte offsets
// into the original document text, so a caller can highlight the exact span.
// The matchers are pure functions. The Searcher coordinates them, adds the
// simulated scoring latency of semantic mode, recovers from failures and
// searches across the documents held in storage. A Session keeps the
// per-document state a viewer needs: the last results and the selected match.
package search
