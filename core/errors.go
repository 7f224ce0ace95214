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


package core

import "errors"

var (
	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrInvalidSummary indicates a Summary failed validation.
	ErrInvalidSummary = errors.New("invalid summary")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")

	// ErrEmptyName indicates the document Name field is empty.
	ErrEmptyName = errors.New("document name cannot be empty")

	// ErrInvalidStatus indicates an unknown DocumentStatus value.
	ErrInvalidStatus = errors.New("invalid document status")

	// ErrMissingDocumentID indicates a summary without a document reference.
	ErrMissingDocumentID = errors.New("summary document id cannot be zero")

	// ErrInvalidSentiment indicates an unknown Sentiment value.
	ErrInvalidSentiment = errors.New("invalid sentiment")

	// ErrInvalidSearchMode indicates an unknown search mode name.
	ErrInvalidSearchMode = errors.New("invalid search mode")

	// ErrMalformedRecord indicates encoded record data is inconsistent.
	ErrMalformedRecord = errors.New("malformed record")
)
