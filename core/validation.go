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

import (
	"fmt"
	"time"
)

func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyName)
	}

	if err := ValidateStatus(doc.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if !IsValidTimestamp(doc.UploadedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrInvalidTimestamp)
	}

	return nil
}

func ValidateSummary(summary *Summary) error {
	if summary == nil {
		return fmt.Errorf("%w: summary is nil", ErrInvalidSummary)
	}

	if summary.DocumentId == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidSummary, ErrMissingDocumentID)
	}

	if err := ValidateSentiment(summary.Sentiment); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSummary, err)
	}

	return nil
}

func ValidateStatus(status DocumentStatus) error {
	switch status {
	case StatusUploading, StatusProcessing, StatusCompleted, StatusFailed:
		return nil
	}
	return fmt.Errorf("%w: value %q", ErrInvalidStatus, status)
}

func ValidateSentiment(sentiment Sentiment) error {
	switch sentiment {
	case SentimentPositive, SentimentNeutral, SentimentNegative, SentimentUnknown:
		return nil
	}
	return fmt.Errorf("%w: value %q", ErrInvalidSentiment, sentiment)
}

func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
