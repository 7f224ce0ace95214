package ingestion

import "errors"

var (
	// ErrDocumentRepositoryRequired is returned when a document repository is not provided.
	ErrDocumentRepositoryRequired = errors.New("document repository required")

	// ErrSummaryRepositoryRequired is returned when a summary repository is not provided.
	ErrSummaryRepositoryRequired = errors.New("summary repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrNoText is returned when no text could be extracted from a file.
	ErrNoText = errors.New("unable to extract text from file")

	// ErrUnchanged is returned when a file's text matches the latest stored
	// document of the same name. The stored document is returned with it.
	ErrUnchanged = errors.New("document unchanged")

	// ErrEmptyName is returned when a file is ingested without a name.
	ErrEmptyName = errors.New("file name required")

	// ErrInvalidPattern is returned for a malformed include glob.
	ErrInvalidPattern = errors.New("invalid file pattern")
)
