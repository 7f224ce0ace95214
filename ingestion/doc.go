// Package ingestion brings documents into docsift.
//
// The Pipeline extracts text from uploaded files, stores them as documents
// and summarizes them asynchronously on a worker pool, moving each document
// through the uploading, processing and completed (or failed) states.
// Errors during async processing are logged and leave the document failed;
// they do not fail the ingestion operation.
//
// The Watcher feeds a directory tree into the pipeline as files appear, and
// ExpandPatterns resolves doublestar globs for batch uploads.
package ingestion
