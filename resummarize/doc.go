// Package resummarize regenerates the summaries of stored documents, for
// example after switching to a different model or prompt.
//
// Documents are visited in ID order and in batches. Each summary request is
// retried with exponential backoff, progress is reported to a writer, and
// the last finished document ID is saved as a checkpoint so an interrupted
// run can resume where it stopped.
package resummarize
