package core

import (
	"encoding/binary"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-crypt/x/blake2b"
)

type ID uint64

// IDFromContent derives a stable 64-bit ID from text.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ContentHash returns the fast hash used to detect content changes.
func ContentHash(text string) uint64 {
	return xxhash.Sum64String(text)
}

type DocumentStatus string

const (
	StatusUploading  DocumentStatus = "uploading"
	StatusProcessing DocumentStatus = "processing"
	StatusCompleted  DocumentStatus = "completed"
	StatusFailed     DocumentStatus = "failed"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
	SentimentUnknown  Sentiment = "unknown"
)

// Document is a stored document whose text content can be searched.
type Document struct {
	Id          ID
	Name        string // Original file name, including extension
	Title       string
	ContentType string
	SizeBytes   int64
	Content     string // Extracted text
	ContentHash uint64
	Status      DocumentStatus
	UploadedAt  time.Time
	InsertedAt  time.Time
	UpdatedAt   time.Time
}

// Summary is the generated digest of a document.
type Summary struct {
	DocumentId  ID
	Title       string
	KeyPoints   []string
	WordCount   int
	ReadingTime string
	Sentiment   Sentiment
	Categories  []string
	FullSummary string
	CreatedAt   time.Time
}

// Paragraph is a blank-line delimited span of a document.
// Start and End are byte offsets into the document text.
type Paragraph struct {
	Text  string
	Start int
	End   int
}

// Token is a word within a paragraph. Offsets are relative to the paragraph.
type Token struct {
	Word  string
	Start int
	End   int
}

// SearchResult is a single match inside a document.
// StartIndex and EndIndex are byte offsets into the document text.
type SearchResult struct {
	MatchedText   string
	StartIndex    int
	EndIndex      int
	Context       string
	ParagraphText string
}

// DocumentHits groups the in-document matches of one stored document.
type DocumentHits struct {
	Document *Document
	Results  []SearchResult
}

// Checkpoint records how far a batch processor got so a later run can resume.
type Checkpoint struct {
	ProcessorType string
	LastID        ID
	UpdatedAt     time.Time
}
