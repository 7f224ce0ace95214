package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/docsift/core"
)

// Key prefixes for different data types
const (
	documentPrefix       = "doc"
	documentUploadPrefix = "docup"
	documentIDSeq        = "docseq"
	summaryPrefix        = "sum"
	checkpointPrefix     = "chkpt"
)

// makeDocumentKey generates a key for a document by ID.
func makeDocumentKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", documentPrefix, id))
}

// makeUploadKey generates a composite key for the upload-time index.
// Format: prefix:timestamp:id
func makeUploadKey(uploadedAt time.Time, id core.ID) []byte {
	prefixBytes := []byte(documentUploadPrefix + ":")
	buf := make([]byte, len(prefixBytes)+16) // 8 bytes for timestamp + 8 bytes for ID
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(uploadedAt.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialUploadKey generates a partial key for upload range queries.
// Format: prefix:timestamp
func makePartialUploadKey(uploadedAt time.Time) []byte {
	prefixBytes := []byte(documentUploadPrefix + ":")
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(uploadedAt.UnixMicro()))
	return buf
}

// makeSummaryKey generates the key of the summary belonging to a document.
func makeSummaryKey(documentID core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", summaryPrefix, documentID))
}

// makeCheckpointKey generates a key for processor checkpoints.
func makeCheckpointKey(processorType string) []byte {
	return []byte(fmt.Sprintf("%s:%s", checkpointPrefix, processorType))
}
