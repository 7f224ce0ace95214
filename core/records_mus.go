package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// Serializers for the persisted records. Each follows the mus-go serializer
// shape (Marshal, Unmarshal, Size) so callers can treat them uniformly.
// Timestamps are stored as Unix microseconds.

var (
	IDMUS         = idMUS{}
	DocumentMUS   = documentMUS{}
	SummaryMUS    = summaryMUS{}
	CheckpointMUS = checkpointMUS{}
)

type idMUS struct{}

func (idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	u, n, err := varint.Uint64.Unmarshal(bs)
	return ID(u), n, err
}

func (idMUS) Size(v ID) int {
	return varint.Uint64.Size(uint64(v))
}

type documentMUS struct{}

func (documentMUS) Marshal(v Document, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(v.Id), bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.ContentType, bs[n:])
	n += varint.Int64.Marshal(v.SizeBytes, bs[n:])
	n += ord.String.Marshal(v.Content, bs[n:])
	n += varint.Uint64.Marshal(v.ContentHash, bs[n:])
	n += ord.String.Marshal(string(v.Status), bs[n:])
	n += marshalTime(v.UploadedAt, bs[n:])
	n += marshalTime(v.InsertedAt, bs[n:])
	n += marshalTime(v.UpdatedAt, bs[n:])
	return n
}

func (documentMUS) Unmarshal(bs []byte) (v Document, n int, err error) {
	var (
		id     uint64
		status string
		n1     int
	)
	id, n, err = varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Id = ID(id)
	if v.Name, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.Title, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.ContentType, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.SizeBytes, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.Content, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.ContentHash, n1, err = varint.Uint64.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if status, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	v.Status = DocumentStatus(status)
	if v.UploadedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.InsertedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.UpdatedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}

func (documentMUS) Size(v Document) (size int) {
	size = varint.Uint64.Size(uint64(v.Id))
	size += ord.String.Size(v.Name)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.ContentType)
	size += varint.Int64.Size(v.SizeBytes)
	size += ord.String.Size(v.Content)
	size += varint.Uint64.Size(v.ContentHash)
	size += ord.String.Size(string(v.Status))
	size += sizeTime(v.UploadedAt)
	size += sizeTime(v.InsertedAt)
	size += sizeTime(v.UpdatedAt)
	return size
}

type summaryMUS struct{}

func (summaryMUS) Marshal(v Summary, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(v.DocumentId), bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += marshalStrings(v.KeyPoints, bs[n:])
	n += varint.Int64.Marshal(int64(v.WordCount), bs[n:])
	n += ord.String.Marshal(v.ReadingTime, bs[n:])
	n += ord.String.Marshal(string(v.Sentiment), bs[n:])
	n += marshalStrings(v.Categories, bs[n:])
	n += ord.String.Marshal(v.FullSummary, bs[n:])
	n += marshalTime(v.CreatedAt, bs[n:])
	return n
}

func (summaryMUS) Unmarshal(bs []byte) (v Summary, n int, err error) {
	var (
		id        uint64
		wordCount int64
		sentiment string
		n1        int
	)
	id, n, err = varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v.DocumentId = ID(id)
	if v.Title, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.KeyPoints, n1, err = unmarshalStrings(bs[n:]); err != nil {
		return
	}
	n += n1
	if wordCount, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	v.WordCount = int(wordCount)
	if v.ReadingTime, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if sentiment, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	v.Sentiment = Sentiment(sentiment)
	if v.Categories, n1, err = unmarshalStrings(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.FullSummary, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.CreatedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}

func (summaryMUS) Size(v Summary) (size int) {
	size = varint.Uint64.Size(uint64(v.DocumentId))
	size += ord.String.Size(v.Title)
	size += sizeStrings(v.KeyPoints)
	size += varint.Int64.Size(int64(v.WordCount))
	size += ord.String.Size(v.ReadingTime)
	size += ord.String.Size(string(v.Sentiment))
	size += sizeStrings(v.Categories)
	size += ord.String.Size(v.FullSummary)
	size += sizeTime(v.CreatedAt)
	return size
}

type checkpointMUS struct{}

func (checkpointMUS) Marshal(v Checkpoint, bs []byte) (n int) {
	n = ord.String.Marshal(v.ProcessorType, bs)
	n += varint.Uint64.Marshal(uint64(v.LastID), bs[n:])
	n += marshalTime(v.UpdatedAt, bs[n:])
	return n
}

func (checkpointMUS) Unmarshal(bs []byte) (v Checkpoint, n int, err error) {
	var (
		id uint64
		n1 int
	)
	if v.ProcessorType, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if id, n1, err = varint.Uint64.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	v.LastID = ID(id)
	if v.UpdatedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}

func (checkpointMUS) Size(v Checkpoint) (size int) {
	size = ord.String.Size(v.ProcessorType)
	size += varint.Uint64.Size(uint64(v.LastID))
	size += sizeTime(v.UpdatedAt)
	return size
}

func marshalTime(t time.Time, bs []byte) int {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func unmarshalTime(bs []byte) (time.Time, int, error) {
	micros, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(micros).UTC(), n, nil
}

func sizeTime(t time.Time) int {
	return varint.Int64.Size(t.UnixMicro())
}

func marshalStrings(v []string, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(len(v)), bs)
	for _, s := range v {
		n += ord.String.Marshal(s, bs[n:])
	}
	return n
}

func unmarshalStrings(bs []byte) (v []string, n int, err error) {
	count, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	// Every encoded string takes at least one byte.
	if count > uint64(len(bs)-n) {
		return nil, n, ErrMalformedRecord
	}
	if count == 0 {
		return nil, n, nil
	}
	v = make([]string, count)
	for i := range v {
		var n1 int
		v[i], n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
	}
	return v, n, nil
}

func sizeStrings(v []string) (size int) {
	size = varint.Uint64.Size(uint64(len(v)))
	for _, s := range v {
		size += ord.String.Size(s)
	}
	return size
}
