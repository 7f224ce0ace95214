package storage

import (
	"testing"
	"time"

	"github.com/poiesic/docsift/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("test content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalDocument(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name string
		doc  *core.Document
	}{
		{
			name: "minimal document",
			doc: &core.Document{
				Id:     core.ID(1),
				Name:   "notes.txt",
				Status: core.StatusUploading,
			},
		},
		{
			name: "document with content",
			doc: &core.Document{
				Id:          core.ID(2),
				Name:        "report.txt",
				Title:       "report",
				ContentType: "text/plain",
				SizeBytes:   47,
				Content:     "Revenue grew fast.\n\nCosts were high this year.",
				ContentHash: core.ContentHash("Revenue grew fast.\n\nCosts were high this year."),
				Status:      core.StatusCompleted,
				UploadedAt:  now,
				InsertedAt:  now,
				UpdatedAt:   now,
			},
		},
		{
			name: "unicode content",
			doc: &core.Document{
				Id:         core.ID(3),
				Name:       "世界.txt",
				Content:    "Hello 世界 🌍 émojis",
				Status:     core.StatusFailed,
				UploadedAt: now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalDocument(tt.doc)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalDocument(data)
			require.NoError(t, err)
			require.NotNil(t, decoded)

			assert.Equal(t, tt.doc.Id, decoded.Id)
			assert.Equal(t, tt.doc.Name, decoded.Name)
			assert.Equal(t, tt.doc.Title, decoded.Title)
			assert.Equal(t, tt.doc.ContentType, decoded.ContentType)
			assert.Equal(t, tt.doc.SizeBytes, decoded.SizeBytes)
			assert.Equal(t, tt.doc.Content, decoded.Content)
			assert.Equal(t, tt.doc.ContentHash, decoded.ContentHash)
			assert.Equal(t, tt.doc.Status, decoded.Status)
			assert.True(t, tt.doc.UploadedAt.Equal(decoded.UploadedAt))
			assert.True(t, tt.doc.InsertedAt.Equal(decoded.InsertedAt))
			assert.True(t, tt.doc.UpdatedAt.Equal(decoded.UpdatedAt))
		})
	}
}

func TestMarshalUnmarshalSummary(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	summary := &core.Summary{
		DocumentId:  core.ID(9),
		Title:       "Quarterly report",
		KeyPoints:   []string{"Revenue grew fast.", "Costs were high this year."},
		WordCount:   8,
		ReadingTime: "1 min",
		Sentiment:   core.SentimentNeutral,
		Categories:  []string{"Document", "Analysis"},
		FullSummary: "Revenue grew fast. Costs were high this year.",
		CreatedAt:   now,
	}

	decoded, err := UnmarshalSummary(MarshalSummary(summary))
	require.NoError(t, err)
	assert.Equal(t, summary.DocumentId, decoded.DocumentId)
	assert.Equal(t, summary.KeyPoints, decoded.KeyPoints)
	assert.Equal(t, summary.Categories, decoded.Categories)
	assert.Equal(t, summary.WordCount, decoded.WordCount)
	assert.Equal(t, summary.Sentiment, decoded.Sentiment)
	assert.Equal(t, summary.FullSummary, decoded.FullSummary)
	assert.True(t, summary.CreatedAt.Equal(decoded.CreatedAt))

	t.Run("empty lists decode as empty", func(t *testing.T) {
		decoded, err := UnmarshalSummary(MarshalSummary(&core.Summary{DocumentId: 1}))
		require.NoError(t, err)
		assert.Empty(t, decoded.KeyPoints)
		assert.Empty(t, decoded.Categories)
	})
}

func TestUnmarshal_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"invalid data", []byte{0xFF, 0xFF, 0xFF}},
		{"partial data", []byte{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalDocument(tt.data)
			assert.ErrorIs(t, err, ErrSerializationFailed)

			_, err = UnmarshalSummary(tt.data)
			assert.ErrorIs(t, err, ErrSerializationFailed)
		})
	}
}

func TestMarshalUnmarshalCheckpoint(t *testing.T) {
	checkpoint := &core.Checkpoint{
		ProcessorType: "resummarize",
		LastID:        core.ID(314),
		UpdatedAt:     time.Now().UTC().Truncate(time.Microsecond),
	}

	decoded, err := UnmarshalCheckpoint(MarshalCheckpoint(checkpoint))
	require.NoError(t, err)
	assert.Equal(t, checkpoint.ProcessorType, decoded.ProcessorType)
	assert.Equal(t, checkpoint.LastID, decoded.LastID)
	assert.True(t, checkpoint.UpdatedAt.Equal(decoded.UpdatedAt))
}
