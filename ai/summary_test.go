package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadingTime(t *testing.T) {
	assert.Equal(t, "1 min", ReadingTime(0))
	assert.Equal(t, "1 min", ReadingTime(499))
	assert.Equal(t, "2 min", ReadingTime(500))
	assert.Equal(t, "4 min", ReadingTime(1000))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exact", Truncate("exact", 5))
	assert.Equal(t, "abc...", Truncate("abcdef", 3))
	assert.Equal(t, "héé...", Truncate("héééé", 3))
}

func TestSentences(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{name: "empty", content: "   ", want: nil},
		{name: "single without punctuation", content: "no end", want: []string{"no end"}},
		{
			name:    "mixed punctuation",
			content: "First one. Second?  Third!\nFourth",
			want:    []string{"First one.", "Second?", "Third!", "Fourth"},
		},
		{name: "abbreviation without space", content: "v1.2 is out. Yes.", want: []string{"v1.2 is out.", "Yes."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sentences(tt.content))
		})
	}
}

func TestExtractiveSummary(t *testing.T) {
	t.Run("takes the first five sentences", func(t *testing.T) {
		content := "One. Two. Three. Four. Five. Six."

		s := ExtractiveSummary("Report", content)

		assert.Equal(t, "Report", s.Title)
		assert.Equal(t, []string{"One.", "Two.", "Three.", "Four.", "Five."}, s.KeyPoints)
		assert.Equal(t, "One. Two. Three. Four. Five.", s.FullSummary)
		assert.Equal(t, 6, s.WordCount)
		assert.Equal(t, "1 min", s.ReadingTime)
		assert.Equal(t, SentimentNeutral, s.Sentiment)
		assert.Equal(t, []string{"Document", "Analysis"}, s.Categories)
	})

	t.Run("defaults the title", func(t *testing.T) {
		s := ExtractiveSummary("", "Body.")
		assert.Equal(t, "Document Summary", s.Title)
	})

	t.Run("caps long sentences", func(t *testing.T) {
		long := strings.Repeat("x", 2000)

		s := ExtractiveSummary("t", long)

		require.Len(t, s.KeyPoints, 1)
		assert.Len(t, s.KeyPoints[0], 200)
		assert.Len(t, s.FullSummary, 1503)
		assert.True(t, strings.HasSuffix(s.FullSummary, "..."))
	})

	t.Run("empty content still has a key point", func(t *testing.T) {
		s := ExtractiveSummary("t", "")

		assert.Equal(t, []string{""}, s.KeyPoints)
		assert.Equal(t, 0, s.WordCount)
	})

	t.Run("categories are not shared", func(t *testing.T) {
		s := ExtractiveSummary("t", "a.")
		s.Categories[0] = "changed"
		assert.Equal(t, "Document", DefaultCategories[0])
	})
}

func TestVerbatimSummary(t *testing.T) {
	content := "The whole text stays as it is."

	s := VerbatimSummary("", content)

	assert.Equal(t, "Document Content", s.Title)
	assert.Empty(t, s.KeyPoints)
	assert.Equal(t, content, s.FullSummary)
	assert.Equal(t, SentimentUnknown, s.Sentiment)
	assert.Equal(t, []string{"Document"}, s.Categories)
	assert.Equal(t, 7, s.WordCount)
}

func TestNormalizeSentiment(t *testing.T) {
	for _, s := range []string{SentimentPositive, SentimentNeutral, SentimentNegative, SentimentUnknown} {
		assert.Equal(t, s, NormalizeSentiment(s))
	}
	assert.Equal(t, SentimentNeutral, NormalizeSentiment("ecstatic"))
	assert.Equal(t, SentimentNeutral, NormalizeSentiment(""))
}

func TestGroundKeyPoints(t *testing.T) {
	content := "Quarterly revenue increased by twelve percent. Hiring slowed in the second half."

	t.Run("citation quote found in content", func(t *testing.T) {
		got := GroundKeyPoints(
			[]string{"Sales went up"},
			[]Citation{{Point: "Sales went up", Quote: "REVENUE INCREASED"}},
			content,
		)
		assert.Equal(t, []string{"Sales went up"}, got)
	})

	t.Run("citation quote not in content", func(t *testing.T) {
		got := GroundKeyPoints(
			[]string{"Sales went up"},
			[]Citation{{Point: "Sales went up", Quote: "profits doubled"}},
			content,
		)
		assert.Empty(t, got)
	})

	t.Run("word overlap", func(t *testing.T) {
		got := GroundKeyPoints(
			[]string{"Revenue increased this quarter", "Aliens landed on Mars yesterday"},
			nil,
			content,
		)
		assert.Equal(t, []string{"Revenue increased this quarter"}, got)
	})

	t.Run("short words do not count", func(t *testing.T) {
		got := GroundKeyPoints([]string{"by in the"}, nil, content)
		assert.Empty(t, got)
	})

	t.Run("only six points considered", func(t *testing.T) {
		points := make([]string, 8)
		for i := range points {
			points[i] = "revenue increased"
		}
		got := GroundKeyPoints(points, nil, content)
		assert.Len(t, got, MaxKeyPoints)
	})
}
