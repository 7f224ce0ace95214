package ai

// MaxKeyPoints and MaxCategories cap the lists of a summary.
const (
	MaxKeyPoints  = 6
	MaxCategories = 6
)

// Sentiment values a summary may carry.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
	SentimentUnknown  = "unknown"
)

// DefaultCategories is used when a summary names no categories.
var DefaultCategories = []string{"Document", "Analysis"}

// GeneratedSummary is the output of a Summarizer.
type GeneratedSummary struct {
	Title       string
	KeyPoints   []string
	WordCount   int
	ReadingTime string
	Sentiment   string
	Categories  []string
	FullSummary string
}

// Citation ties a key point to the exact text that supports it.
type Citation struct {
	Point string `json:"point"`
	Quote string `json:"quote"`
}
