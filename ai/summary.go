package ai

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultSummaryTitle is used when neither the model nor the caller supplies a title.
const DefaultSummaryTitle = "Document Summary"

const (
	wordsPerMinute      = 250
	extractiveSentences = 5
	keyPointLength      = 200
	extractiveLength    = 1500
	verbatimTitle       = "Document Content"
)

var sentenceBreak = regexp.MustCompile(`[.!?]\s+`)

// ReadingTime formats the estimated reading time of words, never below one minute.
func ReadingTime(words int) string {
	return fmt.Sprintf("%d min", max(1, words/wordsPerMinute))
}

// CountWords counts whitespace-separated words.
func CountWords(content string) int {
	return len(strings.Fields(content))
}

// Truncate cuts s to at most n characters and marks the cut with "...".
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return firstRunes(s, n) + "..."
}

func firstRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// Sentences splits content after sentence-ending punctuation followed by whitespace.
// Empty pieces are dropped.
func Sentences(content string) []string {
	content = strings.TrimSpace(content)
	var sentences []string
	start := 0
	for _, loc := range sentenceBreak.FindAllStringIndex(content, -1) {
		// keep the punctuation with its sentence
		if s := strings.TrimSpace(content[start : loc[0]+1]); s != "" {
			sentences = append(sentences, s)
		}
		start = loc[1]
	}
	if s := strings.TrimSpace(content[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// ExtractiveSummary builds a summary from the leading sentences of content.
// It never invents text, so it is the fallback whenever a model summary
// cannot be trusted.
func ExtractiveSummary(title, content string) *GeneratedSummary {
	sentences := Sentences(content)
	if len(sentences) > extractiveSentences {
		sentences = sentences[:extractiveSentences]
	}

	keyPoints := make([]string, 0, len(sentences))
	for _, s := range sentences {
		keyPoints = append(keyPoints, firstRunes(s, keyPointLength))
	}
	if len(keyPoints) == 0 {
		keyPoints = append(keyPoints, firstRunes(content, keyPointLength))
	}

	if title == "" {
		title = DefaultSummaryTitle
	}
	words := CountWords(content)
	return &GeneratedSummary{
		Title:       title,
		KeyPoints:   keyPoints,
		WordCount:   words,
		ReadingTime: ReadingTime(words),
		Sentiment:   SentimentNeutral,
		Categories:  append([]string(nil), DefaultCategories...),
		FullSummary: Truncate(strings.Join(sentences, " "), extractiveLength),
	}
}

// VerbatimSummary uses the content itself as the summary, without key points.
func VerbatimSummary(title, content string) *GeneratedSummary {
	if title == "" {
		title = verbatimTitle
	}
	words := CountWords(content)
	return &GeneratedSummary{
		Title:       title,
		KeyPoints:   []string{},
		WordCount:   words,
		ReadingTime: ReadingTime(words),
		Sentiment:   SentimentUnknown,
		Categories:  []string{"Document"},
		FullSummary: content,
	}
}

// NormalizeSentiment maps anything outside the known values to neutral.
func NormalizeSentiment(s string) string {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative, SentimentUnknown:
		return s
	}
	return SentimentNeutral
}

// GroundKeyPoints keeps the key points that are supported by content.
// A point is supported when a citation for it quotes content exactly
// (ignoring case), or when enough of its longer words occur in content.
// At most MaxKeyPoints points are considered.
func GroundKeyPoints(points []string, citations []Citation, content string) []string {
	if len(points) > MaxKeyPoints {
		points = points[:MaxKeyPoints]
	}
	lower := strings.ToLower(content)
	grounded := make([]string, 0, len(points))
	for _, point := range points {
		point = strings.TrimSpace(point)
		if hasSupportingQuote(point, citations, lower) || overlapsContent(point, lower) {
			grounded = append(grounded, point)
		}
	}
	return grounded
}

func hasSupportingQuote(point string, citations []Citation, lowerContent string) bool {
	for _, c := range citations {
		if strings.TrimSpace(c.Point) != point {
			continue
		}
		quote := strings.TrimSpace(c.Quote)
		if quote != "" && strings.Contains(lowerContent, strings.ToLower(quote)) {
			return true
		}
	}
	return false
}

func overlapsContent(point, lowerContent string) bool {
	var tokens []string
	for _, t := range strings.Fields(point) {
		if utf8.RuneCountInString(t) > 3 {
			tokens = append(tokens, t)
		}
	}
	overlap := 0
	for _, t := range tokens {
		if strings.Contains(lowerContent, strings.ToLower(t)) {
			overlap++
		}
	}
	return overlap >= max(2, len(tokens)/3)
}
