package openai

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/poiesic/docsift/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	maxResponseTokens = 1000
	parseAttempts     = 3
	rawSummaryLength  = 1500
	logPreviewLength  = 200
)

var errNoChoices = errors.New("no choices returned from model")

// Summarizer implements ai.Summarizer using OpenAI-compatible chat APIs.
type Summarizer struct {
	client llms.Model
	config ai.Config
	logger *slog.Logger
}

// newSummarizer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newSummarizer(config *ai.Config) (*Summarizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken("none"),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return newSummarizerWithClient(client, config), nil
}

func newSummarizerWithClient(client llms.Model, config *ai.Config) *Summarizer {
	return &Summarizer{
		client: client,
		config: *config,
		logger: slog.Default().With("component", "openai-summarizer"),
	}
}

// NewSummarizer creates a new summarizer using the provided configuration.
//
// Returns ai.Summarizer interface to enforce abstraction.
func NewSummarizer(config *ai.Config) (ai.Summarizer, error) {
	return newSummarizer(config)
}

// Summarize asks the model for a structured summary of content and keeps only
// what the content supports. Unusable model output degrades to an extractive
// summary; only a cancelled context is reported as an error.
func (s *Summarizer) Summarize(ctx context.Context, content, titleHint string) (*ai.GeneratedSummary, error) {
	if s.config.Verbatim {
		return ai.VerbatimSummary(titleHint, content), nil
	}

	content = ai.Truncate(content, s.config.MaxContentLength)

	raw, data, err := s.generate(ctx, content, titleHint)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.logger.Warn("using extractive summary", "err", err)
		return ai.ExtractiveSummary(titleHint, content), nil
	}

	summary, grounded := assembleSummary(raw, data, titleHint, content, s.config.MinKeyPoints)
	if !grounded {
		s.logger.Info("model summary not grounded in content, using extractive summary",
			"title", summary.Title)
	}
	return summary, nil
}

// generate requests the summary and decodes the JSON object in the reply,
// retrying when the reply does not parse.
func (s *Summarizer) generate(ctx context.Context, content, titleHint string) (string, map[string]any, error) {
	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildSystemPrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildUserPrompt(titleHint, content)),
			},
		},
	}

	var lastErr error
	for attempt := 0; attempt < parseAttempts; attempt++ {
		response, err := s.client.GenerateContent(ctx, messages,
			llms.WithTemperature(0.0),
			llms.WithMaxTokens(maxResponseTokens),
			llms.WithJSONMode())
		if err != nil {
			s.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return "", nil, err
		}

		if len(response.Choices) < 1 {
			s.logger.Debug("no choices returned from model")
			return "", nil, errNoChoices
		}

		raw := stripCodeFences(response.Choices[0].Content)
		data, err := decodeSummaryJSON(raw)
		if err != nil {
			lastErr = err
			s.logger.Warn("error parsing summarizer response",
				"attempt", attempt+1,
				"response", ai.Truncate(raw, logPreviewLength),
				"err", err)
			continue
		}
		return raw, data, nil
	}

	s.logger.Error("failed to parse summarizer response after retries", "err", lastErr)
	return "", nil, lastErr
}

// decodeSummaryJSON pulls the JSON object out of a reply and decodes it,
// repairing common formatting slips first.
func decodeSummaryJSON(raw string) (map[string]any, error) {
	text := repairJSON(extractJSONObject(raw))

	var data map[string]any
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return nil, err
	}
	return data, nil
}

// assembleSummary validates a decoded reply against content. The boolean
// is false when too few key points were grounded and the extractive summary
// was returned instead.
func assembleSummary(raw string, data map[string]any, titleHint, content string, minKeyPoints int) (*ai.GeneratedSummary, bool) {
	title := asString(data["title"])
	if title == "" {
		title = titleHint
	}
	if title == "" {
		title = ai.DefaultSummaryTitle
	}

	keyPoints := ai.GroundKeyPoints(asStrings(data["key_points"]), citationsOf(data["citations"]), content)
	if len(keyPoints) < minKeyPoints {
		return ai.ExtractiveSummary(title, content), false
	}

	wordCount := asInt(data["word_count"])
	if wordCount == 0 {
		wordCount = ai.CountWords(content)
	}
	readingTime := asString(data["reading_time"])
	if readingTime == "" {
		readingTime = ai.ReadingTime(wordCount)
	}

	categories := asStrings(data["categories"])
	if len(categories) == 0 {
		categories = append([]string(nil), ai.DefaultCategories...)
	}
	if len(categories) > ai.MaxCategories {
		categories = categories[:ai.MaxCategories]
	}

	fullSummary := asString(data["full_summary"])
	if fullSummary == "" {
		fullSummary = ai.Truncate(raw, rawSummaryLength)
	}

	return &ai.GeneratedSummary{
		Title:       title,
		KeyPoints:   keyPoints,
		WordCount:   wordCount,
		ReadingTime: readingTime,
		Sentiment:   ai.NormalizeSentiment(asString(data["sentiment"])),
		Categories:  categories,
		FullSummary: fullSummary,
	}, true
}

// citationsOf reads the citations list, skipping entries that are not objects.
func citationsOf(v any) []ai.Citation {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	citations := make([]ai.Citation, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		citations = append(citations, ai.Citation{
			Point: asString(obj["point"]),
			Quote: asString(obj["quote"]),
		})
	}
	return citations
}
