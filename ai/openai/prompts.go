package openai

import "fmt"

const summarizerSystemPrompt = `You are an expert document summarizer. Your outputs must be strictly grounded in the provided content. NEVER invent facts, numbers, names, dates, or claims not explicitly present in the content. If unsure, use 'unknown'.

Return ONLY a compact JSON object with keys: title (string), key_points (array of 3-6 strings), word_count (int), reading_time (string like '3 min'), sentiment (positive|neutral|negative|unknown), categories (array of strings), full_summary (string), citations (array of objects with fields 'point' and 'quote' where 'quote' is an exact substring from the content that supports the point).

Do not include any preamble, explanation, greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing brace }.`

const summarizerUserPromptTemplate = `Title hint: %s

Summarize the following document content. Focus on clarity and key insights.

CONTENT:
%s`

// buildSystemPrompt returns the system prompt for summarization.
func buildSystemPrompt() string {
	return summarizerSystemPrompt
}

// buildUserPrompt embeds the title hint and document content.
func buildUserPrompt(titleHint, content string) string {
	return fmt.Sprintf(summarizerUserPromptTemplate, titleHint, content)
}
