package search

import (
	"regexp"

	"github.com/poiesic/docsift/core"
)

// paragraphSeparator matches a blank line: two line breaks with only
// whitespace between them.
var paragraphSeparator = regexp.MustCompile(`\n\s*\n`)

// Segment splits text into paragraphs at blank lines. Paragraph offsets are
// byte offsets into text, so text[p.Start:p.End] == p.Text for every result.
// Empty gaps between adjacent separators are dropped; whatever follows the
// last separator is always kept.
func Segment(text string) []core.Paragraph {
	var paragraphs []core.Paragraph
	lastIndex := 0
	for _, loc := range paragraphSeparator.FindAllStringIndex(text, -1) {
		if loc[0] > lastIndex {
			paragraphs = append(paragraphs, core.Paragraph{
				Text:  text[lastIndex:loc[0]],
				Start: lastIndex,
				End:   loc[0],
			})
		}
		lastIndex = loc[1]
	}
	if lastIndex < len(text) {
		paragraphs = append(paragraphs, core.Paragraph{
			Text:  text[lastIndex:],
			Start: lastIndex,
			End:   len(text),
		})
	}
	return paragraphs
}
