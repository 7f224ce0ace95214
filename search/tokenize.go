package search

import (
	"regexp"

	"github.com/poiesic/docsift/core"
)

var wordPattern = regexp.MustCompile(`\w+`)

// Tokenize returns every maximal run of word characters ([0-9A-Za-z_]) in
// text, left to right. Offsets are relative to text.
func Tokenize(text string) []core.Token {
	locs := wordPattern.FindAllStringIndex(text, -1)
	tokens := make([]core.Token, 0, len(locs))
	for _, loc := range locs {
		tokens = append(tokens, core.Token{
			Word:  text[loc[0]:loc[1]],
			Start: loc[0],
			End:   loc[1],
		})
	}
	return tokens
}
