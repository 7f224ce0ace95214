package search

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// contextRadius is the number of characters shown on each side of a match.
const contextRadius = 50

const ellipsis = "..."

// foldLower lowercases s without changing its byte length, so byte offsets
// found in the result are valid in s. Runes whose lowercase form encodes to a
// different width are kept as they are, and invalid bytes are copied through.
func foldLower(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteByte(s[i])
			i++
			continue
		}
		lower := unicode.ToLower(r)
		if lower != r && utf8.RuneLen(lower) == size {
			b.WriteRune(lower)
		} else {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

// contextWindow returns the text around paragraph[start:end], extended by up
// to contextRadius runes on each side and clipped to the paragraph. The window
// is prefixed with an ellipsis when text before it was cut off.
func contextWindow(paragraph string, start, end int) string {
	left := start
	for n := 0; left > 0 && n < contextRadius; n++ {
		_, size := utf8.DecodeLastRuneInString(paragraph[:left])
		left -= size
	}

	right := end
	for n := 0; right < len(paragraph) && n < contextRadius; n++ {
		_, size := utf8.DecodeRuneInString(paragraph[right:])
		right += size
	}

	if left > 0 {
		return ellipsis + paragraph[left:right]
	}
	return paragraph[left:right]
}

// queryTerms lowercases query and splits it on whitespace.
func queryTerms(query string) []string {
	return strings.Fields(foldLower(query))
}
