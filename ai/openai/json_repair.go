// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import "unicode"

// repairJSON fixes the formatting slips small models make most often:
// keys missing their opening quote and trailing commas before a closing
// bracket.
func repairJSON(s string) string {
	return dropTrailingCommas(quoteBareKeys(s))
}

// quoteBareKeys adds the opening quote to keys written as `, key":`.
func quoteBareKeys(s string) string {
	in := []rune(s)
	out := make([]rune, 0, len(in)+16)

	for i := 0; i < len(in); {
		ch := in[i]
		out = append(out, ch)
		i++
		if ch != '{' && ch != ',' {
			continue
		}

		for i < len(in) && unicode.IsSpace(in[i]) {
			out = append(out, in[i])
			i++
		}
		if i >= len(in) || !isLetter(in[i]) {
			continue
		}

		end := i
		for end < len(in) && (isLetter(in[end]) || in[end] == '_' || unicode.IsDigit(in[end])) {
			end++
		}
		if end+1 < len(in) && in[end] == '"' && in[end+1] == ':' {
			out = append(out, '"')
		}
		out = append(out, in[i:end]...)
		i = end
	}

	return string(out)
}

// dropTrailingCommas removes commas that directly precede '}' or ']'
// outside of string literals.
func dropTrailingCommas(s string) string {
	in := []rune(s)
	out := make([]rune, 0, len(in))
	inString, escaped := false, false

	for i, ch := range in {
		if inString {
			out = append(out, ch)
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		if ch == '"' {
			inString = true
		}
		if ch == ',' && closesNext(in[i+1:]) {
			continue
		}
		out = append(out, ch)
	}

	return string(out)
}

func closesNext(rest []rune) bool {
	for _, r := range rest {
		if unicode.IsSpace(r) {
			continue
		}
		return r == '}' || r == ']'
	}
	return false
}
