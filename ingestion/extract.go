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


package ingestion

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// DefaultMaxChars caps the extracted text of a document.
const DefaultMaxChars = 15000

const defaultContentType = "application/octet-stream"

// ExtractText returns the normalized text of a file: every line trimmed,
// capped at maxChars characters, surrounding whitespace removed.
// DOCX files are read from their document XML; everything else is decoded
// as UTF-8, UTF-16 (with a byte order mark) or Latin-1, in that order.
// Returns ErrNoText when nothing is left.
func ExtractText(data []byte, contentType, name string, maxChars int) (string, error) {
	if maxChars < 1 {
		maxChars = DefaultMaxChars
	}

	var text string
	if isDocx(contentType, name) {
		text = extractDocx(data)
	}
	if text == "" {
		text = decodeText(data)
	}

	text = normalizeLines(text)
	text = strings.TrimSpace(truncateRunes(text, maxChars))
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

var documentTypes = map[string]string{
	".txt":  "text/plain",
	".md":   "text/markdown",
	".csv":  "text/csv",
	".json": "application/json",
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// ContentTypeOf guesses a MIME type from a file name.
func ContentTypeOf(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ct, ok := documentTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return defaultContentType
}

// TitleHint derives a title from a file name: the part before the first dot.
func TitleHint(name string) string {
	base := filepath.Base(name)
	if i := strings.Index(base, "."); i >= 0 {
		return base[:i]
	}
	return base
}

func isDocx(contentType, name string) bool {
	return strings.Contains(strings.ToLower(contentType), "word") ||
		strings.EqualFold(filepath.Ext(name), ".docx")
}

func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")))
	}
	if bytes.HasPrefix(data, []byte{0xff, 0xfe}) || bytes.HasPrefix(data, []byte{0xfe, 0xff}) {
		decoded, err := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder().Bytes(data)
		if err == nil {
			return string(decoded)
		}
	}
	// Latin-1 maps every byte, so it cannot fail.
	decoded, _ := charmap.ISO8859_1.NewDecoder().Bytes(data)
	return string(decoded)
}

// extractDocx joins the text runs of each paragraph in word/document.xml.
// Unreadable archives yield "".
func extractDocx(data []byte) string {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return ""
		}
		defer rc.Close()
		return docxParagraphs(rc)
	}
	return ""
}

func docxParagraphs(r io.Reader) string {
	dec := xml.NewDecoder(r)
	var (
		paragraphs []string
		current    strings.Builder
		inText     bool
	)
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			inText = t.Name.Local == "t"
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if current.Len() > 0 {
					paragraphs = append(paragraphs, current.String())
					current.Reset()
				}
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}
	return strings.Join(paragraphs, "\n")
}

func normalizeLines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
