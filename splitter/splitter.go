// Copyright 2024 The vvSQL Authors
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

// Package splitter implements the first stage of the vvSQL pipeline
// (spec.md §4.1): partitioning a combined query into its data-sub-language
// prefix and its visualization-sub-language suffix.
//
// The marker is located with a regular expression, but the search itself
// walks the text byte-by-byte so that it can skip over quoted strings and
// line/block comments of the data sub-language — the same "don't match
// inside a string or a comment" discipline the keyword-table SQL
// tokenizers in the retrieval pack apply before ever handing text to a
// regex (see other_examples' freeeve-machparse token package and the
// quote/comment-aware scanning in aclements-go-misc/dashquery).
package splitter

import (
	"regexp"
	"strings"
)

// marker matches the case-insensitive "VISUALISE AS" / "VISUALIZE AS"
// header token pair, per spec.md §4.1.
var marker = regexp.MustCompile(`(?i)\bVISUALI[SZ]E\s+AS\b`)

// Split locates the first occurrence of the visualization marker that is
// not inside a quoted string or a comment, and returns the data-sublanguage
// prefix (trimmed of trailing whitespace and an optional trailing ';') and
// the visualization suffix (the match onward, trimmed). If no such
// occurrence exists, dataText is the whole of text and vizText is empty.
func Split(text string) (dataText, vizText string) {
	idx := findMarker(text)
	if idx < 0 {
		return text, ""
	}
	dataText = strings.TrimRight(text[:idx], " \t\r\n")
	dataText = strings.TrimSuffix(dataText, ";")
	dataText = strings.TrimRight(dataText, " \t\r\n")
	vizText = strings.TrimSpace(text[idx:])
	return dataText, vizText
}

// findMarker returns the byte offset of the first legal marker match, or
// -1 if none exists outside of quotes/comments.
func findMarker(text string) int {
	masked := maskQuotesAndComments(text)
	loc := marker.FindStringIndex(masked)
	if loc == nil {
		return -1
	}
	return loc[0]
}

// maskQuotesAndComments returns a copy of text with the contents of every
// single-quoted string, double-quoted string, "--" line comment, and
// "/* */" block comment replaced by spaces (same length, so offsets
// computed against the mask still index correctly into the original
// text), while anything outside those spans is left untouched so the
// marker regexp can still match it.
func maskQuotesAndComments(text string) string {
	b := []byte(text)
	out := make([]byte, len(b))
	copy(out, b)

	i := 0
	for i < len(b) {
		switch {
		case b[i] == '\'' || b[i] == '"':
			quote := b[i]
			j := i + 1
			for j < len(b) {
				if b[j] == quote {
					if j+1 < len(b) && b[j+1] == quote {
						out[j], out[j+1] = ' ', ' '
						j += 2
						continue
					}
					break
				}
				out[j] = ' '
				j++
			}
			if j < len(b) {
				j++ // consume closing quote
			}
			for k := i; k < j && k < len(out); k++ {
				out[k] = ' '
			}
			i = j
		case i+1 < len(b) && b[i] == '-' && b[i+1] == '-':
			j := i
			for j < len(b) && b[j] != '\n' {
				out[j] = ' '
				j++
			}
			i = j
		case i+1 < len(b) && b[i] == '/' && b[i+1] == '*':
			j := i
			for j < len(b) {
				if j+1 < len(b) && b[j] == '*' && b[j+1] == '/' {
					out[j], out[j+1] = ' ', ' '
					j += 2
					break
				}
				out[j] = ' '
				j++
			}
			i = j
		default:
			i++
		}
	}
	return string(out)
}
