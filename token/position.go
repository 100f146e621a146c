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

// Package token tracks source positions for the visualization sub-language.
//
// Positions are recorded 0-based internally (byte offset into the viz text)
// and rendered 1-based to users, per the error-reporting contract of
// spec.md §7.
package token

import "fmt"

// NoPos is the zero value for Pos; it means "no position is available".
var NoPos = Pos{}

// Pos identifies a byte offset, plus its decoded line and column, within a
// single source (the visualization sub-program text handed to the parser).
type Pos struct {
	Offset int // 0-based byte offset
	Line   int // 1-based line number
	Column int // 1-based column number (in runes, not bytes)
}

// IsValid reports whether p represents an actual position.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

// String renders p as "line:column", the form used in ParseError/ModelError
// messages.
func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// File maps byte offsets in one source text to line/column positions. It is
// built once, up front, by scanning for newlines, so that every token the
// scanner produces can attach a Pos in O(1).
type File struct {
	name       string
	src        string
	lineStarts []int // byte offset of the first byte of each line
}

// NewFile indexes src's line boundaries so that PosAt can resolve byte
// offsets to line/column pairs.
func NewFile(name, src string) *File {
	f := &File{name: name, src: src, lineStarts: []int{0}}
	for i, b := range []byte(src) {
		if b == '\n' {
			f.lineStarts = append(f.lineStarts, i+1)
		}
	}
	return f
}

// Name returns the file's name (typically empty or a caller-supplied label;
// the core never reads from disk, so this is cosmetic/diagnostic only).
func (f *File) Name() string { return f.name }

// PosAt resolves a 0-based byte offset into src to a Pos with 1-based line
// and column. Column is counted in runes to stay stable across multi-byte
// UTF-8 sequences.
func (f *File) PosAt(offset int) Pos {
	if offset < 0 {
		offset = 0
	}
	if offset > len(f.src) {
		offset = len(f.src)
	}
	line := searchLine(f.lineStarts, offset)
	lineStart := f.lineStarts[line]
	col := 1
	for _, r := range f.src[lineStart:offset] {
		_ = r
		col++
	}
	return Pos{Offset: offset, Line: line + 1, Column: col}
}

// searchLine returns the index into lineStarts of the line containing
// offset, i.e. the greatest i such that lineStarts[i] <= offset.
func searchLine(lineStarts []int, offset int) int {
	lo, hi := 0, len(lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}
