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

package scanner

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vvsql/vvsql/token"
)

// Scanner lexes one viz_program text into a Token stream. It is used
// once, front-to-back, by the parser; it holds no cross-program state.
type Scanner struct {
	file *token.File
	src  string
	off  int // byte offset of the next unread byte
}

// New creates a Scanner over src. file must already index src's line
// boundaries (see token.NewFile) so that Next can attach positions.
func New(file *token.File, src string) *Scanner {
	return &Scanner{file: file, src: src}
}

func (s *Scanner) peekByte() byte {
	if s.off >= len(s.src) {
		return 0
	}
	return s.src[s.off]
}

func (s *Scanner) peekByteAt(n int) byte {
	if s.off+n >= len(s.src) {
		return 0
	}
	return s.src[s.off+n]
}

func (s *Scanner) skipSpace() {
	for s.off < len(s.src) {
		c := s.src[s.off]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			s.off++
			continue
		}
		break
	}
}

// Next returns the next token, or an EOF token once the input is
// exhausted. A lexical error is reported as an ILLEGAL token; the parser
// turns that into a *errors.ParseError.
func (s *Scanner) Next() (Token, error) {
	s.skipSpace()
	pos := s.file.PosAt(s.off)
	if s.off >= len(s.src) {
		return Token{Kind: EOF, Pos: pos}, nil
	}

	c := s.peekByte()
	switch {
	case c == '[':
		s.off++
		return Token{Kind: LBRACKET, Text: "[", Pos: pos}, nil
	case c == ']':
		s.off++
		return Token{Kind: RBRACKET, Text: "]", Pos: pos}, nil
	case c == ',':
		s.off++
		return Token{Kind: COMMA, Text: ",", Pos: pos}, nil
	case c == '=':
		s.off++
		return Token{Kind: EQUALS, Text: "=", Pos: pos}, nil
	case c == '\'' || c == '"':
		return s.scanString(pos, c)
	case c == '-' || isDigit(c):
		return s.scanNumber(pos)
	case isIdentStart(c):
		return s.scanIdent(pos)
	default:
		r, size := utf8.DecodeRuneInString(s.src[s.off:])
		s.off += size
		return Token{Kind: ILLEGAL, Text: string(r), Pos: pos}, fmt.Errorf("unexpected character %q", r)
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= utf8.RuneSelf
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func (s *Scanner) scanIdent(pos token.Pos) (Token, error) {
	start := s.off
	for s.off < len(s.src) && isIdentCont(s.src[s.off]) {
		s.off++
	}
	text := s.src[start:s.off]
	kind := IDENT
	if IsKeyword(text) {
		kind = KEYWORD
	}
	return Token{Kind: kind, Text: text, Pos: pos}, nil
}

func (s *Scanner) scanNumber(pos token.Pos) (Token, error) {
	start := s.off
	if s.peekByte() == '-' {
		s.off++
	}
	for s.off < len(s.src) && isDigit(s.src[s.off]) {
		s.off++
	}
	if s.peekByte() == '.' && isDigit(s.peekByteAt(1)) {
		s.off++
		for s.off < len(s.src) && isDigit(s.src[s.off]) {
			s.off++
		}
	}
	text := s.src[start:s.off]
	if text == "" || text == "-" {
		return Token{Kind: ILLEGAL, Text: text, Pos: pos}, fmt.Errorf("malformed number literal")
	}
	return Token{Kind: NUMBER, Text: text, Pos: pos}, nil
}

// scanString reads a single- or double-quoted string, honoring a single
// level of backslash escaping for the quote character and backslash
// itself. Text carries the unescaped, unquoted value.
func (s *Scanner) scanString(pos token.Pos, quote byte) (Token, error) {
	s.off++ // opening quote
	var b strings.Builder
	for {
		if s.off >= len(s.src) {
			return Token{Kind: ILLEGAL, Text: b.String(), Pos: pos}, fmt.Errorf("unterminated string literal")
		}
		c := s.src[s.off]
		if c == quote {
			s.off++
			return Token{Kind: STRING, Text: b.String(), Pos: pos}, nil
		}
		if c == '\\' && s.off+1 < len(s.src) {
			next := s.src[s.off+1]
			switch next {
			case quote, '\\':
				b.WriteByte(next)
				s.off += 2
				continue
			case 'n':
				b.WriteByte('\n')
				s.off += 2
				continue
			case 't':
				b.WriteByte('\t')
				s.off += 2
				continue
			}
		}
		r, size := utf8.DecodeRuneInString(s.src[s.off:])
		if r == utf8.RuneError && size == 1 {
			b.WriteByte(c)
			s.off++
			continue
		}
		b.WriteRune(r)
		s.off += size
	}
}
