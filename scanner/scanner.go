// Copyright 2018 The CUE Authors
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

// Package scanner implements the SNL lexer: a longest-match tokenizer with
// keyword folding and non-nesting brace comments. Unlike a recovering
// scanner, SNL's lexical phase is fatal on the first problem, so Scan
// returns an error directly instead of reporting through a handler
// callback.
package scanner

import (
	"unicode"
	"unicode/utf8"

	"github.com/snl-lang/snl/errors"
	"github.com/snl-lang/snl/token"
)

// A Scanner holds the scanner's state while tokenizing a single source
// file. It must be initialized with Init before use.
type Scanner struct {
	file *token.File
	src  []byte

	ch       rune // current character, or -1 at EOF
	offset   int  // offset of ch
	rdOffset int  // offset of the character after ch
}

// Init prepares s to scan src, which must have length file.Size().
func (s *Scanner) Init(file *token.File, src []byte) {
	s.file = file
	s.src = src
	s.ch = ' '
	s.offset = 0
	s.rdOffset = 0
	s.next()
}

// next advances s.ch to the next rune in src; s.ch == -1 at end of input.
func (s *Scanner) next() {
	if s.rdOffset < len(s.src) {
		s.offset = s.rdOffset
		if s.ch == '\n' {
			s.file.AddLine(s.offset)
		}
		r, w := rune(s.src[s.rdOffset]), 1
		if r >= utf8.RuneSelf {
			r, w = utf8.DecodeRune(s.src[s.rdOffset:])
		}
		s.rdOffset += w
		s.ch = r
	} else {
		s.offset = len(s.src)
		if s.ch == '\n' {
			s.file.AddLine(s.offset)
		}
		s.ch = -1
	}
}

func (s *Scanner) errf(offset int, format string, args ...any) error {
	return errors.Newf(s.file.Pos(offset), format, args...)
}

// skipWhitespace consumes whitespace and brace comments. A comment that
// reaches end-of-input before its closing '}' is a fatal lexical error;
// SNL comments do not nest.
func (s *Scanner) skipWhitespace() error {
	for {
		switch {
		case unicode.IsSpace(s.ch):
			s.next()
		case s.ch == '{':
			offs := s.offset
			s.next()
			for s.ch != '}' {
				if s.ch < 0 {
					return s.errf(offs, "unclosed comment")
				}
				s.next()
			}
			s.next() // consume '}'
		default:
			return nil
		}
	}
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func (s *Scanner) scanIdentifier() string {
	offs := s.offset
	for isLetter(s.ch) || isDigit(s.ch) {
		s.next()
	}
	return string(s.src[offs:s.offset])
}

func (s *Scanner) scanNumber() string {
	offs := s.offset
	for isDigit(s.ch) {
		s.next()
	}
	return string(s.src[offs:s.offset])
}

var singleCharTokens = map[rune]token.Token{
	'+': token.PLUS,
	'-': token.MINUS,
	'*': token.TIMES,
	'/': token.DIVIDE,
	'<': token.LT,
	'=': token.EQ,
	'(': token.LPAREN,
	')': token.RPAREN,
	'[': token.LBRACK,
	']': token.RBRACK,
	';': token.SEMI,
	',': token.COMMA,
}

// Scan returns the next token: its position, kind, and literal text. The
// text is the source spelling for identifiers, keywords, integer literals,
// ":=", "." and ".."; the enclosed character for a character literal; and
// "" for the other single-character punctuation and for EOF. At
// end-of-input Scan repeatedly returns (pos, token.EOF, ""). A non-nil
// error indicates a fatal lexical error (unclosed comment or an
// unrecognized character); the caller must stop scanning.
func (s *Scanner) Scan() (pos token.Pos, tok token.Token, lit string, err error) {
	if err := s.skipWhitespace(); err != nil {
		return token.NoPos, token.ILLEGAL, "", err
	}

	offset := s.offset
	pos = s.file.Pos(offset)

	switch ch := s.ch; {
	case ch == -1:
		return pos, token.EOF, "", nil

	case ch == '\'':
		s.next()
		if s.ch < 0 {
			return pos, token.ILLEGAL, "", s.errf(offset, "unterminated character literal")
		}
		enclosed := s.ch
		s.next()
		if s.ch != '\'' {
			return pos, token.ILLEGAL, "", s.errf(offset, "unterminated character literal")
		}
		s.next()
		return pos, token.CHARC, string(enclosed), nil

	case ch == ':':
		s.next()
		if s.ch == '=' {
			s.next()
			return pos, token.ASSIGN, ":=", nil
		}
		return pos, token.ILLEGAL, "", s.errf(offset, "unknown character %#U", ch)

	case ch == '.':
		s.next()
		if s.ch == '.' {
			s.next()
			return pos, token.RANGE, "..", nil
		}
		return pos, token.DOT, ".", nil

	case isLetter(ch):
		lit = s.scanIdentifier()
		tok = token.Lookup(lit)
		return pos, tok, lit, nil

	case isDigit(ch):
		lit = s.scanNumber()
		return pos, token.INTC, lit, nil

	default:
		if t, ok := singleCharTokens[ch]; ok {
			s.next()
			return pos, t, "", nil
		}
		s.next()
		return pos, token.ILLEGAL, "", s.errf(offset, "unknown character %#U", ch)
	}
}

// ScanAll tokenizes the whole file, including the trailing EOF, stopping at
// the first lexical error.
func ScanAll(file *token.File, src []byte) (positions []token.Pos, toks []token.Token, lits []string, err error) {
	var s Scanner
	s.Init(file, src)
	for {
		p, t, l, scanErr := s.Scan()
		if scanErr != nil {
			return positions, toks, lits, scanErr
		}
		positions = append(positions, p)
		toks = append(toks, t)
		lits = append(lits, l)
		if t == token.EOF {
			return positions, toks, lits, nil
		}
	}
}
