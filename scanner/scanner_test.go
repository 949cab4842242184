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

package scanner

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/snl-lang/snl/token"
)

func scanAll(t *testing.T, src string) ([]token.Token, []string) {
	t.Helper()
	file := token.NewFile("test.snl", len(src))
	_, toks, lits, err := ScanAll(file, []byte(src))
	qt.Assert(t, qt.IsNil(err))
	return toks, lits
}

func TestScanKeywordsAndPunctuation(t *testing.T) {
	toks, lits := scanAll(t, "program p; var integer x; begin x:=1 end.")
	qt.Assert(t, qt.DeepEquals(toks, []token.Token{
		token.PROGRAM, token.ID, token.SEMI,
		token.VAR, token.INTEGER, token.ID, token.SEMI,
		token.BEGIN, token.ID, token.ASSIGN, token.INTC, token.END, token.DOT,
		token.EOF,
	}))
	qt.Assert(t, qt.DeepEquals(lits, []string{
		"program", "p", "",
		"var", "integer", "x", "",
		"begin", "x", ":=", "1", "end", ".",
		"",
	}))
}

func TestScanKeywordLexemePreserved(t *testing.T) {
	toks, lits := scanAll(t, "if")
	qt.Assert(t, qt.DeepEquals(toks, []token.Token{token.IF, token.EOF}))
	qt.Assert(t, qt.Equals(lits[0], "if"))
}

func TestScanRangeVersusDot(t *testing.T) {
	toks, _ := scanAll(t, "1..2 . ")
	qt.Assert(t, qt.DeepEquals(toks, []token.Token{token.INTC, token.RANGE, token.INTC, token.DOT, token.EOF}))
}

func TestScanCharLiteral(t *testing.T) {
	toks, lits := scanAll(t, "'a'")
	qt.Assert(t, qt.DeepEquals(toks, []token.Token{token.CHARC, token.EOF}))
	qt.Assert(t, qt.Equals(lits[0], "a"))
}

func TestScanCommentsAreSkipped(t *testing.T) {
	toks, _ := scanAll(t, "{ this is a comment } program")
	qt.Assert(t, qt.DeepEquals(toks, []token.Token{token.PROGRAM, token.EOF}))
}

func TestScanUnclosedCommentIsFatal(t *testing.T) {
	file := token.NewFile("test.snl", len("{ oops"))
	_, _, _, err := ScanAll(file, []byte("{ oops"))
	qt.Assert(t, qt.ErrorMatches(err, ".*unclosed comment.*"))
}

func TestScanUnterminatedCharLiteral(t *testing.T) {
	file := token.NewFile("test.snl", len("'a"))
	_, _, _, err := ScanAll(file, []byte("'a"))
	qt.Assert(t, qt.ErrorMatches(err, ".*unterminated character literal.*"))
}

func TestScanUnknownCharacter(t *testing.T) {
	file := token.NewFile("test.snl", len("@"))
	_, _, _, err := ScanAll(file, []byte("@"))
	qt.Assert(t, qt.ErrorMatches(err, ".*unknown character.*"))
}

func TestScanLoneColonIsUnknownCharacter(t *testing.T) {
	src := "program p; begin x:1 end."
	file := token.NewFile("test.snl", len(src))
	_, _, _, err := ScanAll(file, []byte(src))
	qt.Assert(t, qt.ErrorMatches(err, ".*unknown character.*"))
}
