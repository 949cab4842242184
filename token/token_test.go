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

package token

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestLookup(t *testing.T) {
	cases := []struct {
		ident string
		want  Token
	}{
		{"program", PROGRAM},
		{"procedure", PROCEDURE},
		{"if", IF},
		{"endwh", ENDWH},
		{"integer", INTEGER},
		{"x", ID},
		{"Program", ID}, // keywords are lower-case only
	}
	for _, c := range cases {
		qt.Assert(t, qt.Equals(Lookup(c.ident), c.want))
	}
}

func TestTokenString(t *testing.T) {
	qt.Assert(t, qt.Equals(ASSIGN.String(), ":="))
	qt.Assert(t, qt.Equals(EOF.String(), "EOF"))
	qt.Assert(t, qt.Equals(ID.String(), "ID"))
}

func TestIsKeyword(t *testing.T) {
	qt.Assert(t, qt.IsTrue(WHILE.IsKeyword()))
	qt.Assert(t, qt.IsFalse(ID.IsKeyword()))
	qt.Assert(t, qt.IsFalse(PLUS.IsKeyword()))
}

func TestIsOperator(t *testing.T) {
	qt.Assert(t, qt.IsTrue(ASSIGN.IsOperator()))
	qt.Assert(t, qt.IsFalse(IF.IsOperator()))
}
