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

// Package errors defines the shared error type used across the lexer,
// parser, and semantic analyzer.
package errors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/snl-lang/snl/token"
)

// Error is the common diagnostic type produced by all three compiler
// phases. Lexical and syntax errors are fatal: the phase stops after
// the first one. Semantic errors are not: they accumulate in a List.
type Error interface {
	Position() token.Pos
	Error() string
	Msg() (format string, args []any)
}

var _ Error = (*posError)(nil)

type posError struct {
	pos    token.Pos
	format string
	args   []any
}

func (e *posError) Position() token.Pos       { return e.pos }
func (e *posError) Msg() (string, []any)      { return e.format, e.args }
func (e *posError) Error() string             { return fmt.Sprintf(e.format, e.args...) }

// Newf creates an Error with the given position and formatted message.
func Newf(p token.Pos, format string, args ...any) Error {
	return &posError{pos: p, format: format, args: args}
}

// List is an accumulating, ordered collection of Errors. The zero value
// is an empty list ready to use. Semantic analysis appends to a List
// instead of stopping at the first problem; lexing and parsing instead
// return a single Error (or wrap it in a one-element List) since those
// phases are fatal on the first error.
type List []Error

// AddNewf appends a new Error built from pos, format and args.
func (l *List) AddNewf(pos token.Pos, format string, args ...any) {
	*l = append(*l, &posError{pos: pos, format: format, args: args})
}

// Add appends err to the list.
func (l *List) Add(err Error) { *l = append(*l, err) }

// Len reports the number of accumulated errors.
func (l List) Len() int { return len(l) }

// Sort orders the list by source position, then by message text.
func (l List) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		if c := l[i].Position().Compare(l[j].Position()); c != 0 {
			return c < 0
		}
		return l[i].Error() < l[j].Error()
	})
}

// Err returns an error value equivalent to the list, or nil if it is empty.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Error implements the error interface by joining every message on its
// own line, prefixed with its position.
func (l List) Error() string {
	var b strings.Builder
	for i, e := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		if p := e.Position(); p.IsValid() {
			fmt.Fprintf(&b, "%s: %s", p, e.Error())
		} else {
			b.WriteString(e.Error())
		}
	}
	return b.String()
}

// Strings renders each error on its own line as "pos: message", the form
// used for the Report.Errors textual output.
func (l List) Strings() []string {
	out := make([]string, len(l))
	for i, e := range l {
		if p := e.Position(); p.IsValid() {
			out[i] = fmt.Sprintf("%s: %s", p, e.Error())
		} else {
			out[i] = e.Error()
		}
	}
	return out
}
