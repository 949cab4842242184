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

// Package snl is the public entry point to the SNL compiler front end. It
// wires the lexer, parser, and semantic analyzer together behind three
// small functions and a Report type, the way a language's top-level
// package hides its internal pipeline behind a handful of verbs.
package snl

import (
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/snl-lang/snl/analysis"
	"github.com/snl-lang/snl/ast"
	"github.com/snl-lang/snl/scanner"
	"github.com/snl-lang/snl/symtab"
	"github.com/snl-lang/snl/token"

	"github.com/snl-lang/snl/parser"
)

// Tokens is the result of lexing a file: one entry per token, in source
// order, ending with token.EOF.
type Tokens struct {
	Positions []token.Pos
	Kinds     []token.Token
	Lits      []string
}

// Lex tokenizes src and returns every token through end-of-file, or the
// first fatal lexical error.
func Lex(filename string, src []byte) (*Tokens, error) {
	file := token.NewFile(filename, len(src))
	positions, kinds, lits, err := scanner.ScanAll(file, src)
	if err != nil {
		return nil, err
	}
	return &Tokens{Positions: positions, Kinds: kinds, Lits: lits}, nil
}

// Parse tokenizes and parses src, returning the resulting syntax tree or
// the first fatal lexical or syntax error.
func Parse(filename string, src []byte) (*ast.File, error) {
	return parser.ParseFile(filename, src)
}

// Report is the outcome of a full compile: the syntax tree's textual
// form, the populated symbol table, every accumulated semantic error, and
// the listing trace used for the text and YAML rendered views. A lexical
// or syntax error produces no Report at all.
type Report struct {
	RunID   string        `yaml:"run_id"`
	File    string        `yaml:"file"`
	Tree    string        `yaml:"ast,omitempty"`
	Symbols []SymbolEntry `yaml:"symbols,omitempty"`
	Errors  []string      `yaml:"errors,omitempty"`
	Listing []string      `yaml:"listing,omitempty"`
}

// SymbolEntry is the YAML-safe projection of a *symtab.Entry, used for the
// --format=yaml rendering of a compile Report.
type SymbolEntry struct {
	Name   string `yaml:"name"`
	Kind   string `yaml:"kind"`
	Type   string `yaml:"type"`
	Level  int    `yaml:"level"`
	Offset int    `yaml:"offset"`
}

// Analyze runs the full lex/parse/analyze pipeline over src and returns a
// Report stamped with a fresh run ID. Lexical and syntax errors are fatal
// and returned directly with no Report; semantic errors are collected
// into the returned Report instead of stopping analysis.
func Analyze(filename string, src []byte) (*Report, error) {
	f, err := Parse(filename, src)
	if err != nil {
		return nil, err
	}

	result := analysis.Analyze(f)
	runID := uuid.NewString()

	r := &Report{
		RunID:   runID,
		File:    filename,
		Tree:    ast.Fprint(f),
		Errors:  result.Errors.Strings(),
		Listing: append([]string{fmt.Sprintf("--- snl analysis %s ---", runID)}, result.Listing...),
	}
	for _, e := range result.Entries {
		r.Symbols = append(r.Symbols, toSymbolEntry(e))
	}
	return r, nil
}

func toSymbolEntry(e *symtab.Entry) SymbolEntry {
	typ := ""
	if e.Type != nil {
		typ = e.Type.String()
	}
	return SymbolEntry{
		Name:   e.Name,
		Kind:   e.Kind.String(),
		Type:   typ,
		Level:  e.Level,
		Offset: e.Offset,
	}
}

// YAML renders r in the structured form used by the CLI's --format=yaml
// flag.
func (r *Report) YAML() (string, error) {
	b, err := yaml.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Text renders r as the plain listing view used by the CLI's default
// --format=text flag: the run banner (the Listing's first line), the rest
// of the listing trace, and any semantic errors.
func (r *Report) Text() string {
	s := ""
	for _, l := range r.Listing {
		s += l + "\n"
	}
	for _, e := range r.Errors {
		s += "error: " + e + "\n"
	}
	return s
}
