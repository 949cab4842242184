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

// Package symtab implements the scoped symbol table: a stack of
// name-to-entry scopes with a parallel stack of next-free storage
// offsets, pushed and popped in lock-step.
package symtab

import "github.com/snl-lang/snl/types"

// Kind classifies a symbol table entry.
type Kind int

const (
	KindType Kind = iota
	KindVariable
	KindValueParam
	KindVarParam
	KindProcedure
	KindProgram
	KindField
)

func (k Kind) String() string {
	switch k {
	case KindType:
		return "Type"
	case KindVariable:
		return "Variable"
	case KindValueParam:
		return "ValueParam"
	case KindVarParam:
		return "VarParam"
	case KindProcedure:
		return "Procedure"
	case KindProgram:
		return "Program"
	case KindField:
		return "Field"
	default:
		return "?"
	}
}

// Entry is one symbol table row: a declared name together with its kind,
// type, lexical level, and storage offset. Signature is populated only
// for Procedure entries.
type Entry struct {
	Name      string
	Kind      Kind
	Type      types.Type
	Level     int
	Offset    int
	Signature *types.Proc
}

// scope is one level's name-to-entry mapping. A slice (not a map) keeps
// declaration order, which the listing and symbol-table views rely on.
type scope struct {
	entries []*Entry
}

func (s *scope) find(name string) (*Entry, bool) {
	for _, e := range s.entries {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// Table is a stack of scopes with a parallel stack of next-free offsets.
// Entries persist after their scope is popped; only the visibility stack
// collapses. Use New to obtain a Table with its level-0 scope open; the
// zero value has no open scope.
type Table struct {
	scopes  []*scope
	offsets []int
	all     []*Entry // every entry ever inserted, in insertion order
}

// New returns a Table with a single, empty scope at level 0.
func New() *Table {
	t := &Table{}
	t.Push()
	return t
}

// Push opens a new scope with its offset counter starting at 0.
func (t *Table) Push() {
	t.scopes = append(t.scopes, &scope{})
	t.offsets = append(t.offsets, 0)
}

// Pop closes the innermost scope. It panics if called with no open scope,
// since scope push/pop must always be balanced by the caller.
func (t *Table) Pop() {
	n := len(t.scopes)
	if n == 0 {
		panic("symtab: Pop of empty scope stack")
	}
	t.scopes = t.scopes[:n-1]
	t.offsets = t.offsets[:n-1]
}

// Level reports the current scope depth; 0 is global.
func (t *Table) Level() int { return len(t.scopes) - 1 }

// NextOffset reports the next free offset in the innermost scope.
func (t *Table) NextOffset() int { return t.offsets[len(t.offsets)-1] }

// Insert adds an entry for name in the innermost scope, at the current
// level. storageUnits is the number of offset units the entry consumes
// (0 for Type/Procedure/Program entries, type size for a Variable, a
// value parameter, or a record Field, 1 for a reference parameter). Insert does not
// check for redeclaration; callers consult Lookup or LookupLocal first so
// they can produce a tailored diagnostic.
func (t *Table) Insert(name string, kind Kind, typ types.Type, storageUnits int) *Entry {
	top := t.scopes[len(t.scopes)-1]
	offset := t.offsets[len(t.offsets)-1]
	e := &Entry{Name: name, Kind: kind, Type: typ, Level: t.Level(), Offset: offset}
	top.entries = append(top.entries, e)
	t.offsets[len(t.offsets)-1] += storageUnits
	t.all = append(t.all, e)
	return e
}

// LookupLocal reports whether name is already declared in the innermost
// scope, for redeclaration checks.
func (t *Table) LookupLocal(name string) (*Entry, bool) {
	return t.scopes[len(t.scopes)-1].find(name)
}

// Lookup searches from the innermost scope outward and returns the first
// match, or (nil, false) if name is undeclared anywhere live.
func (t *Table) Lookup(name string) (*Entry, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if e, ok := t.scopes[i].find(name); ok {
			return e, true
		}
	}
	return nil, false
}

// All returns every entry ever inserted, across all scopes, in insertion
// order; entries from popped scopes remain, per the specification's
// entry-lifecycle rule.
func (t *Table) All() []*Entry { return t.all }

// Snapshot captures one scope's live entries and its next-free offset,
// for the semantic analyzer's listing trace.
type Snapshot struct {
	Level      int
	NextOffset int
	Entries    []*Entry
}

// Snapshots returns a snapshot of every currently live scope, outermost
// first.
func (t *Table) Snapshots() []Snapshot {
	snaps := make([]Snapshot, len(t.scopes))
	for i, s := range t.scopes {
		snaps[i] = Snapshot{Level: i, NextOffset: t.offsets[i], Entries: s.entries}
	}
	return snaps
}
