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

// Package analysis implements the SNL semantic analyzer: a symbol-table
// driven walk that resolves type aliases, lays out storage offsets per
// scope, checks declaration uniqueness, and verifies expression and
// statement typing, including by-value versus by-reference parameter
// passing.
//
// Analysis never stops at the first problem. Every violation appends one
// message to the Result's Errors and degrades the offending expression to
// types.Unknown, which then absorbs further errors silently as it
// propagates upward.
package analysis

import (
	"fmt"
	"sort"

	"github.com/snl-lang/snl/ast"
	"github.com/snl-lang/snl/errors"
	"github.com/snl-lang/snl/symtab"
	"github.com/snl-lang/snl/types"
)

// Access distinguishes whether an expression is being evaluated for its
// value or for its address (an assignable location).
type Access int

const (
	Value Access = iota
	Address
)

// Result is the outcome of analyzing one program: every symbol table
// entry created, the accumulated semantic errors, and a listing trace
// with scope snapshots inserted at the points the specification names.
type Result struct {
	Entries []*symtab.Entry
	Errors  errors.List
	Listing []string
}

type analyzer struct {
	table   *symtab.Table
	errs    errors.List
	listing []string

	integerType types.Type
	charType    types.Type
	booleanType types.Type
}

// Analyze walks file and returns the populated symbol table, the
// accumulated diagnostics, and the listing trace.
func Analyze(file *ast.File) *Result {
	a := &analyzer{table: symtab.New()}
	a.initPredefinedTypes()
	a.analyzeProgram(file)
	a.snapshot("end of analysis")

	if n := a.errs.Len(); n > 0 {
		a.listing = append(a.listing, fmt.Sprintf("%d semantic errors", n))
	} else {
		a.listing = append(a.listing, "completed without errors")
	}

	return &Result{Entries: a.table.All(), Errors: a.errs, Listing: a.listing}
}

func (a *analyzer) errAt(n ast.Node, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.errs.AddNewf(n.Pos(), "%s (%s)", msg, ast.Label(n))
	a.listing = append(a.listing, fmt.Sprintf("error: %s: %s (%s)", n.Pos(), msg, ast.Label(n)))
}

func (a *analyzer) note(format string, args ...any) {
	a.listing = append(a.listing, fmt.Sprintf(format, args...))
}

// ----------------------------------------------------------------------------
// Pre-walk and program structure

func (a *analyzer) initPredefinedTypes() {
	a.integerType = types.Integer
	a.charType = types.Char
	a.booleanType = types.Boolean

	a.table.Insert("integer", symtab.KindType, a.integerType, 0)
	a.table.Insert("char", symtab.KindType, a.charType, 0)
	a.table.Insert("boolean", symtab.KindType, a.booleanType, 0)
	a.snapshot("after predefined types")
}

func (a *analyzer) analyzeProgram(file *ast.File) {
	a.table.Insert(file.Name, symtab.KindProgram, types.Program, 0)
	a.note("--- Beginning of semantic analysis ---")

	if file.Types != nil {
		a.analyzeTypeDecls(file.Types)
	}
	if file.Vars != nil {
		a.analyzeVarDecls(file.Vars)
	}
	for _, proc := range file.Procs {
		a.analyzeProcDecl(proc)
	}
	a.analyzeStmtList(file.Body)
}

func (a *analyzer) snapshot(label string) {
	a.listing = append(a.listing, fmt.Sprintf("--- scope snapshot: %s ---", label))
	for _, snap := range a.table.Snapshots() {
		a.listing = append(a.listing, fmt.Sprintf("  level %d (next offset: %d)", snap.Level, snap.NextOffset))
		for _, e := range snap.Entries {
			a.listing = append(a.listing, "    "+formatEntry(e))
		}
	}
}

// ----------------------------------------------------------------------------
// Type declarations

func (a *analyzer) analyzeTypeDecls(block *ast.TypeDeclBlock) {
	for _, d := range block.Decls {
		if _, ok := a.table.LookupLocal(d.Name); ok {
			a.errAt(d, "redeclared type %q", d.Name)
			continue
		}
		resolved := a.resolveTypeName(d.Type)
		if resolved == types.Unknown {
			a.errAt(d, "unresolved type for %q", d.Name)
			continue
		}
		a.table.Insert(d.Name, symtab.KindType, &types.Alias{Name: d.Name, Underlying: resolved}, 0)
	}
	a.snapshot("after TypeDecls")
}

// resolveTypeName implements TypeName resolution: integer/char map to the
// shared primitives, a bare identifier must name a kind-Type entry, array
// bounds must be literal integers with low <= high, and record fields are
// resolved in a transient scope that detects duplicate field names and
// whose offset counter assigns each field's offset.
func (a *analyzer) resolveTypeName(t ast.TypeExpr) types.Type {
	switch x := t.(type) {
	case *ast.IntegerType:
		return a.integerType
	case *ast.CharType:
		return a.charType
	case *ast.NamedType:
		e, ok := a.table.Lookup(x.Name)
		if !ok {
			a.errAt(x, "undeclared type %q", x.Name)
			return types.Unknown
		}
		if e.Kind != symtab.KindType {
			a.errAt(x, "%q is not a type", x.Name)
			return types.Unknown
		}
		return e.Type
	case *ast.ArrayType:
		if x.Low.Value > x.High.Value {
			a.errAt(x, "array low bound %d exceeds high bound %d", x.Low.Value, x.High.Value)
			return types.Unknown
		}
		elem := a.resolveTypeName(x.Elem)
		if elem == types.Unknown {
			return types.Unknown
		}
		return &types.Array{Low: x.Low.Value, High: x.High.Value, Elem: elem}
	case *ast.RecordType:
		return a.resolveRecordType(x)
	default:
		a.errAt(t, "internal error: unhandled type expression")
		return types.Unknown
	}
}

func (a *analyzer) resolveRecordType(x *ast.RecordType) types.Type {
	a.table.Push()
	defer a.table.Pop()

	rec := &types.Record{}
	for _, group := range x.Fields {
		fieldType := a.resolveTypeName(group.Type)
		size := types.Size(fieldType)
		if fieldType == types.Unknown || size == 0 {
			a.errAt(group, "zero-sized or unresolved field type")
			continue
		}
		for _, id := range group.Names {
			if _, ok := a.table.LookupLocal(id.Name); ok {
				a.errAt(id, "redeclared field %q", id.Name)
				continue
			}
			offset := a.table.NextOffset()
			a.table.Insert(id.Name, symtab.KindField, fieldType, size)
			rec.Fields = append(rec.Fields, types.Field{Name: id.Name, Type: fieldType, Offset: offset})
		}
	}
	return rec
}

// ----------------------------------------------------------------------------
// Variable declarations

func (a *analyzer) analyzeVarDecls(block *ast.VarDeclBlock) {
	for _, group := range block.Groups {
		a.analyzeVarDeclGroup(group)
	}
	a.snapshot("after VarDecls")
}

func (a *analyzer) analyzeVarDeclGroup(group *ast.VarDeclGroup) {
	typ := a.resolveTypeName(group.Type)
	if !isStorableType(typ) {
		a.errAt(group, "variable declaration has forbidden or zero-sized type")
		return
	}
	size := types.Size(typ)
	for _, id := range group.Names {
		if _, ok := a.table.LookupLocal(id.Name); ok {
			a.errAt(id, "redeclared variable %q", id.Name)
			continue
		}
		a.table.Insert(id.Name, symtab.KindVariable, typ, size)
	}
}

func isStorableType(t types.Type) bool {
	if t == types.Unknown || t == types.Program {
		return false
	}
	switch types.Base(t).(type) {
	case *types.Proc:
		return false
	}
	return types.Size(t) > 0
}

// ----------------------------------------------------------------------------
// Procedures

func (a *analyzer) analyzeProcDecl(d *ast.ProcDecl) {
	if _, ok := a.table.LookupLocal(d.Name); ok {
		a.errAt(d, "redeclared procedure %q", d.Name)
		return
	}
	entry := a.table.Insert(d.Name, symtab.KindProcedure, &types.Proc{}, 0)

	a.table.Push()
	sig := &types.Proc{}
	if d.Params != nil {
		for _, group := range d.Params.Groups {
			a.analyzeParamGroup(group, sig)
		}
	}
	entry.Signature = sig
	entry.Type = sig
	a.snapshot(fmt.Sprintf("after parameters of %q", d.Name))

	if d.Types != nil {
		a.analyzeTypeDecls(d.Types)
	}
	if d.Vars != nil {
		a.analyzeVarDecls(d.Vars)
	}
	a.analyzeStmtList(d.Body)

	a.snapshot(fmt.Sprintf("before popping scope of %q", d.Name))
	a.table.Pop()
}

func (a *analyzer) analyzeParamGroup(group *ast.ParamGroup, sig *types.Proc) {
	typ := a.resolveTypeName(group.Type)
	if typ == types.Unknown {
		return
	}
	kind := symtab.KindValueParam
	units := types.Size(typ)
	if group.IsVar {
		kind = symtab.KindVarParam
		units = 1
	}
	for _, id := range group.Names {
		if _, ok := a.table.LookupLocal(id.Name); ok {
			a.errAt(id, "redeclared parameter %q", id.Name)
			continue
		}
		a.table.Insert(id.Name, kind, typ, units)
		sig.Params = append(sig.Params, types.Param{Name: id.Name, Type: typ, IsVarRef: group.IsVar})
	}
}

// ----------------------------------------------------------------------------
// Statements

func (a *analyzer) analyzeStmtList(list *ast.StmtList) {
	for _, s := range list.List {
		a.analyzeStmt(s)
	}
}

func (a *analyzer) analyzeStmt(s ast.Stmt) {
	switch x := s.(type) {
	case *ast.AssignStmt:
		a.analyzeAssign(x)
	case *ast.IfStmt:
		a.analyzeIf(x)
	case *ast.WhileStmt:
		a.analyzeWhile(x)
	case *ast.ReadStmt:
		a.analyzeRead(x)
	case *ast.WriteStmt:
		a.analyzeWrite(x)
	case *ast.CallStmt:
		a.analyzeCall(x)
	default:
		a.errAt(s, "internal error: unhandled statement")
	}
}

func (a *analyzer) analyzeAssign(s *ast.AssignStmt) {
	lhs := a.typeOf(s.Lhs, Address)
	rhs := a.typeOf(s.Rhs, Value)
	if lhs == types.Unknown || rhs == types.Unknown {
		return
	}
	if !types.Equal(lhs, rhs) {
		a.errAt(s, "type mismatch in assignment")
	}
}

func (a *analyzer) analyzeIf(s *ast.IfStmt) {
	cond := a.typeOf(s.Cond, Value)
	if cond != types.Unknown && !types.Equal(cond, a.booleanType) {
		a.errAt(s, "If condition must be Boolean")
	}
	a.analyzeStmtList(s.Then)
	a.analyzeStmtList(s.Else)
}

func (a *analyzer) analyzeWhile(s *ast.WhileStmt) {
	cond := a.typeOf(s.Cond, Value)
	if cond != types.Unknown && !types.Equal(cond, a.booleanType) {
		a.errAt(s, "While condition must be Boolean")
	}
	a.analyzeStmtList(s.Body)
}

func (a *analyzer) analyzeRead(s *ast.ReadStmt) {
	typ := a.typeOf(s.Var, Address)
	if typ == types.Unknown {
		return
	}
	base := types.Base(typ)
	if !types.Equal(base, a.integerType) && !types.Equal(base, a.charType) {
		a.errAt(s, "read target must be integer or char")
	}
}

func (a *analyzer) analyzeWrite(s *ast.WriteStmt) {
	typ := a.typeOf(s.Arg, Value)
	if typ == types.Unknown {
		return
	}
	base := types.Base(typ)
	if !types.Equal(base, a.integerType) && !types.Equal(base, a.charType) {
		a.errAt(s, "write argument must be integer or char")
	}
}

func (a *analyzer) analyzeCall(s *ast.CallStmt) {
	entry, ok := a.table.Lookup(s.Proc.Name)
	if !ok {
		a.errAt(s, "undeclared procedure %q", s.Proc.Name)
		return
	}
	if entry.Kind != symtab.KindProcedure {
		a.errAt(s, "%q is not a procedure", s.Proc.Name)
		return
	}
	sig := entry.Signature
	if sig == nil || len(sig.Params) != len(s.Args) {
		a.errAt(s, "arity mismatch calling %q", s.Proc.Name)
		return
	}
	for i, formal := range sig.Params {
		actual := s.Args[i]
		if formal.IsVarRef {
			v, ok := actual.(ast.Variable)
			if !ok {
				a.errAt(s, "cannot take address of a non-variable expression for var parameter")
				continue
			}
			actualType := a.typeOf(v, Address)
			if actualType != types.Unknown && !types.Equal(actualType, formal.Type) {
				a.errAt(s, "type mismatch passing %q to var parameter %q", exprLabel(actual), formal.Name)
			}
		} else {
			actualType := a.typeOf(actual, Value)
			if actualType != types.Unknown && !types.Equal(actualType, formal.Type) {
				a.errAt(s, "type mismatch passing %q to parameter %q", exprLabel(actual), formal.Name)
			}
		}
	}
}

func exprLabel(e ast.Expr) string { return ast.Label(e) }

// ----------------------------------------------------------------------------
// Expression typing

// typeOf returns the type of e. access is Address only for the direct
// target of an assignment, read, or var-parameter call argument; every
// nested subexpression (an array index, a binary operand, the base of a
// field access) is always evaluated for Value.
func (a *analyzer) typeOf(e ast.Expr, access Access) types.Type {
	switch x := e.(type) {
	case *ast.IntConst:
		return a.integerType

	case *ast.Ident:
		entry, ok := a.table.Lookup(x.Name)
		if !ok {
			a.errAt(x, "undeclared identifier %s", x.Name)
			return types.Unknown
		}
		switch entry.Kind {
		case symtab.KindVariable, symtab.KindVarParam, symtab.KindField:
			return entry.Type
		case symtab.KindValueParam:
			if access == Address {
				a.errAt(x, "cannot take address of value parameter %q", x.Name)
			}
			return entry.Type
		default:
			a.errAt(x, "%q does not denote a value", x.Name)
			return types.Unknown
		}

	case *ast.ArrayAccess:
		baseType := a.typeOf(x.Base, Value)
		indexType := a.typeOf(x.Index, Value)
		if baseType == types.Unknown {
			return types.Unknown
		}
		arr, ok := types.Base(baseType).(*types.Array)
		if !ok {
			a.errAt(x, "indexed expression is not an array")
			return types.Unknown
		}
		if indexType != types.Unknown && !types.Equal(indexType, a.integerType) {
			a.errAt(x, "array index must be integer")
		}
		return arr.Elem

	case *ast.FieldAccess:
		baseType := a.typeOf(x.Base, Value)
		if baseType == types.Unknown {
			return types.Unknown
		}
		rec, ok := types.Base(baseType).(*types.Record)
		if !ok {
			a.errAt(x, "selected expression is not a record")
			return types.Unknown
		}
		field, ok := rec.FieldByName(x.Field)
		if !ok {
			a.errAt(x, "record has no field %q", x.Field)
			return types.Unknown
		}
		return field.Type

	case *ast.BinOp:
		return a.typeOfBinOp(x)

	default:
		a.errAt(e, "internal error: unhandled expression")
		return types.Unknown
	}
}

func (a *analyzer) typeOfBinOp(x *ast.BinOp) types.Type {
	l := a.typeOf(x.X, Value)
	r := a.typeOf(x.Y, Value)
	if l == types.Unknown || r == types.Unknown {
		return types.Unknown
	}
	switch x.Op.String() {
	case "+", "-", "*", "/":
		if !types.Equal(l, a.integerType) || !types.Equal(r, a.integerType) {
			a.errAt(x, "arithmetic operands must be integer")
			return types.Unknown
		}
		return a.integerType
	case "<", "=":
		lb, rb := types.Base(l), types.Base(r)
		if !types.Equal(lb, rb) {
			a.errAt(x, "comparison operands must have the same type")
			return types.Unknown
		}
		if !types.Equal(lb, a.integerType) && !types.Equal(lb, a.charType) {
			a.errAt(x, "comparison operands must be integer or char")
			return types.Unknown
		}
		return a.booleanType
	default:
		a.errAt(x, "internal error: unknown operator %s", x.Op)
		return types.Unknown
	}
}

// ----------------------------------------------------------------------------
// Symbol-table textual form

// formatEntry renders one row in the fixed-width symbol-table layout:
// Name | Kind | Type | Lvl | Offset | Params/Details.
func formatEntry(e *symtab.Entry) string {
	details := ""
	if e.Kind == symtab.KindProcedure && e.Signature != nil {
		details = "Params(" + paramList(e.Signature) + ")"
	}
	return fmt.Sprintf("%-15s | %-15s | %-60s | L%-3d | Offs %-5d | %s",
		e.Name, e.Kind, typeString(e.Type), e.Level, e.Offset, details)
}

func typeString(t types.Type) string {
	if t == nil {
		return ""
	}
	return t.String()
}

func paramList(sig *types.Proc) string {
	s := ""
	for i, p := range sig.Params {
		if i > 0 {
			s += ", "
		}
		if p.IsVarRef {
			s += "var "
		}
		s += p.Name + ": " + p.Type.String()
	}
	return s
}

// FormatSymbolTable renders every entry in a Result using the fixed-width
// textual form specified for the symbol-table view.
func FormatSymbolTable(entries []*symtab.Entry) []string {
	lines := make([]string, 0, len(entries))
	header := fmt.Sprintf("%-15s | %-15s | %-60s | %-4s | %-10s | %s",
		"Name", "Kind", "Type", "Lvl", "Offset", "Params/Details")
	lines = append(lines, header)
	sorted := make([]*symtab.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Level < sorted[j].Level })
	for _, e := range sorted {
		lines = append(lines, formatEntry(e))
	}
	return lines
}
