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

// Package ast declares the types used to represent SNL syntax trees. Each
// grammar production gets its own concrete type instead of a single
// tag-and-value node, so the compiler can verify that every case of a
// traversal is handled.
package ast

import "github.com/snl-lang/snl/token"

// A Node is any element of an SNL syntax tree.
type Node interface {
	Pos() token.Pos // position of the first character belonging to the node
	End() token.Pos // position immediately after the node
}

// A Decl is a declaration appearing in a TypeDecls or VarDecls block, or
// in a procedure's parameter list.
type Decl interface {
	Node
	declNode()
}

// A Stmt is any statement inside a Body.
type Stmt interface {
	Node
	stmtNode()
}

// An Expr is any expression.
type Expr interface {
	Node
	exprNode()
}

// A Variable is the subset of Expr that denotes an assignable location:
// a bare identifier, or an identifier followed by array and/or field
// accessors. Read and assignment targets are always a Variable.
type Variable interface {
	Expr
	variableNode()
}

// A TypeExpr names or constructs a type in source syntax, as opposed to
// the resolved types.Type the analyzer produces from it.
type TypeExpr interface {
	Node
	typeExprNode()
}

func (*TypeDecl) declNode()    {}
func (*VarDeclGroup) declNode() {}
func (*ParamGroup) declNode()  {}

func (*AssignStmt) stmtNode() {}
func (*IfStmt) stmtNode()     {}
func (*WhileStmt) stmtNode()  {}
func (*ReadStmt) stmtNode()   {}
func (*WriteStmt) stmtNode()  {}
func (*CallStmt) stmtNode()   {}

func (*BinOp) exprNode()      {}
func (*IntConst) exprNode()   {}
func (*Ident) exprNode()      {}
func (*ArrayAccess) exprNode() {}
func (*FieldAccess) exprNode() {}

func (*Ident) variableNode()       {}
func (*ArrayAccess) variableNode() {}
func (*FieldAccess) variableNode() {}

func (*IntegerType) typeExprNode() {}
func (*CharType) typeExprNode()    {}
func (*NamedType) typeExprNode()   {}
func (*ArrayType) typeExprNode()   {}
func (*RecordType) typeExprNode()  {}

// ----------------------------------------------------------------------------
// Program (the root)

// A File is the root of an SNL program: tag Program in the design grammar.
type File struct {
	ProgramPos token.Pos
	Name       string
	NamePos    token.Pos
	Types      *TypeDeclBlock // nil if the program has no type section
	Vars       *VarDeclBlock  // nil if the program has no var section
	Procs      []*ProcDecl
	Body       *StmtList
	Period     token.Pos
}

func (f *File) Pos() token.Pos { return f.ProgramPos }
func (f *File) End() token.Pos { return f.Period.Add(1) }

// ----------------------------------------------------------------------------
// Type declarations

// TypeDeclBlock is the 'type { ... }' section: tag TypeDecls.
type TypeDeclBlock struct {
	TypePos token.Pos
	Decls   []*TypeDecl
}

func (d *TypeDeclBlock) Pos() token.Pos { return d.TypePos }
func (d *TypeDeclBlock) End() token.Pos {
	if n := len(d.Decls); n > 0 {
		return d.Decls[n-1].End()
	}
	return d.TypePos.Add(len("type"))
}

// TypeDecl is a single 'ID = TypeName ;' entry: tag Decl, used inside
// TypeDecls.
type TypeDecl struct {
	NamePos token.Pos
	Name    string
	Type    TypeExpr
	Semi    token.Pos
}

func (d *TypeDecl) Pos() token.Pos { return d.NamePos }
func (d *TypeDecl) End() token.Pos { return d.Semi.Add(1) }

// ----------------------------------------------------------------------------
// Variable declarations

// VarDeclBlock is the 'var { ... }' section: tag VarDecls.
type VarDeclBlock struct {
	VarPos token.Pos
	Groups []*VarDeclGroup
}

func (d *VarDeclBlock) Pos() token.Pos { return d.VarPos }
func (d *VarDeclBlock) End() token.Pos {
	if n := len(d.Groups); n > 0 {
		return d.Groups[n-1].End()
	}
	return d.VarPos.Add(len("var"))
}

// VarDeclGroup is a single 'TypeName IdList ;' group: tag Decl, used
// inside VarDecls, and reused (without Semi) as a RecordType field group.
type VarDeclGroup struct {
	Type  TypeExpr
	Names []*Ident
	Semi  token.Pos // zero Pos when used as a record field group
}

func (d *VarDeclGroup) Pos() token.Pos { return d.Type.Pos() }
func (d *VarDeclGroup) End() token.Pos {
	if d.Semi.IsValid() {
		return d.Semi.Add(1)
	}
	if n := len(d.Names); n > 0 {
		return d.Names[n-1].End()
	}
	return d.Type.End()
}

// ----------------------------------------------------------------------------
// Procedures

// ProcDecl is a 'procedure ID ( ParamList ) ; ... Body' declaration: tag
// ProcDecl.
type ProcDecl struct {
	ProcPos token.Pos
	Name    string
	NamePos token.Pos
	Params  *ParamList // nil if the parameter list is empty
	Types   *TypeDeclBlock
	Vars    *VarDeclBlock
	Body    *StmtList
}

func (d *ProcDecl) Pos() token.Pos { return d.ProcPos }
func (d *ProcDecl) End() token.Pos { return d.Body.End() }

// ParamList is the procedure's formal parameter list: tag ParamList.
type ParamList struct {
	Groups []*ParamGroup
}

func (p *ParamList) Pos() token.Pos {
	if len(p.Groups) > 0 {
		return p.Groups[0].Pos()
	}
	return token.NoPos
}

func (p *ParamList) End() token.Pos {
	if n := len(p.Groups); n > 0 {
		return p.Groups[n-1].End()
	}
	return token.NoPos
}

// ParamGroup is a single '[var] TypeName IdList' group: tag Decl with a
// val/var passing-mode value.
type ParamGroup struct {
	VarPos token.Pos // valid iff the group is declared 'var'
	IsVar  bool
	Type   TypeExpr
	Names  []*Ident
}

func (p *ParamGroup) Pos() token.Pos {
	if p.IsVar {
		return p.VarPos
	}
	return p.Type.Pos()
}

func (p *ParamGroup) End() token.Pos {
	if n := len(p.Names); n > 0 {
		return p.Names[n-1].End()
	}
	return p.Type.End()
}

// ----------------------------------------------------------------------------
// Type expressions

// IntegerType is the predefined 'integer' type name: tag IntegerT.
type IntegerType struct{ ValuePos token.Pos }

func (t *IntegerType) Pos() token.Pos { return t.ValuePos }
func (t *IntegerType) End() token.Pos { return t.ValuePos.Add(len("integer")) }

// CharType is the predefined 'char' type name: tag CharT.
type CharType struct{ ValuePos token.Pos }

func (t *CharType) Pos() token.Pos { return t.ValuePos }
func (t *CharType) End() token.Pos { return t.ValuePos.Add(len("char")) }

// NamedType references a previously declared type by name: tag NamedT.
type NamedType struct {
	Name    string
	NamePos token.Pos
}

func (t *NamedType) Pos() token.Pos { return t.NamePos }
func (t *NamedType) End() token.Pos { return t.NamePos.Add(len(t.Name)) }

// ArrayType is 'array [ Low .. High ] of Elem': tag ArrayT.
type ArrayType struct {
	ArrayPos token.Pos
	Low      *IntConst
	High     *IntConst
	Elem     TypeExpr
}

func (t *ArrayType) Pos() token.Pos { return t.ArrayPos }
func (t *ArrayType) End() token.Pos { return t.Elem.End() }

// RecordType is 'record FieldDecList end': tag RecordT.
type RecordType struct {
	RecordPos token.Pos
	Fields    []*VarDeclGroup
	EndPos    token.Pos
}

func (t *RecordType) Pos() token.Pos { return t.RecordPos }
func (t *RecordType) End() token.Pos { return t.EndPos.Add(len("end")) }

// ----------------------------------------------------------------------------
// Statements

// StmtList is a ';'-separated sequence of statements: tag StmtList. It may
// be empty, as produced for an omitted 'else' branch or an empty body.
type StmtList struct {
	Lbrace token.Pos // position of 'begin', or NoPos when synthesized
	List   []Stmt
	Rbrace token.Pos // position of 'end', or NoPos when synthesized
}

func (s *StmtList) Pos() token.Pos {
	if s.Lbrace.IsValid() {
		return s.Lbrace
	}
	if len(s.List) > 0 {
		return s.List[0].Pos()
	}
	return token.NoPos
}

func (s *StmtList) End() token.Pos {
	if s.Rbrace.IsValid() {
		return s.Rbrace.Add(len("end"))
	}
	if n := len(s.List); n > 0 {
		return s.List[n-1].End()
	}
	return token.NoPos
}

// AssignStmt is 'Variable := Exp': tag AssignStmt.
type AssignStmt struct {
	Lhs    Variable
	Assign token.Pos
	Rhs    Expr
}

func (s *AssignStmt) Pos() token.Pos { return s.Lhs.Pos() }
func (s *AssignStmt) End() token.Pos { return s.Rhs.End() }

// IfStmt is 'if Exp then StmtList [else StmtList] fi': tag IfStmt. Else is
// never nil; an omitted else-branch is represented as an empty StmtList so
// that IfStmt always carries exactly two branches.
type IfStmt struct {
	IfPos token.Pos
	Cond  Expr
	Then  *StmtList
	Else  *StmtList
	FiPos token.Pos
}

func (s *IfStmt) Pos() token.Pos { return s.IfPos }
func (s *IfStmt) End() token.Pos { return s.FiPos.Add(len("fi")) }

// WhileStmt is 'while Exp do StmtList endwh': tag WhileStmt, a supplemented
// production absent from the base grammar but reserved by the lexicon.
type WhileStmt struct {
	WhilePos token.Pos
	Cond     Expr
	Body     *StmtList
	EndwhPos token.Pos
}

func (s *WhileStmt) Pos() token.Pos { return s.WhilePos }
func (s *WhileStmt) End() token.Pos { return s.EndwhPos.Add(len("endwh")) }

// ReadStmt is 'read ( ID )': tag ReadStmt. The target is a plain *Ident
// held as a Variable rather than a wrapped expression.
type ReadStmt struct {
	ReadPos token.Pos
	Var     Variable
	Rparen  token.Pos
}

func (s *ReadStmt) Pos() token.Pos { return s.ReadPos }
func (s *ReadStmt) End() token.Pos { return s.Rparen.Add(1) }

// WriteStmt is 'write ( Exp )': tag WriteStmt.
type WriteStmt struct {
	WritePos token.Pos
	Arg      Expr
	Rparen   token.Pos
}

func (s *WriteStmt) Pos() token.Pos { return s.WritePos }
func (s *WriteStmt) End() token.Pos { return s.Rparen.Add(1) }

// CallStmt is 'ID ( [Exp {, Exp}] )': tags ProcId and ArgList combined.
type CallStmt struct {
	Proc   *Ident
	Lparen token.Pos
	Args   []Expr
	Rparen token.Pos
}

func (s *CallStmt) Pos() token.Pos { return s.Proc.Pos() }
func (s *CallStmt) End() token.Pos { return s.Rparen.Add(1) }

// ----------------------------------------------------------------------------
// Expressions

// BinOp is a binary operator application: tag BinOp.
type BinOp struct {
	X     Expr
	Op    token.Token
	OpPos token.Pos
	Y     Expr
}

func (e *BinOp) Pos() token.Pos { return e.X.Pos() }
func (e *BinOp) End() token.Pos { return e.Y.End() }

// IntConst is an integer literal: tag IntConst.
type IntConst struct {
	ValuePos token.Pos
	Value    int
	Lit      string
}

func (e *IntConst) Pos() token.Pos { return e.ValuePos }
func (e *IntConst) End() token.Pos { return e.ValuePos.Add(len(e.Lit)) }

// Ident is a bare identifier reference: tag IdRef, also used for a
// procedure's name (ProcId) and for plain names in an IdList.
type Ident struct {
	NamePos token.Pos
	Name    string
}

func (e *Ident) Pos() token.Pos { return e.NamePos }
func (e *Ident) End() token.Pos { return e.NamePos.Add(len(e.Name)) }

// ArrayAccess is 'Variable [ Exp ]': tag ArrayAccess.
type ArrayAccess struct {
	Base   Variable
	Lbrack token.Pos
	Index  Expr
	Rbrack token.Pos
}

func (e *ArrayAccess) Pos() token.Pos { return e.Base.Pos() }
func (e *ArrayAccess) End() token.Pos { return e.Rbrack.Add(1) }

// FieldAccess is 'Variable . ID': tag FieldAccess.
type FieldAccess struct {
	Base     Variable
	Dot      token.Pos
	Field    string
	FieldPos token.Pos
}

func (e *FieldAccess) Pos() token.Pos { return e.Base.Pos() }
func (e *FieldAccess) End() token.Pos { return e.FieldPos.Add(len(e.Field)) }
