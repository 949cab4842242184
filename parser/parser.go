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

// Package parser implements a recursive-descent parser for SNL. It
// produces an *ast.File rooted at the Program production, or a single
// fatal errors.Error: SNL's grammar calls for no error recovery, so the
// parser aborts at the first mismatched token, the way the teacher's
// scanner/parser pair aborts on the first lexical error.
package parser

import (
	"strconv"

	"github.com/snl-lang/snl/ast"
	"github.com/snl-lang/snl/errors"
	"github.com/snl-lang/snl/scanner"
	"github.com/snl-lang/snl/token"
)

// ParseFile parses the complete contents of src (named filename for
// diagnostics) and returns the resulting *ast.File, or the first lexical
// or syntax error encountered.
func ParseFile(filename string, src []byte) (f *ast.File, err error) {
	file := token.NewFile(filename, len(src))
	p := &parser{file: file}
	p.scanner.Init(file, src)

	defer func() {
		if r := recover(); r != nil {
			bail, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			err = bail.err
		}
	}()

	p.next()
	f = p.parseFile()
	return f, nil
}

// bailout unwinds the recursive-descent call stack back to ParseFile on
// the first fatal error, mirroring the panic/recover idiom the teacher's
// parser uses for its (much higher) error-count threshold.
type bailout struct{ err error }

type parser struct {
	file    *token.File
	scanner scanner.Scanner

	pos token.Pos
	tok token.Token
	lit string
}

func (p *parser) next() {
	pos, tok, lit, err := p.scanner.Scan()
	if err != nil {
		panic(bailout{err})
	}
	p.pos, p.tok, p.lit = pos, tok, lit
}

func (p *parser) errorf(format string, args ...any) {
	panic(bailout{errors.Newf(p.pos, format, args...)})
}

// expect consumes the current token if it matches tok, and fails
// otherwise with the "expected KIND[=VALUE] ... found (...)" message
// shape the specification mandates.
func (p *parser) expect(tok token.Token) token.Pos {
	pos := p.pos
	if p.tok != tok {
		p.errorExpected(tok.String())
	}
	p.next()
	return pos
}

func (p *parser) errorExpected(want string) {
	found := p.tok.String()
	if p.lit != "" {
		found = p.lit
	}
	p.errorf("expected %s at position %d, found (%s, %s)", want, p.file.Offset(p.pos), p.tok, found)
}

func (p *parser) expectIdent() (string, token.Pos) {
	if p.tok != token.ID {
		p.errorExpected("ID")
	}
	name, pos := p.lit, p.pos
	p.next()
	return name, pos
}

// ----------------------------------------------------------------------------
// Program

func (p *parser) parseFile() *ast.File {
	programPos := p.expect(token.PROGRAM)
	name, namePos := p.expectIdent()

	f := &ast.File{ProgramPos: programPos, Name: name, NamePos: namePos}

	if p.tok == token.TYPE {
		f.Types = p.parseTypeDecls()
	}
	if p.tok == token.VAR {
		f.Vars = p.parseVarDecls()
	}
	for p.tok == token.PROCEDURE {
		f.Procs = append(f.Procs, p.parseProcDecl())
	}
	f.Body = p.parseBody()
	f.Period = p.expect(token.DOT)
	p.expect(token.EOF)
	return f
}

// ----------------------------------------------------------------------------
// Type declarations

func (p *parser) parseTypeDecls() *ast.TypeDeclBlock {
	block := &ast.TypeDeclBlock{TypePos: p.expect(token.TYPE)}
	for p.tok == token.ID {
		block.Decls = append(block.Decls, p.parseTypeDecl())
	}
	return block
}

func (p *parser) parseTypeDecl() *ast.TypeDecl {
	name, namePos := p.expectIdent()
	p.expect(token.EQ)
	typ := p.parseTypeName()
	semi := p.expect(token.SEMI)
	return &ast.TypeDecl{NamePos: namePos, Name: name, Type: typ, Semi: semi}
}

// parseTypeName implements TypeName := 'integer' | 'char' | ID | ArrayT |
// RecordT. Array and record productions are a supplemented extension of
// the base grammar, matching what the analyzer already expects.
func (p *parser) parseTypeName() ast.TypeExpr {
	switch p.tok {
	case token.INTEGER:
		pos := p.pos
		p.next()
		return &ast.IntegerType{ValuePos: pos}
	case token.CHAR:
		pos := p.pos
		p.next()
		return &ast.CharType{ValuePos: pos}
	case token.ARRAY:
		return p.parseArrayType()
	case token.RECORD:
		return p.parseRecordType()
	case token.ID:
		name, pos := p.expectIdent()
		return &ast.NamedType{Name: name, NamePos: pos}
	default:
		p.errorExpected("type name")
		return nil
	}
}

func (p *parser) parseIntConst() *ast.IntConst {
	if p.tok != token.INTC {
		p.errorExpected("INTC")
	}
	pos, lit := p.pos, p.lit
	value, err := strconv.Atoi(lit)
	if err != nil {
		p.errorf("malformed integer literal %q at position %d", lit, p.file.Offset(pos))
	}
	p.next()
	return &ast.IntConst{ValuePos: pos, Value: value, Lit: lit}
}

func (p *parser) parseArrayType() *ast.ArrayType {
	arrayPos := p.expect(token.ARRAY)
	p.expect(token.LBRACK)
	low := p.parseIntConst()
	p.expect(token.RANGE)
	high := p.parseIntConst()
	p.expect(token.RBRACK)
	p.expect(token.OF)
	elem := p.parseTypeName()
	return &ast.ArrayType{ArrayPos: arrayPos, Low: low, High: high, Elem: elem}
}

func (p *parser) parseRecordType() *ast.RecordType {
	recordPos := p.expect(token.RECORD)
	rec := &ast.RecordType{RecordPos: recordPos}
	for p.tok != token.END {
		rec.Fields = append(rec.Fields, p.parseFieldGroup())
	}
	rec.EndPos = p.expect(token.END)
	return rec
}

// parseFieldGroup parses one 'TypeName IdList ;' group, shared in shape
// with a VarDecls group.
func (p *parser) parseFieldGroup() *ast.VarDeclGroup {
	typ := p.parseTypeName()
	names := p.parseIdList()
	semi := p.expect(token.SEMI)
	return &ast.VarDeclGroup{Type: typ, Names: names, Semi: semi}
}

func (p *parser) parseIdList() []*ast.Ident {
	var ids []*ast.Ident
	name, pos := p.expectIdent()
	ids = append(ids, &ast.Ident{Name: name, NamePos: pos})
	for p.tok == token.COMMA {
		p.next()
		name, pos := p.expectIdent()
		ids = append(ids, &ast.Ident{Name: name, NamePos: pos})
	}
	return ids
}

// ----------------------------------------------------------------------------
// Variable declarations

func (p *parser) parseVarDecls() *ast.VarDeclBlock {
	block := &ast.VarDeclBlock{VarPos: p.expect(token.VAR)}
	for p.tok != token.PROCEDURE && p.tok != token.BEGIN {
		block.Groups = append(block.Groups, p.parseVarDeclGroup())
	}
	return block
}

func (p *parser) parseVarDeclGroup() *ast.VarDeclGroup {
	typ := p.parseTypeName()
	names := p.parseIdList()
	semi := p.expect(token.SEMI)
	return &ast.VarDeclGroup{Type: typ, Names: names, Semi: semi}
}

// ----------------------------------------------------------------------------
// Procedures

func (p *parser) parseProcDecl() *ast.ProcDecl {
	procPos := p.expect(token.PROCEDURE)
	name, namePos := p.expectIdent()
	p.expect(token.LPAREN)
	var params *ast.ParamList
	if p.tok != token.RPAREN {
		params = p.parseParamList()
	}
	p.expect(token.RPAREN)
	p.expect(token.SEMI)

	d := &ast.ProcDecl{ProcPos: procPos, Name: name, NamePos: namePos, Params: params}
	if p.tok == token.TYPE {
		d.Types = p.parseTypeDecls()
	}
	if p.tok == token.VAR {
		d.Vars = p.parseVarDecls()
	}
	d.Body = p.parseBody()
	// A ';' after the procedure body is optional.
	if p.tok == token.SEMI {
		p.next()
	}
	return d
}

func (p *parser) parseParamList() *ast.ParamList {
	list := &ast.ParamList{}
	list.Groups = append(list.Groups, p.parseParamGroup())
	for p.tok == token.SEMI {
		p.next()
		list.Groups = append(list.Groups, p.parseParamGroup())
	}
	return list
}

func (p *parser) parseParamGroup() *ast.ParamGroup {
	g := &ast.ParamGroup{}
	if p.tok == token.VAR {
		g.IsVar = true
		g.VarPos = p.pos
		p.next()
	}
	g.Type = p.parseTypeName()
	g.Names = p.parseIdList()
	return g
}

// ----------------------------------------------------------------------------
// Statements

func (p *parser) parseBody() *ast.StmtList {
	lbrace := p.expect(token.BEGIN)
	list := p.parseStmtListUntil(token.END)
	list.Lbrace = lbrace
	list.Rbrace = p.expect(token.END)
	return list
}

// stmtListEnd reports whether tok can terminate a StmtList without
// introducing another Stmt.
func stmtListEnd(tok token.Token) bool {
	switch tok {
	case token.END, token.FI, token.ELSE, token.ENDWH:
		return true
	default:
		return false
	}
}

func (p *parser) parseStmtListUntil(end token.Token) *ast.StmtList {
	list := &ast.StmtList{}
	if stmtListEnd(p.tok) {
		return list
	}
	list.List = append(list.List, p.parseStmt())
	for p.tok == token.SEMI {
		p.next()
		list.List = append(list.List, p.parseStmt())
	}
	return list
}

func (p *parser) parseStmt() ast.Stmt {
	switch p.tok {
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.READ:
		return p.parseReadStmt()
	case token.WRITE:
		return p.parseWriteStmt()
	case token.ID:
		return p.parseAssignOrCall()
	default:
		p.errorExpected("statement")
		return nil
	}
}

func (p *parser) parseIfStmt() *ast.IfStmt {
	ifPos := p.expect(token.IF)
	cond := p.parseExp()
	p.expect(token.THEN)
	then := p.parseStmtListUntil(token.FI)
	var els *ast.StmtList
	if p.tok == token.ELSE {
		p.next()
		els = p.parseStmtListUntil(token.FI)
	} else {
		els = &ast.StmtList{}
	}
	fiPos := p.expect(token.FI)
	return &ast.IfStmt{IfPos: ifPos, Cond: cond, Then: then, Else: els, FiPos: fiPos}
}

func (p *parser) parseWhileStmt() *ast.WhileStmt {
	whilePos := p.expect(token.WHILE)
	cond := p.parseExp()
	p.expect(token.DO)
	body := p.parseStmtListUntil(token.ENDWH)
	endwhPos := p.expect(token.ENDWH)
	return &ast.WhileStmt{WhilePos: whilePos, Cond: cond, Body: body, EndwhPos: endwhPos}
}

func (p *parser) parseReadStmt() *ast.ReadStmt {
	readPos := p.expect(token.READ)
	p.expect(token.LPAREN)
	name, pos := p.expectIdent()
	v := &ast.Ident{Name: name, NamePos: pos}
	rparen := p.expect(token.RPAREN)
	return &ast.ReadStmt{ReadPos: readPos, Var: v, Rparen: rparen}
}

func (p *parser) parseWriteStmt() *ast.WriteStmt {
	writePos := p.expect(token.WRITE)
	p.expect(token.LPAREN)
	arg := p.parseExp()
	rparen := p.expect(token.RPAREN)
	return &ast.WriteStmt{WritePos: writePos, Arg: arg, Rparen: rparen}
}

// parseAssignOrCall disambiguates by one token of lookahead: an 'ID' is a
// procedure call iff immediately followed by '('.
func (p *parser) parseAssignOrCall() ast.Stmt {
	name, pos := p.expectIdent()
	if p.tok == token.LPAREN {
		lparen := p.pos
		p.next()
		var args []ast.Expr
		if p.tok != token.RPAREN {
			args = append(args, p.parseExp())
			for p.tok == token.COMMA {
				p.next()
				args = append(args, p.parseExp())
			}
		}
		rparen := p.expect(token.RPAREN)
		return &ast.CallStmt{Proc: &ast.Ident{Name: name, NamePos: pos}, Lparen: lparen, Args: args, Rparen: rparen}
	}

	lhs := p.parseVarTail(&ast.Ident{Name: name, NamePos: pos})
	assign := p.expect(token.ASSIGN)
	rhs := p.parseExp()
	return &ast.AssignStmt{Lhs: lhs, Assign: assign, Rhs: rhs}
}

// ----------------------------------------------------------------------------
// Variables and expressions

func (p *parser) parseVariable() ast.Variable {
	name, pos := p.expectIdent()
	return p.parseVarTail(&ast.Ident{Name: name, NamePos: pos})
}

// parseVarTail consumes the ({'['Exp']'} | '.'ID)* chain of accessors
// following a bare identifier.
func (p *parser) parseVarTail(base ast.Variable) ast.Variable {
	for {
		switch p.tok {
		case token.LBRACK:
			lbrack := p.pos
			p.next()
			index := p.parseExp()
			rbrack := p.expect(token.RBRACK)
			base = &ast.ArrayAccess{Base: base, Lbrack: lbrack, Index: index, Rbrack: rbrack}
		case token.DOT:
			dot := p.pos
			p.next()
			field, fieldPos := p.expectIdent()
			base = &ast.FieldAccess{Base: base, Dot: dot, Field: field, FieldPos: fieldPos}
		default:
			return base
		}
	}
}

func (p *parser) parseExp() ast.Expr {
	x := p.parseSimpleExp()
	if p.tok == token.LT || p.tok == token.EQ {
		op, opPos := p.tok, p.pos
		p.next()
		y := p.parseSimpleExp()
		x = &ast.BinOp{X: x, Op: op, OpPos: opPos, Y: y}
	}
	return x
}

func (p *parser) parseSimpleExp() ast.Expr {
	x := p.parseTerm()
	for p.tok == token.PLUS || p.tok == token.MINUS {
		op, opPos := p.tok, p.pos
		p.next()
		y := p.parseTerm()
		x = &ast.BinOp{X: x, Op: op, OpPos: opPos, Y: y}
	}
	return x
}

func (p *parser) parseTerm() ast.Expr {
	x := p.parseFactor()
	for p.tok == token.TIMES || p.tok == token.DIVIDE {
		op, opPos := p.tok, p.pos
		p.next()
		y := p.parseFactor()
		x = &ast.BinOp{X: x, Op: op, OpPos: opPos, Y: y}
	}
	return x
}

func (p *parser) parseFactor() ast.Expr {
	switch p.tok {
	case token.INTC:
		return p.parseIntConst()
	case token.LPAREN:
		p.next()
		x := p.parseExp()
		p.expect(token.RPAREN)
		return x
	case token.ID:
		return p.parseVariable()
	default:
		p.errorExpected("INTC, '(', or identifier")
		return nil
	}
}
