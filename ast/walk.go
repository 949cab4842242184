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

package ast

import "fmt"

// Visitor's Before method is invoked for each node Walk encounters. If the
// returned Visitor w is non-nil, Walk visits each child of node with w,
// followed by a call to w.After.
type Visitor interface {
	Before(node Node) (w Visitor)
	After(node Node)
}

// Walk traverses an AST in depth-first preorder, starting at node.
func Walk(node Node, v Visitor) {
	w := v.Before(node)
	if w == nil {
		return
	}
	defer w.After(node)

	switch n := node.(type) {
	case *File:
		if n.Types != nil {
			Walk(n.Types, w)
		}
		if n.Vars != nil {
			Walk(n.Vars, w)
		}
		for _, p := range n.Procs {
			Walk(p, w)
		}
		Walk(n.Body, w)

	case *TypeDeclBlock:
		for _, d := range n.Decls {
			Walk(d, w)
		}
	case *TypeDecl:
		Walk(n.Type, w)

	case *VarDeclBlock:
		for _, g := range n.Groups {
			Walk(g, w)
		}
	case *VarDeclGroup:
		Walk(n.Type, w)
		for _, id := range n.Names {
			Walk(id, w)
		}

	case *ProcDecl:
		if n.Params != nil {
			Walk(n.Params, w)
		}
		if n.Types != nil {
			Walk(n.Types, w)
		}
		if n.Vars != nil {
			Walk(n.Vars, w)
		}
		Walk(n.Body, w)
	case *ParamList:
		for _, g := range n.Groups {
			Walk(g, w)
		}
	case *ParamGroup:
		Walk(n.Type, w)
		for _, id := range n.Names {
			Walk(id, w)
		}

	case *IntegerType, *CharType, *NamedType:
		// leaf type expressions

	case *ArrayType:
		Walk(n.Low, w)
		Walk(n.High, w)
		Walk(n.Elem, w)
	case *RecordType:
		for _, f := range n.Fields {
			Walk(f, w)
		}

	case *StmtList:
		for _, s := range n.List {
			Walk(s, w)
		}
	case *AssignStmt:
		Walk(n.Lhs, w)
		Walk(n.Rhs, w)
	case *IfStmt:
		Walk(n.Cond, w)
		Walk(n.Then, w)
		Walk(n.Else, w)
	case *WhileStmt:
		Walk(n.Cond, w)
		Walk(n.Body, w)
	case *ReadStmt:
		Walk(n.Var, w)
	case *WriteStmt:
		Walk(n.Arg, w)
	case *CallStmt:
		Walk(n.Proc, w)
		for _, a := range n.Args {
			Walk(a, w)
		}

	case *BinOp:
		Walk(n.X, w)
		Walk(n.Y, w)
	case *ArrayAccess:
		Walk(n.Base, w)
		Walk(n.Index, w)
	case *FieldAccess:
		Walk(n.Base, w)
	case *IntConst, *Ident:
		// leaves

	default:
		panic(fmt.Sprintf("ast.Walk: unexpected node type %T", n))
	}
}

// Inspect is a convenience wrapper around Walk for callers that only need
// a pre-order callback; f is called for every node, and traversal into a
// node's children is skipped whenever f returns false.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, inspector(f))
}

type inspector func(Node) bool

func (f inspector) Before(n Node) Visitor {
	if f(n) {
		return f
	}
	return nil
}

func (f inspector) After(Node) {}
