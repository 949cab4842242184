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

import (
	"fmt"
	"strconv"
	"strings"
)

// Fprint renders node as the depth-first preorder textual form described
// for the AST view: one node per line, two spaces of indentation per
// depth, "tag[ value]" where the value field is present only for nodes
// that carry a literal payload.
func Fprint(node Node) string {
	var b strings.Builder
	p := &printer{b: &b}
	Walk(node, p)
	return b.String()
}

type printer struct {
	b     *strings.Builder
	depth int
}

func (p *printer) Before(n Node) Visitor {
	fmt.Fprintf(p.b, "%s%s\n", strings.Repeat("  ", p.depth), Label(n))
	p.depth++
	return p
}

func (p *printer) After(Node) { p.depth-- }

// Label returns the "tag[ value]" text used both by Fprint and by
// semantic-error messages that must name the offending node.
func Label(n Node) string {
	switch x := n.(type) {
	case *File:
		return "Program " + x.Name
	case *TypeDeclBlock:
		return "TypeDecls"
	case *TypeDecl:
		return "Decl " + x.Name
	case *VarDeclBlock:
		return "VarDecls"
	case *VarDeclGroup:
		names := make([]string, len(x.Names))
		for i, id := range x.Names {
			names[i] = id.Name
		}
		return "Decl " + strings.Join(names, ",")
	case *ProcDecl:
		return "ProcDecl " + x.Name
	case *ParamList:
		return "ParamList"
	case *ParamGroup:
		mode := "val"
		if x.IsVar {
			mode = "var"
		}
		names := make([]string, len(x.Names))
		for i, id := range x.Names {
			names[i] = id.Name
		}
		return "Decl " + mode + " " + strings.Join(names, ",")
	case *IntegerType:
		return "IntegerT"
	case *CharType:
		return "CharT"
	case *NamedType:
		return "NamedT " + x.Name
	case *ArrayType:
		return "ArrayT"
	case *RecordType:
		return "RecordT"
	case *StmtList:
		return "StmtList"
	case *AssignStmt:
		return "AssignStmt"
	case *IfStmt:
		return "IfStmt"
	case *WhileStmt:
		return "WhileStmt"
	case *ReadStmt:
		return "ReadStmt"
	case *WriteStmt:
		return "WriteStmt"
	case *CallStmt:
		return "CallStmt"
	case *BinOp:
		return "BinOp " + x.Op.String()
	case *IntConst:
		return "IntConst " + strconv.Itoa(x.Value)
	case *Ident:
		return "IdRef " + x.Name
	case *ArrayAccess:
		return "ArrayAccess"
	case *FieldAccess:
		return "FieldAccess " + x.Field
	default:
		return fmt.Sprintf("%T", n)
	}
}
