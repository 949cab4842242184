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

package parser

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/snl-lang/snl/ast"
)

func TestParseMinimalProgram(t *testing.T) {
	src := `program p
var integer x;
begin
	x := 1;
	write(x)
end.`
	f, err := ParseFile("p.snl", []byte(src))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(f.Name, "p"))
	qt.Assert(t, qt.IsNil(f.Types))
	qt.Assert(t, qt.IsNotNil(f.Vars))
	qt.Assert(t, qt.HasLen(f.Body.List, 2))
}

func TestParseArrayAndRecordTypes(t *testing.T) {
	src := `program p
type
	vec = array[0..9] of integer;
	pair = record integer a; char b; end;
var vec v; pair pr;
begin
	v[0] := 1;
	pr.a := 2
end.`
	f, err := ParseFile("p.snl", []byte(src))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(f.Types.Decls, 2))

	arr, ok := f.Types.Decls[0].Type.(*ast.ArrayType)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(arr.Low.Value, 0))
	qt.Assert(t, qt.Equals(arr.High.Value, 9))

	rec, ok := f.Types.Decls[1].Type.(*ast.RecordType)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.HasLen(rec.Fields, 2))
}

func TestParseWhileStatement(t *testing.T) {
	src := `program p
var integer i;
begin
	while i < 10 do
		i := i + 1
	endwh
end.`
	f, err := ParseFile("p.snl", []byte(src))
	qt.Assert(t, qt.IsNil(err))
	_, ok := f.Body.List[0].(*ast.WhileStmt)
	qt.Assert(t, qt.IsTrue(ok))
}

func TestParseProcedureCallAndVarParam(t *testing.T) {
	src := `program p
var integer x;
procedure inc(var integer n);
begin
	n := n + 1
end;
begin
	inc(x)
end.`
	f, err := ParseFile("p.snl", []byte(src))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(f.Procs, 1))
	qt.Assert(t, qt.IsTrue(f.Procs[0].Params.Groups[0].IsVar))

	call, ok := f.Body.List[0].(*ast.CallStmt)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(call.Proc.Name, "inc"))
}

func TestParseIfWithoutElseSynthesizesEmptyBranch(t *testing.T) {
	src := `program p
var integer x;
begin
	if x < 1 then
		x := 0
	fi
end.`
	f, err := ParseFile("p.snl", []byte(src))
	qt.Assert(t, qt.IsNil(err))
	ifs, ok := f.Body.List[0].(*ast.IfStmt)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.HasLen(ifs.Else.List, 0))
}

func TestParseRecordFieldAccessChaining(t *testing.T) {
	src := `program p
type pair = record integer a; integer b; end;
var pair pr;
begin
	write(pr.a)
end.`
	f, err := ParseFile("p.snl", []byte(src))
	qt.Assert(t, qt.IsNil(err))
	w, ok := f.Body.List[0].(*ast.WriteStmt)
	qt.Assert(t, qt.IsTrue(ok))
	_, ok = w.Arg.(*ast.FieldAccess)
	qt.Assert(t, qt.IsTrue(ok))
}

func TestParseErrorOnMissingToken(t *testing.T) {
	_, err := ParseFile("p.snl", []byte("program p\nvar integer x\nbegin end."))
	qt.Assert(t, qt.ErrorMatches(err, ".*expected.*"))
}

func TestParseReadAcceptsBareIdentifier(t *testing.T) {
	src := `program p
var integer x;
begin
	read(x)
end.`
	f, err := ParseFile("p.snl", []byte(src))
	qt.Assert(t, qt.IsNil(err))
	r, ok := f.Body.List[0].(*ast.ReadStmt)
	qt.Assert(t, qt.IsTrue(ok))
	id, ok := r.Var.(*ast.Ident)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(id.Name, "x"))
}

func TestParseReadRejectsCompoundVariable(t *testing.T) {
	src := `program p
type vec = array[0..9] of integer;
var vec arr;
begin
	read(arr[1])
end.`
	_, err := ParseFile("p.snl", []byte(src))
	qt.Assert(t, qt.IsNotNil(err))
}
