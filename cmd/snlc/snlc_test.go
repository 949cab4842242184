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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
)

func run(t *testing.T, args ...string) (stdout string, err error) {
	t.Helper()
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return buf.String(), err
}

func writeSource(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.snl")
	qt.Assert(t, qt.IsNil(os.WriteFile(path, []byte(src), 0o644)))
	return path
}

const cleanProgram = `program p
var integer x;
begin
	x := 1;
	write(x)
end.`

func TestLexCommandPrintsTokens(t *testing.T) {
	path := writeSource(t, cleanProgram)
	out, err := run(t, "lex", path)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "program")))
}

func TestParseCommandPrintsTree(t *testing.T) {
	path := writeSource(t, cleanProgram)
	out, err := run(t, "parse", path)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "Program p")))
}

func TestAnalyzeCommandReportsNoErrorsOnCleanProgram(t *testing.T) {
	path := writeSource(t, cleanProgram)
	out, err := run(t, "analyze", path)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "completed without errors")))
}

func TestAnalyzeCommandFailsOnSemanticError(t *testing.T) {
	path := writeSource(t, `program p
begin
	write(z)
end.`)
	_, err := run(t, "analyze", path)
	qt.Assert(t, qt.IsNotNil(err))
}

func TestAnalyzeCommandYAMLIncludesSymbolsOnlyWhenRequested(t *testing.T) {
	path := writeSource(t, cleanProgram)

	out, err := run(t, "analyze", "--format", "yaml", path)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "run_id")))
	qt.Assert(t, qt.IsFalse(strings.Contains(out, "symbols:")))

	out, err = run(t, "analyze", "--format", "yaml", "--symbols", path)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "symbols:")))
}

func TestInvalidFormatFlagIsRejectedAtParseTime(t *testing.T) {
	path := writeSource(t, cleanProgram)
	_, err := run(t, "--format", "xml", "lex", path)
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.IsTrue(strings.Contains(err.Error(), "unsupported --format")))
}

func TestMissingFileArgumentFails(t *testing.T) {
	_, err := run(t, "lex")
	qt.Assert(t, qt.IsNotNil(err))
}
