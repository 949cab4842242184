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

package snl

import (
	"fmt"
	"testing"

	"github.com/snl-lang/snl/analysis"
	"github.com/snl-lang/snl/internal/snltest"
	"github.com/snl-lang/snl/parser"
)

// TestGolden runs every .txtar file under testdata through the full
// parse-then-analyze pipeline and compares a deterministic, position-free
// rendering of the result (error count and bare messages) against the
// "out/golden" entry in the archive.
func TestGolden(t *testing.T) {
	test := &snltest.TxTarTest{Root: "testdata", Name: "golden"}
	test.Run(t, func(tc *snltest.Case) {
		name, src := tc.Source()

		f, err := parser.ParseFile(name, src)
		if err != nil {
			fmt.Fprintf(tc, "parse error: %s\n", err)
			return
		}

		result := analysis.Analyze(f)
		fmt.Fprintf(tc, "errors=%d\n", result.Errors.Len())
		for _, e := range result.Errors {
			fmt.Fprintln(tc, e.Error())
		}
	})
}
