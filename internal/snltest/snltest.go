// Copyright 2020 CUE Authors
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

// Package snltest provides a golden-file test harness for the SNL
// pipeline based on the txtar archive format: each .txtar file under a
// test root holds one SNL source file plus the expected "out/<name>"
// rendering of some stage of the pipeline.
package snltest

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"
)

// A TxTarTest runs every .txtar file found under Root, or its
// subdirectories, through a caller-supplied function.
type TxTarTest struct {
	// Root is the directory to search for .txtar files.
	Root string

	// Name identifies this harness; golden output lives under
	// "out/<Name>" within each archive.
	Name string

	// Skip maps a test name to a reason to skip it.
	Skip map[string]string
}

// A Case is one parsed .txtar file: the embedded *testing.T, the source
// file contents, and the golden output comparison machinery.
type Case struct {
	*testing.T

	// Archive is the parsed txtar file.
	Archive *txtar.Archive

	// Dir is the absolute directory containing the .txtar file.
	Dir string

	prefix string
	buf    bytes.Buffer
	update bool
}

// Source returns the contents of the first file in the archive, which by
// convention holds the SNL program under test.
func (c *Case) Source() (name string, src []byte) {
	if len(c.Archive.Files) == 0 {
		c.Fatal("txtar archive has no files")
	}
	f := c.Archive.Files[0]
	return f.Name, f.Data
}

// Write implements io.Writer, accumulating output to be compared against
// the "out/<Name>" golden file.
func (c *Case) Write(b []byte) (int, error) { return c.buf.Write(b) }

// HasTag reports whether the archive's comment section contains a line
// "#key" exactly.
func (c *Case) HasTag(key string) bool {
	want := "#" + key
	for _, line := range strings.Split(string(c.Archive.Comment), "\n") {
		if strings.TrimSpace(line) == want {
			return true
		}
	}
	return false
}

// Run walks x.Root for .txtar files and invokes f once per file, via
// t.Run, with a *Case ready to compare golden output. If the
// SNL_UPDATE_GOLDEN environment variable is non-empty, mismatches are
// written back to the archive instead of failing the test.
func (x *TxTarTest) Run(t *testing.T, f func(tc *Case)) {
	t.Helper()

	update := os.Getenv("SNL_UPDATE_GOLDEN") != ""

	err := filepath.WalkDir(x.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".txtar" {
			return nil
		}

		rel, err := filepath.Rel(x.Root, path)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.ToSlash(rel), ".txtar")

		t.Run(name, func(t *testing.T) {
			if msg, ok := x.Skip[name]; ok {
				t.Skip(msg)
			}

			a, err := txtar.ParseFile(path)
			if err != nil {
				t.Fatalf("parsing txtar file: %v", err)
			}

			tc := &Case{
				T:       t,
				Archive: a,
				Dir:     filepath.Dir(path),
				prefix:  fmt.Sprintf("out/%s", x.Name),
				update:  update,
			}

			if tc.HasTag("skip") {
				t.Skip()
			}

			f(tc)
			tc.checkGolden(path)
		})
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func (c *Case) checkGolden(archivePath string) {
	c.Helper()

	got := c.buf.String()

	for i, f := range c.Archive.Files {
		if f.Name != c.prefix {
			continue
		}
		want := string(f.Data)
		if want == got {
			return
		}
		if c.update {
			c.Archive.Files[i].Data = []byte(got)
			c.writeUpdated(archivePath)
			return
		}
		c.Errorf("golden mismatch for %s (-want +got):\n%s", c.prefix, cmp.Diff(want, got))
		return
	}

	// No existing golden entry.
	if got == "" {
		return
	}
	if c.update {
		c.Archive.Files = append(c.Archive.Files, txtar.File{Name: c.prefix, Data: []byte(got)})
		c.writeUpdated(archivePath)
		return
	}
	c.Errorf("missing golden entry %s; got:\n%s", c.prefix, got)
}

func (c *Case) writeUpdated(archivePath string) {
	if err := os.WriteFile(archivePath, txtar.Format(c.Archive), 0o644); err != nil {
		c.Fatalf("writing updated golden file: %v", err)
	}
}
