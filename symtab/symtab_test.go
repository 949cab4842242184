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

package symtab

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/snl-lang/snl/types"
)

func TestInsertAndLookup(t *testing.T) {
	tab := New()
	tab.Insert("integer", KindType, types.Integer, 0)

	e, ok := tab.Lookup("integer")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(e.Kind, KindType))
	qt.Assert(t, qt.Equals(e.Level, 0))
}

func TestScopeShadowing(t *testing.T) {
	tab := New()
	tab.Insert("x", KindVariable, types.Integer, 1)

	tab.Push()
	tab.Insert("x", KindValueParam, types.Char, 1)

	e, ok := tab.Lookup("x")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(e.Kind, KindValueParam))
	qt.Assert(t, qt.Equals(e.Level, 1))

	tab.Pop()
	e, ok = tab.Lookup("x")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(e.Kind, KindVariable))
}

func TestEntriesPersistAfterScopePop(t *testing.T) {
	tab := New()
	tab.Push()
	tab.Insert("local", KindVariable, types.Integer, 1)
	tab.Pop()

	_, ok := tab.Lookup("local")
	qt.Assert(t, qt.IsFalse(ok))

	all := tab.All()
	qt.Assert(t, qt.HasLen(all, 1))
	qt.Assert(t, qt.Equals(all[0].Name, "local"))
}

func TestOffsetsAccumulateByStorageUnits(t *testing.T) {
	tab := New()
	tab.Insert("a", KindVariable, types.Integer, 1)
	tab.Insert("b", KindVariable, types.Integer, 1)
	qt.Assert(t, qt.Equals(tab.NextOffset(), 2))

	tab.Push()
	qt.Assert(t, qt.Equals(tab.NextOffset(), 0))
	tab.Insert("c", KindVarParam, types.Integer, 1)
	qt.Assert(t, qt.Equals(tab.NextOffset(), 1))
}

func TestLookupLocalDoesNotSeeOuterScope(t *testing.T) {
	tab := New()
	tab.Insert("x", KindVariable, types.Integer, 1)
	tab.Push()

	_, ok := tab.LookupLocal("x")
	qt.Assert(t, qt.IsFalse(ok))

	_, ok = tab.Lookup("x")
	qt.Assert(t, qt.IsTrue(ok))
}

func TestSnapshotsOutermostFirst(t *testing.T) {
	tab := New()
	tab.Insert("g", KindVariable, types.Integer, 1)
	tab.Push()
	tab.Insert("l", KindVariable, types.Integer, 1)

	snaps := tab.Snapshots()
	qt.Assert(t, qt.HasLen(snaps, 2))
	qt.Assert(t, qt.Equals(snaps[0].Level, 0))
	qt.Assert(t, qt.Equals(snaps[1].Level, 1))
	qt.Assert(t, qt.Equals(snaps[1].Entries[0].Name, "l"))
}

func TestPopOfEmptyStackPanics(t *testing.T) {
	tab := &Table{}
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic popping an empty scope stack")
		}
	}()
	tab.Pop()
}
