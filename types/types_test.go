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

package types

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestSizePrimitives(t *testing.T) {
	qt.Assert(t, qt.Equals(Size(Integer), 1))
	qt.Assert(t, qt.Equals(Size(Char), 1))
	qt.Assert(t, qt.Equals(Size(Boolean), 1))
	qt.Assert(t, qt.Equals(Size(Unknown), 0))
}

func TestSizeArray(t *testing.T) {
	arr := &Array{Low: 0, High: 9, Elem: Integer}
	qt.Assert(t, qt.Equals(Size(arr), 10))

	bad := &Array{Low: 5, High: 1, Elem: Integer}
	qt.Assert(t, qt.Equals(Size(bad), 0))
}

func TestSizeRecord(t *testing.T) {
	rec := &Record{Fields: []Field{
		{Name: "a", Type: Integer, Offset: 0},
		{Name: "b", Type: Char, Offset: 1},
	}}
	qt.Assert(t, qt.Equals(Size(rec), 2))
}

func TestAliasTransparentToBaseAndEqual(t *testing.T) {
	alias := &Alias{Name: "vec", Underlying: Integer}
	qt.Assert(t, qt.Equals(Base(alias), Integer))
	qt.Assert(t, qt.IsTrue(Equal(alias, Integer)))
	qt.Assert(t, qt.IsTrue(Equal(Integer, alias)))
}

func TestEqualArrays(t *testing.T) {
	a := &Array{Low: 0, High: 3, Elem: Integer}
	b := &Array{Low: 0, High: 3, Elem: Integer}
	c := &Array{Low: 0, High: 4, Elem: Integer}
	qt.Assert(t, qt.IsTrue(Equal(a, b)))
	qt.Assert(t, qt.IsFalse(Equal(a, c)))
}

func TestEqualRecordsByFieldsInOrder(t *testing.T) {
	a := &Record{Fields: []Field{{Name: "x", Type: Integer, Offset: 0}}}
	b := &Record{Fields: []Field{{Name: "x", Type: Integer, Offset: 0}}}
	c := &Record{Fields: []Field{{Name: "y", Type: Integer, Offset: 0}}}
	qt.Assert(t, qt.IsTrue(Equal(a, b)))
	qt.Assert(t, qt.IsFalse(Equal(a, c)))
}
