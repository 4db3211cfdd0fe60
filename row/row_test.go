// Licensed to the Apache Software Foundation (ASF) under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package row

import (
	"reflect"
	"testing"

	"github.com/fory-project/fory-go/buffer"
	"github.com/stretchr/testify/require"
)

type Foo struct {
	F1 string
	F2 int32
}

type Bar struct {
	F3 Foo
}

func TestBitmapWidthInBytes(t *testing.T) {
	require.Equal(t, 0, bitmapWidthInBytes(0))
	require.Equal(t, 8, bitmapWidthInBytes(1))
	require.Equal(t, 8, bitmapWidthInBytes(64))
	require.Equal(t, 16, bitmapWidthInBytes(65))
}

func TestToRowFromRowNestedStruct(t *testing.T) {
	data, err := ToRow(Bar{F3: Foo{F1: "hello", F2: 1}})
	require.NoError(t, err)

	view, err := FromRow(reflect.TypeOf(Bar{}), data)
	require.NoError(t, err)

	f3, err := view.Get("F3")
	require.NoError(t, err)
	fooView, ok := f3.(*StructView)
	require.True(t, ok)

	f1, err := fooView.Get("F1")
	require.NoError(t, err)
	require.Equal(t, "hello", f1)

	f2, err := fooView.Get("F2")
	require.NoError(t, err)
	require.Equal(t, int32(1), f2)
}

func TestStructWriterViewerRoundTrip(t *testing.T) {
	w := buffer.NewWriter(32)
	sw := NewStructWriter(2, w)
	cb0 := sw.WriteStart(0)
	WriteInt32(sw.Writer(), 7)
	sw.WriteEnd(cb0)
	cb1 := sw.WriteStart(1)
	WriteString(sw.Writer(), "row")
	sw.WriteEnd(cb1)

	data := w.Dump()
	viewer := NewStructViewer(data, 2)
	require.Equal(t, int32(7), CastInt32(viewer.FieldBytes(0)))
	require.Equal(t, "row", CastString(viewer.FieldBytes(1)))
}

func TestWriteArrayRoundTrip(t *testing.T) {
	w := buffer.NewWriter(32)
	WriteArray(w, []int32{10, 20, 30}, WriteInt32)

	getter := NewArrayGetter(w.Dump(), CastInt32)
	require.Equal(t, 3, getter.Size())
	require.Equal(t, int32(10), getter.Get(0))
	require.Equal(t, int32(20), getter.Get(1))
	require.Equal(t, int32(30), getter.Get(2))
}

func TestArrayGetterOutOfBoundPanics(t *testing.T) {
	w := buffer.NewWriter(32)
	WriteArray(w, []int32{1}, WriteInt32)
	getter := NewArrayGetter(w.Dump(), CastInt32)

	require.Panics(t, func() { getter.Get(5) })
}

func TestWriteMapRoundTrip(t *testing.T) {
	w := buffer.NewWriter(32)
	m := map[string]int8{"hello1": 1, "hello2": 2}
	WriteMap(w, m, WriteString, WriteInt8)

	getter := NewMapGetter(w.Dump(), CastString, CastInt8)
	require.Equal(t, m, getter.ToMap())

	keys := getter.Keys()
	require.Equal(t, 2, keys.Size())
	require.Equal(t, "hello1", keys.Get(0))
	require.Equal(t, "hello2", keys.Get(1))
}

func TestEmptyStringRoundTrip(t *testing.T) {
	data, err := ToRow(Foo{F1: "", F2: 0})
	require.NoError(t, err)

	view, err := FromRow(reflect.TypeOf(Foo{}), data)
	require.NoError(t, err)

	f1, err := view.Get("F1")
	require.NoError(t, err)
	require.Equal(t, "", f1)
}
