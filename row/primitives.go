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
	"cmp"
	"encoding/binary"
	"math"
	"slices"
	"unsafe"

	"github.com/fory-project/fory-go/buffer"
)

// The Write*/Cast* pairs below are this package's counterpart to the
// reference row codec's generic Row trait implementations for primitive
// types: each pair writes a value's little-endian bytes with no framing of
// its own (the surrounding StructWriter/ArrayWriter cell already carries
// the size) and reads it back from an exact-length slice.

func WriteInt8(w *buffer.Writer, v int8)   { w.WriteInt8(v) }
func WriteBool(w *buffer.Writer, v bool)   { w.WriteBool(v) }
func WriteInt16(w *buffer.Writer, v int16) { w.WriteInt16(v) }
func WriteInt32(w *buffer.Writer, v int32) { w.WriteInt32(v) }
func WriteInt64(w *buffer.Writer, v int64) { w.WriteInt64(v) }
func WriteFloat32(w *buffer.Writer, v float32) { w.WriteFloat32(v) }
func WriteFloat64(w *buffer.Writer, v float64) { w.WriteFloat64(v) }

// WriteString appends v's raw UTF-8 bytes, unframed.
func WriteString(w *buffer.Writer, v string) { w.WriteBytes([]byte(v)) }

// WriteBytes appends v verbatim, unframed.
func WriteBytes(w *buffer.Writer, v []byte) { w.WriteBytes(v) }

func CastBool(b []byte) bool   { return b[0] == 1 }
func CastInt8(b []byte) int8   { return int8(b[0]) }
func CastInt16(b []byte) int16 { return int16(binary.LittleEndian.Uint16(b)) }
func CastInt32(b []byte) int32 { return int32(binary.LittleEndian.Uint32(b)) }
func CastInt64(b []byte) int64 { return int64(binary.LittleEndian.Uint64(b)) }
func CastFloat32(b []byte) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(b)) }
func CastFloat64(b []byte) float64 { return math.Float64frombits(binary.LittleEndian.Uint64(b)) }

// CastBytes returns b unchanged: the caller already holds the exact-length
// subslice the field's cell described.
func CastBytes(b []byte) []byte { return b }

// CastString reinterprets b as a string without copying, mirroring the
// reference codec's unchecked UTF-8 cast: b came from a row this package
// itself wrote with WriteString, so it is already valid UTF-8.
func CastString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// ArrayGetter is a typed, zero-copy view over an array row: Get(i) decodes
// element i on demand rather than materializing a slice up front.
type ArrayGetter[T any] struct {
	viewer *ArrayViewer
	cast   func([]byte) T
}

// NewArrayGetter wraps row (previously produced by WriteArray or an
// ArrayWriter) with the element decoder cast.
func NewArrayGetter[T any](row []byte, cast func([]byte) T) *ArrayGetter[T] {
	return &ArrayGetter[T]{viewer: NewArrayViewer(row), cast: cast}
}

func (g *ArrayGetter[T]) Size() int { return g.viewer.NumElements() }

// Get decodes element idx, panicking if idx is out of range.
func (g *ArrayGetter[T]) Get(idx int) T { return g.cast(g.viewer.FieldBytes(idx)) }

// WriteArray writes items as an array row, invoking writeItem for each
// element between the matching WriteStart/WriteEnd pair.
func WriteArray[T any](w *buffer.Writer, items []T, writeItem func(*buffer.Writer, T)) {
	aw := NewArrayWriter(len(items), w)
	for i, item := range items {
		cb := aw.WriteStart(i)
		writeItem(aw.Writer(), item)
		aw.WriteEnd(cb)
	}
}

// MapGetter is a typed, zero-copy view over a map row, exposing its key and
// value rows as independent ArrayGetters joined by shared index order.
type MapGetter[K comparable, V any] struct {
	viewer  *MapViewer
	castKey func([]byte) K
	castVal func([]byte) V
}

// NewMapGetter wraps row (previously produced by WriteMap) with the key and
// value decoders.
func NewMapGetter[K comparable, V any](row []byte, castKey func([]byte) K, castVal func([]byte) V) *MapGetter[K, V] {
	return &MapGetter[K, V]{viewer: NewMapViewer(row), castKey: castKey, castVal: castVal}
}

func (g *MapGetter[K, V]) Keys() *ArrayGetter[K] {
	return NewArrayGetter(g.viewer.KeyRow(), g.castKey)
}

func (g *MapGetter[K, V]) Values() *ArrayGetter[V] {
	return NewArrayGetter(g.viewer.ValueRow(), g.castVal)
}

// ToMap materializes the map row into an ordinary Go map. Go's map has no
// intrinsic order, so this discards the key-array/value-array pairing
// order once every entry has been read.
func (g *MapGetter[K, V]) ToMap() map[K]V {
	keys := g.Keys()
	values := g.Values()
	out := make(map[K]V, keys.Size())
	for i := 0; i < keys.Size(); i++ {
		out[keys.Get(i)] = values.Get(i)
	}
	return out
}

// WriteMap writes m as a map row: keys sorted ascending (the row format has
// no notion of hash order, so a deterministic order is required for the
// output to be reproducible across runs) into a key array row, followed by
// their corresponding values into a value array row.
func WriteMap[K cmp.Ordered, V any](w *buffer.Writer, m map[K]V, writeKey func(*buffer.Writer, K), writeVal func(*buffer.Writer, V)) {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	mw := NewMapWriter(w)
	dataStart := mw.WriteStart()
	WriteArray(mw.Writer(), keys, writeKey)
	mw.WriteEnd(dataStart)

	values := make([]V, len(keys))
	for i, k := range keys {
		values[i] = m[k]
	}
	WriteArray(mw.Writer(), values, writeVal)
}
