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

package buffer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrimitiveRoundTrip(t *testing.T) {
	w := NewWriter(0)
	w.WriteBool(true)
	w.WriteInt8(-7)
	w.WriteInt16(-1234)
	w.WriteInt32(-123456)
	w.WriteInt64(-123456789012)
	w.WriteFloat32(3.5)
	w.WriteFloat64(2.71828)
	w.WriteBytes([]byte("hello"))

	r := NewReader(w.Dump())
	require.Equal(t, true, r.ReadBool())
	require.Equal(t, int8(-7), r.ReadInt8())
	require.Equal(t, int16(-1234), r.ReadInt16())
	require.Equal(t, int32(-123456), r.ReadInt32())
	require.Equal(t, int64(-123456789012), r.ReadInt64())
	require.Equal(t, float32(3.5), r.ReadFloat32())
	require.Equal(t, 2.71828, r.ReadFloat64())
	require.Equal(t, []byte("hello"), r.Bytes(5))
}

func TestSetBytesPatchesInPlace(t *testing.T) {
	w := NewWriter(0)
	offset := w.Len()
	w.Skip(4)
	w.WriteBytes([]byte("payload"))
	w.SetBytes(offset, []byte{7, 0, 0, 0})

	r := NewReader(w.Dump())
	require.Equal(t, int32(7), r.ReadInt32())
	require.Equal(t, []byte("payload"), r.Bytes(7))
}

func TestVarInt32BoundaryWidths(t *testing.T) {
	cases := []struct {
		value int32
		bytes int
	}{
		{0, 1},
		{127, 1},
		{128, 2},
		{16383, 2},
		{16384, 3},
		{2097151, 3},
		{2097152, 4},
		{268435455, 4},
		{268435456, 5},
	}
	for _, c := range cases {
		w := NewWriter(0)
		n := w.WriteVarInt32(c.value)
		require.Equal(t, c.bytes, n, "value %d", c.value)
		require.Equal(t, c.bytes, w.Len(), "value %d", c.value)

		r := NewReader(w.Dump())
		require.Equal(t, c.value, r.ReadVarInt32(), "value %d", c.value)
	}
}

func TestResetCursorToHereRewinds(t *testing.T) {
	w := NewWriter(0)
	w.WriteInt32(1)
	w.WriteInt32(2)

	r := NewReader(w.Dump())
	rewind := r.ResetCursorToHere()
	require.Equal(t, int32(1), r.ReadInt32())
	rewind()
	require.Equal(t, int32(1), r.ReadInt32())
	require.Equal(t, int32(2), r.ReadInt32())
}
