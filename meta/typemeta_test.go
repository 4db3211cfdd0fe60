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

package meta

import (
	"testing"

	"github.com/fory-project/fory-go/buffer"
	"github.com/stretchr/testify/require"
)

func TestTypeMetaRoundTrip(t *testing.T) {
	fields := []FieldInfo{
		{FieldName: "id", FieldType: 9},
		{FieldName: "name", FieldType: 13},
		{FieldName: "created_at", FieldType: 18},
	}
	tm := NewTypeMeta(42, 0xDEADBEEF, fields)
	data, err := tm.ToBytes()
	require.NoError(t, err)

	got, err := TypeMetaFromBytes(data)
	require.NoError(t, err)
	require.Equal(t, tm.Hash, got.Hash)
	require.Len(t, got.Layers, 1)
	require.Equal(t, uint32(42), got.Layers[0].TypeID)
	require.Len(t, got.Layers[0].Fields, 3)
	for i, f := range fields {
		require.Equal(t, f.FieldName, got.Layers[0].Fields[i].FieldName)
	}
}

func TestTypeMetaFieldInlineLengthEscape(t *testing.T) {
	// a 7+ char lower-special-encoded name exercises the inline_len escape
	// to a trailing var_int32(len-7).
	fields := []FieldInfo{{FieldName: "a_very_long_lower_case_field_name", FieldType: 13}}
	tm := NewTypeMeta(1, 7, fields)
	data, err := tm.ToBytes()
	require.NoError(t, err)

	got, err := TypeMetaFromBytes(data)
	require.NoError(t, err)
	require.Equal(t, "a_very_long_lower_case_field_name", got.Layers[0].Fields[0].FieldName)
}

func TestReadHashFromBytesPeeksWithoutConsuming(t *testing.T) {
	tm := NewTypeMeta(1, 0x1122334455, []FieldInfo{{FieldName: "x", FieldType: 1}})
	data, err := tm.ToBytes()
	require.NoError(t, err)

	r := buffer.NewReader(data)
	h := ReadHashFromBytes(r)
	require.Equal(t, tm.Hash, h)
	// cursor unchanged: a full decode from the same reader still works
	require.Equal(t, 0, r.Cursor())
}
