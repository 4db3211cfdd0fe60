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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMetaStringRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		enc  Encoding
	}{
		{"abc_def", LowerSpecial},
		{"ABC_DEF", LowerUpperDigitSpecial},
		{"Namespace", FirstToLowerSpecial},
		{"a1b2c3", LowerUpperDigitSpecial},
		{"hello.world_tag", LowerSpecial},
	}
	enc := NewMetaStringEncoder()
	dec := NewMetaStringDecoder()
	for _, c := range cases {
		ms, err := enc.Encode(c.name)
		require.NoError(t, err, c.name)
		require.Equal(t, c.enc, ms.Encoding, c.name)

		got, err := dec.Decode(ms.Bytes, ms.Encoding)
		require.NoError(t, err, c.name)
		require.Equal(t, c.name, got, c.name)
	}
}

func TestMetaStringAllToLowerSpecialChosenWhenCheaper(t *testing.T) {
	// few uppercase letters relative to length favors AllToLowerSpecial
	// over LowerUpperDigitSpecial per the (len+upper)*5 < len*6 heuristic:
	// 18 chars, 2 uppercase, (18+2)*5 = 100 < 108.
	s := "someIdentifierName"
	enc := NewMetaStringEncoder()
	ms, err := enc.Encode(s)
	require.NoError(t, err)
	require.Equal(t, AllToLowerSpecial, ms.Encoding)
	dec := NewMetaStringDecoder()
	got, err := dec.Decode(ms.Bytes, ms.Encoding)
	require.NoError(t, err)
	require.Equal(t, s, got)
}

func TestMetaStringEmptyIsUtf8(t *testing.T) {
	ms, err := NewMetaStringEncoder().Encode("")
	require.NoError(t, err)
	require.Equal(t, Utf8, ms.Encoding)
	require.Nil(t, ms.Bytes)
}

func TestMetaStringNonASCIIFallsBackToUtf8(t *testing.T) {
	ms, err := NewMetaStringEncoder().Encode("café")
	require.NoError(t, err)
	require.Equal(t, Utf8, ms.Encoding)
	require.Equal(t, []byte("café"), ms.Bytes)
}

func TestMetaStringLengthLimit(t *testing.T) {
	_, err := NewMetaStringEncoder().Encode(strings.Repeat("a", MaxMetaStringLength))
	require.NoError(t, err)

	_, err = NewMetaStringEncoder().Encode(strings.Repeat("a", MaxMetaStringLength+1))
	require.Error(t, err)
}
