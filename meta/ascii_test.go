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

func TestIsASCII(t *testing.T) {
	require.True(t, IsASCII(""))
	require.True(t, IsASCII("hello world, this is 16+ bytes"))
	require.False(t, IsASCII("héllo"))
	require.False(t, IsASCII(strings.Repeat("a", 9)+"é"))
}

func TestUTF16RoundTrip(t *testing.T) {
	s := "hello, 世界! 𝄞"
	units := UTF8ToUTF16(s)
	got, err := UTF16ToUTF8(units)
	require.NoError(t, err)
	require.Equal(t, s, got)
}

func TestUTF16UnpairedSurrogateRejected(t *testing.T) {
	_, err := UTF16ToUTF8([]uint16{0xD800, 'a'})
	require.Error(t, err)

	_, err = UTF16ToUTF8([]uint16{0xDC00})
	require.Error(t, err)
}

func TestEncodeLatin1RejectsNonASCII(t *testing.T) {
	_, err := EncodeLatin1("héllo")
	require.ErrorIs(t, err, ErrOnlyASCII)

	b, err := EncodeLatin1("hello")
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), b)
}
