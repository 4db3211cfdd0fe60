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

package fory

import (
	"reflect"

	"github.com/fory-project/fory-go/meta"
)

const (
	stringFlagLatin1 uint8 = 0
	stringFlagUTF8   uint8 = 1
)

// stringSerializer writes a 1-byte encoding flag (Latin1 fast path when
// the string is pure ASCII, UTF-8 otherwise) followed by a var_int32
// byte length and the raw bytes. Grounded on spec.md's string FieldType
// and on original_source/rust/fury-core/src/types.rs's StringFlag.
type stringSerializer struct{}

func (stringSerializer) ReservedSpace() int { return 16 }
func (stringSerializer) TypeID(*Fory) int16 { return int16(TypeString) }

func (stringSerializer) Write(v reflect.Value, ctx *WriteContext) error {
	s := v.String()
	if meta.IsASCII(s) {
		ctx.Writer.WriteUint8(stringFlagLatin1)
		ctx.Writer.WriteVarInt32(int32(len(s)))
		ctx.Writer.WriteBytes([]byte(s))
		return nil
	}
	ctx.Writer.WriteUint8(stringFlagUTF8)
	b := []byte(s)
	ctx.Writer.WriteVarInt32(int32(len(b)))
	ctx.Writer.WriteBytes(b)
	return nil
}

func (stringSerializer) Read(ctx *ReadContext) (reflect.Value, error) {
	flag := ctx.Reader.ReadUint8()
	length := int(ctx.Reader.ReadVarInt32())
	b := ctx.Reader.Bytes(length)
	switch flag {
	case stringFlagLatin1, stringFlagUTF8:
		return reflect.ValueOf(string(b)), nil
	default:
		return reflect.Value{}, &TagTypeError{Code: flag}
	}
}

// ptrToStringSerializer supports *string fields, dereferencing on write and
// allocating on read. Pointer optionality itself still goes through
// optionSerializer for the Null-vs-value ref flag; this serializer assumes
// a non-nil pointer has already been established by its caller.
type ptrToStringSerializer struct{}

func (ptrToStringSerializer) ReservedSpace() int { return 16 }
func (ptrToStringSerializer) TypeID(f *Fory) int16 { return int16(TypeString) }
func (ptrToStringSerializer) Write(v reflect.Value, ctx *WriteContext) error {
	return stringSerializer{}.Write(v.Elem(), ctx)
}
func (ptrToStringSerializer) Read(ctx *ReadContext) (reflect.Value, error) {
	sv, err := stringSerializer{}.Read(ctx)
	if err != nil {
		return reflect.Value{}, err
	}
	p := reflect.New(sv.Type())
	p.Elem().Set(sv)
	return p, nil
}
