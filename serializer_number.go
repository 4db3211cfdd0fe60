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

import "reflect"

// Built-in fixed-width numeric serializers. Named per the teacher's own
// convention (type.go's referenced-but-undefined boolSerializer,
// int8Serializer, ... structs), implemented fresh since the pack did not
// retrieve the sibling file that defines them.

type boolSerializer struct{}

func (boolSerializer) ReservedSpace() int        { return 1 }
func (boolSerializer) TypeID(*Fory) int16        { return int16(TypeBool) }
func (boolSerializer) Write(v reflect.Value, ctx *WriteContext) error {
	ctx.Writer.WriteBool(v.Bool())
	return nil
}
func (boolSerializer) Read(ctx *ReadContext) (reflect.Value, error) {
	return reflect.ValueOf(ctx.Reader.ReadBool()), nil
}

type byteSerializer struct{}

func (byteSerializer) ReservedSpace() int { return 1 }
func (byteSerializer) TypeID(*Fory) int16 { return int16(TypeUint8) }
func (byteSerializer) Write(v reflect.Value, ctx *WriteContext) error {
	ctx.Writer.WriteUint8(byte(v.Uint()))
	return nil
}
func (byteSerializer) Read(ctx *ReadContext) (reflect.Value, error) {
	return reflect.ValueOf(ctx.Reader.ReadUint8()), nil
}

type int8Serializer struct{}

func (int8Serializer) ReservedSpace() int { return 1 }
func (int8Serializer) TypeID(*Fory) int16 { return int16(TypeInt8) }
func (int8Serializer) Write(v reflect.Value, ctx *WriteContext) error {
	ctx.Writer.WriteInt8(int8(v.Int()))
	return nil
}
func (int8Serializer) Read(ctx *ReadContext) (reflect.Value, error) {
	return reflect.ValueOf(ctx.Reader.ReadInt8()), nil
}

type int16Serializer struct{}

func (int16Serializer) ReservedSpace() int { return 2 }
func (int16Serializer) TypeID(*Fory) int16 { return int16(TypeInt16) }
func (int16Serializer) Write(v reflect.Value, ctx *WriteContext) error {
	ctx.Writer.WriteInt16(int16(v.Int()))
	return nil
}
func (int16Serializer) Read(ctx *ReadContext) (reflect.Value, error) {
	return reflect.ValueOf(ctx.Reader.ReadInt16()), nil
}

type int32Serializer struct{}

func (int32Serializer) ReservedSpace() int { return 4 }
func (int32Serializer) TypeID(*Fory) int16 { return int16(TypeInt32) }
func (int32Serializer) Write(v reflect.Value, ctx *WriteContext) error {
	ctx.Writer.WriteInt32(int32(v.Int()))
	return nil
}
func (int32Serializer) Read(ctx *ReadContext) (reflect.Value, error) {
	return reflect.ValueOf(ctx.Reader.ReadInt32()), nil
}

type int64Serializer struct{}

func (int64Serializer) ReservedSpace() int { return 8 }
func (int64Serializer) TypeID(*Fory) int16 { return int16(TypeInt64) }
func (int64Serializer) Write(v reflect.Value, ctx *WriteContext) error {
	ctx.Writer.WriteInt64(v.Int())
	return nil
}
func (int64Serializer) Read(ctx *ReadContext) (reflect.Value, error) {
	return reflect.ValueOf(ctx.Reader.ReadInt64()), nil
}

// intSerializer handles Go's platform-width int as a 64-bit wire value, the
// same choice the teacher makes by routing `int` through its INT64 path.
type intSerializer struct{}

func (intSerializer) ReservedSpace() int { return 8 }
func (intSerializer) TypeID(*Fory) int16 { return int16(TypeInt64) }
func (intSerializer) Write(v reflect.Value, ctx *WriteContext) error {
	ctx.Writer.WriteInt64(int64(v.Int()))
	return nil
}
func (intSerializer) Read(ctx *ReadContext) (reflect.Value, error) {
	return reflect.ValueOf(int(ctx.Reader.ReadInt64())), nil
}

type float32Serializer struct{}

func (float32Serializer) ReservedSpace() int { return 4 }
func (float32Serializer) TypeID(*Fory) int16 { return int16(TypeFloat) }
func (float32Serializer) Write(v reflect.Value, ctx *WriteContext) error {
	ctx.Writer.WriteFloat32(float32(v.Float()))
	return nil
}
func (float32Serializer) Read(ctx *ReadContext) (reflect.Value, error) {
	return reflect.ValueOf(ctx.Reader.ReadFloat32()), nil
}

type float64Serializer struct{}

func (float64Serializer) ReservedSpace() int { return 8 }
func (float64Serializer) TypeID(*Fory) int16 { return int16(TypeDouble) }
func (float64Serializer) Write(v reflect.Value, ctx *WriteContext) error {
	ctx.Writer.WriteFloat64(v.Float())
	return nil
}
func (float64Serializer) Read(ctx *ReadContext) (reflect.Value, error) {
	return reflect.ValueOf(ctx.Reader.ReadFloat64()), nil
}
