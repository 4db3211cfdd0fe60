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

// Fast paths for slices of a fixed-width primitive: a var_int32 element
// count followed by the raw fixed-width values, skipping the per-element
// ref-flag/type-id overhead serializeAny would otherwise incur. Named
// after the teacher's referenced-but-undefined *SliceSerializer structs
// (type.go's boolSliceType/int16SliceType/... registrations).

// byteSliceSerializer is the teacher's name for what this repository
// otherwise calls binarySerializer: []byte as a raw length-prefixed blob.
type byteSliceSerializer = binarySerializer

type boolSliceSerializer struct{}

func (boolSliceSerializer) ReservedSpace() int { return 16 }
func (boolSliceSerializer) TypeID(*Fory) int16 { return int16(TypeBoolArray) }
func (boolSliceSerializer) Write(v reflect.Value, ctx *WriteContext) error {
	n := v.Len()
	ctx.Writer.WriteVarInt32(int32(n))
	for i := 0; i < n; i++ {
		ctx.Writer.WriteBool(v.Index(i).Bool())
	}
	return nil
}
func (boolSliceSerializer) Read(ctx *ReadContext) (reflect.Value, error) {
	n := int(ctx.Reader.ReadVarInt32())
	out := make([]bool, n)
	for i := range out {
		out[i] = ctx.Reader.ReadBool()
	}
	return reflect.ValueOf(out), nil
}

type int16SliceSerializer struct{}

func (int16SliceSerializer) ReservedSpace() int { return 16 }
func (int16SliceSerializer) TypeID(*Fory) int16 { return int16(TypeInt16Array) }
func (int16SliceSerializer) Write(v reflect.Value, ctx *WriteContext) error {
	n := v.Len()
	ctx.Writer.WriteVarInt32(int32(n))
	for i := 0; i < n; i++ {
		ctx.Writer.WriteInt16(int16(v.Index(i).Int()))
	}
	return nil
}
func (int16SliceSerializer) Read(ctx *ReadContext) (reflect.Value, error) {
	n := int(ctx.Reader.ReadVarInt32())
	out := make([]int16, n)
	for i := range out {
		out[i] = ctx.Reader.ReadInt16()
	}
	return reflect.ValueOf(out), nil
}

type int32SliceSerializer struct{}

func (int32SliceSerializer) ReservedSpace() int { return 32 }
func (int32SliceSerializer) TypeID(*Fory) int16 { return int16(TypeInt32Array) }
func (int32SliceSerializer) Write(v reflect.Value, ctx *WriteContext) error {
	n := v.Len()
	ctx.Writer.WriteVarInt32(int32(n))
	for i := 0; i < n; i++ {
		ctx.Writer.WriteInt32(int32(v.Index(i).Int()))
	}
	return nil
}
func (int32SliceSerializer) Read(ctx *ReadContext) (reflect.Value, error) {
	n := int(ctx.Reader.ReadVarInt32())
	out := make([]int32, n)
	for i := range out {
		out[i] = ctx.Reader.ReadInt32()
	}
	return reflect.ValueOf(out), nil
}

type int64SliceSerializer struct{}

func (int64SliceSerializer) ReservedSpace() int { return 64 }
func (int64SliceSerializer) TypeID(*Fory) int16 { return int16(TypeInt64Array) }
func (int64SliceSerializer) Write(v reflect.Value, ctx *WriteContext) error {
	n := v.Len()
	ctx.Writer.WriteVarInt32(int32(n))
	for i := 0; i < n; i++ {
		ctx.Writer.WriteInt64(v.Index(i).Int())
	}
	return nil
}
func (int64SliceSerializer) Read(ctx *ReadContext) (reflect.Value, error) {
	n := int(ctx.Reader.ReadVarInt32())
	out := make([]int64, n)
	for i := range out {
		out[i] = ctx.Reader.ReadInt64()
	}
	return reflect.ValueOf(out), nil
}

type float32SliceSerializer struct{}

func (float32SliceSerializer) ReservedSpace() int { return 32 }
func (float32SliceSerializer) TypeID(*Fory) int16 { return int16(TypeFloat32Array) }
func (float32SliceSerializer) Write(v reflect.Value, ctx *WriteContext) error {
	n := v.Len()
	ctx.Writer.WriteVarInt32(int32(n))
	for i := 0; i < n; i++ {
		ctx.Writer.WriteFloat32(float32(v.Index(i).Float()))
	}
	return nil
}
func (float32SliceSerializer) Read(ctx *ReadContext) (reflect.Value, error) {
	n := int(ctx.Reader.ReadVarInt32())
	out := make([]float32, n)
	for i := range out {
		out[i] = ctx.Reader.ReadFloat32()
	}
	return reflect.ValueOf(out), nil
}

type float64SliceSerializer struct{}

func (float64SliceSerializer) ReservedSpace() int { return 64 }
func (float64SliceSerializer) TypeID(*Fory) int16 { return int16(TypeFloat64Array) }
func (float64SliceSerializer) Write(v reflect.Value, ctx *WriteContext) error {
	n := v.Len()
	ctx.Writer.WriteVarInt32(int32(n))
	for i := 0; i < n; i++ {
		ctx.Writer.WriteFloat64(v.Index(i).Float())
	}
	return nil
}
func (float64SliceSerializer) Read(ctx *ReadContext) (reflect.Value, error) {
	n := int(ctx.Reader.ReadVarInt32())
	out := make([]float64, n)
	for i := range out {
		out[i] = ctx.Reader.ReadFloat64()
	}
	return reflect.ValueOf(out), nil
}

// stringSliceSerializer fast-paths []string, reusing stringSerializer's
// per-element encoding without the generic dynamic-dispatch overhead.
type stringSliceSerializer struct{}

func (stringSliceSerializer) ReservedSpace() int { return 32 }
func (stringSliceSerializer) TypeID(*Fory) int16 { return int16(TypeStringArray) }
func (stringSliceSerializer) Write(v reflect.Value, ctx *WriteContext) error {
	n := v.Len()
	ctx.Writer.WriteVarInt32(int32(n))
	ss := stringSerializer{}
	for i := 0; i < n; i++ {
		if err := ss.Write(v.Index(i), ctx); err != nil {
			return err
		}
	}
	return nil
}
func (stringSliceSerializer) Read(ctx *ReadContext) (reflect.Value, error) {
	n := int(ctx.Reader.ReadVarInt32())
	out := make([]string, n)
	ss := stringSerializer{}
	for i := range out {
		sv, err := ss.Read(ctx)
		if err != nil {
			return reflect.Value{}, err
		}
		out[i] = sv.String()
	}
	return reflect.ValueOf(out), nil
}
