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

// optionSerializer wraps a nilable Go pointer the way Option<T> is modeled
// in the Rust lineage: None writes the Null ref flag and nothing else;
// Some writes NotNullValue, the inner type id, then the inner body.
// Grounded on original_source/rust/fury-core/src/internal/option.rs.
//
// This is one of the two serializers (the other being anySerializer) that
// manage their own ref flag instead of delegating to
// serializeValue/deserializeValue, so it implements framedSerializer.
type optionSerializer struct {
	inner   Serializer
	ptrType reflect.Type
}

func newOptionSerializer(inner Serializer, ptrType reflect.Type) *optionSerializer {
	return &optionSerializer{inner: inner, ptrType: ptrType}
}

func (o *optionSerializer) ReservedSpace() int   { return o.inner.ReservedSpace() + 1 }
func (o *optionSerializer) TypeID(f *Fory) int16 { return o.inner.TypeID(f) }

func (o *optionSerializer) Write(v reflect.Value, ctx *WriteContext) error {
	return o.inner.Write(v.Elem(), ctx)
}

func (o *optionSerializer) Read(ctx *ReadContext) (reflect.Value, error) {
	inner, err := o.inner.Read(ctx)
	if err != nil {
		return reflect.Value{}, err
	}
	p := reflect.New(inner.Type())
	p.Elem().Set(inner)
	return p, nil
}

func (o *optionSerializer) Serialize(v reflect.Value, ctx *WriteContext) error {
	if v.IsNil() {
		ctx.Writer.WriteInt8(int8(RefFlagNull))
		return nil
	}
	ctx.Writer.WriteInt8(int8(RefFlagNotNullValue))
	ctx.Writer.WriteInt16(o.TypeID(ctx.Fory))
	return o.Write(v, ctx)
}

func (o *optionSerializer) Deserialize(ctx *ReadContext) (reflect.Value, error) {
	flag := RefFlag(ctx.Reader.ReadInt8())
	switch flag {
	case RefFlagNull:
		return reflect.Zero(o.ptrType), nil
	case RefFlagNotNullValue, RefFlagRefValue:
		actual := ctx.Reader.ReadInt16()
		expected := o.TypeID(ctx.Fory)
		if actual != expected {
			return reflect.Value{}, &FieldTypeError{Expected: FieldType(expected), Actual: actual}
		}
		return o.Read(ctx)
	case RefFlagRef:
		return reflect.Value{}, ErrRef
	default:
		return reflect.Value{}, &BadRefFlagError{Flag: int8(flag)}
	}
}
