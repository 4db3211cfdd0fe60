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

// Serializer is the contract every built-in and generated type-specific
// codec implements. The mechanism that produces a Serializer for a user
// struct (reflection-driven here; code generation in other Fory ports) is
// deliberately not part of this contract — only its obligations are.
//
// Grounded on original_source/rust/fory-core/src/serializer/mod.rs's
// Serializer trait, re-expressed with explicit reflect.Value arguments
// instead of a generic Self, matching the teacher's own reflect-based
// dispatch style (type.go's typeToSerializers map[reflect.Type]Serializer).
type Serializer interface {
	// ReservedSpace hints how many bytes to pre-reserve in the output
	// buffer to avoid reallocation on the common-case payload size.
	ReservedSpace() int
	// TypeID returns the FieldType (or registered class id, for structs)
	// written on the wire ahead of the value's body.
	TypeID(f *Fory) int16
	// Write appends v's body (not its ref flag or type id) to ctx.
	Write(v reflect.Value, ctx *WriteContext) error
	// Read consumes a previously-written body and reconstructs the value.
	Read(ctx *ReadContext) (reflect.Value, error)
}

// framedSerializer is implemented by the small set of serializers that
// manage their own reference flag instead of delegating to
// serializeValue/deserializeValue — currently only the optional and
// polymorphic-Any wrappers. Mirrors the Rust trait's default-method
// override: Serializer::serialize/deserialize have defaults that most
// impls inherit, but Option<T> and Box<dyn Any> override them.
type framedSerializer interface {
	Serializer
	Serialize(v reflect.Value, ctx *WriteContext) error
	Deserialize(ctx *ReadContext) (reflect.Value, error)
}

func dispatchSerialize(v reflect.Value, s Serializer, ctx *WriteContext) error {
	if fs, ok := s.(framedSerializer); ok {
		return fs.Serialize(v, ctx)
	}
	return serializeValue(v, s, ctx)
}

func dispatchDeserialize(s Serializer, ctx *ReadContext) (reflect.Value, error) {
	if fs, ok := s.(framedSerializer); ok {
		return fs.Deserialize(ctx)
	}
	return deserializeValue(s, ctx)
}

// serializeValue is the default Serializer.serialize: write the
// NotNullValue ref flag, the type id, then the body.
func serializeValue(v reflect.Value, s Serializer, ctx *WriteContext) error {
	ctx.Writer.WriteInt8(int8(RefFlagNotNullValue))
	ctx.Writer.WriteInt16(s.TypeID(ctx.Fory))
	return s.Write(v, ctx)
}

// deserializeValue is the default Serializer.deserialize: read the ref
// flag, validate the type id, then read the body. Null/Ref/unknown flags
// are hard errors here; only framedSerializer implementations (Option)
// handle Null themselves.
func deserializeValue(s Serializer, ctx *ReadContext) (reflect.Value, error) {
	flag := RefFlag(ctx.Reader.ReadInt8())
	switch flag {
	case RefFlagNotNullValue, RefFlagRefValue:
		actual := ctx.Reader.ReadInt16()
		expected := s.TypeID(ctx.Fory)
		if actual != expected {
			return reflect.Value{}, &FieldTypeError{Expected: FieldType(expected), Actual: actual}
		}
		return s.Read(ctx)
	case RefFlagNull:
		return reflect.Value{}, ErrNull
	case RefFlagRef:
		return reflect.Value{}, ErrRef
	default:
		return reflect.Value{}, &BadRefFlagError{Flag: int8(flag)}
	}
}
